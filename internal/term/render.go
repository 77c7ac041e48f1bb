package term

import (
	"math"
	"math/rand"

	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
)

// label is text anchored to a world position, written after the canvas so
// the glyph sits on top of nearby pixels.
type label struct {
	col, row int
	text     string
}

// rockShape is the client-side silhouette of one asteroid. The simulation
// only knows circles; jagged outlines and spin are cosmetic.
type rockShape struct {
	offsets []float64 // per-vertex fraction of the collision radius
	spin    float64   // radians per second, sign picks the direction
	seen    uint64    // tick the shape was last drawn, for eviction
}

type rockShapes map[uint64]*rockShape

// shapeFor returns the outline for an asteroid, generating it on first
// sight. Shapes are seeded by entity ID, so a rock keeps its silhouette for
// its whole life and every frame regenerates nothing.
func (rs rockShapes) shapeFor(id, tick uint64) *rockShape {
	if s, ok := rs[id]; ok {
		s.seen = tick
		return s
	}

	rng := rand.New(rand.NewSource(int64(id)))
	n := 8 + rng.Intn(5)
	offs := make([]float64, n)
	for i := range offs {
		offs[i] = 0.7 + rng.Float64()*0.6
	}
	s := &rockShape{
		offsets: offs,
		spin:    (rng.Float64() - 0.5) * 2,
		seen:    tick,
	}
	rs[id] = s

	// IDs only ever grow, so dead rocks would pile up without a sweep.
	if len(rs) > 512 {
		rs.sweep(tick)
	}
	return s
}

func (rs rockShapes) sweep(tick uint64) {
	for id, s := range rs {
		if tick-s.seen > 120 {
			delete(rs, id)
		}
	}
}

func (c *client) renderWorld(snap game.Snapshot) {
	for _, e := range snap.Entities {
		switch e.Kind {
		case game.KindShip.String():
			c.drawShip(e, snap)
		case game.KindAsteroid.String():
			c.drawRock(e, snap.Tick)
		case game.KindBullet.String():
			c.drawBullet(e)
		case game.KindSaucer.String():
			c.drawSaucer(e)
		case game.KindPowerUp.String():
			c.drawPowerUp(e)
		}
	}
}

func pointAt(e game.EntityState, offset, dist float64) draw.Point {
	a := e.Heading + offset
	return draw.Point{X: e.X + math.Cos(a)*dist, Y: e.Y + math.Sin(a)*dist}
}

// drawShip draws the hull triangle: nose on the heading, wings swept back
// past ±90°. While shielded the hull blinks at 5 Hz and a steady ring marks
// the shield's reach.
func (c *client) drawShip(e game.EntityState, snap game.Snapshot) {
	if snap.Shielded {
		c.canvas.DrawCircle(draw.Point{X: e.X, Y: e.Y}, e.Radius*1.5)
		if (snap.Tick/6)%2 == 1 {
			return
		}
	}

	tri := c.canvas.ScratchPoints(3)
	tri[0] = pointAt(e, 0, e.Radius)
	tri[1] = pointAt(e, 2.5, e.Radius*0.7)
	tri[2] = pointAt(e, -2.5, e.Radius*0.7)
	c.canvas.DrawPolygon(tri, true)
}

func (c *client) drawRock(e game.EntityState, tick uint64) {
	s := c.rocks.shapeFor(e.ID, tick)
	phase := s.spin * float64(tick) * tickDt

	pts := c.canvas.ScratchPoints(len(s.offsets))
	n := float64(len(s.offsets))
	for i, f := range s.offsets {
		a := phase + 2*math.Pi*float64(i)/n
		pts[i] = draw.Point{
			X: e.X + math.Cos(a)*f*e.Radius,
			Y: e.Y + math.Sin(a)*f*e.Radius,
		}
	}
	c.canvas.DrawPolygon(pts, false)
}

func (c *client) drawBullet(e game.EntityState) {
	c.canvas.Set(e.X, e.Y)
	c.canvas.Set(e.X-math.Cos(e.Heading)*3, e.Y-math.Sin(e.Heading)*3)
}

func (c *client) drawSaucer(e game.EntityState) {
	r := e.Radius
	hull := c.canvas.ScratchPoints(6)
	hull[0] = draw.Point{X: e.X - r, Y: e.Y}
	hull[1] = draw.Point{X: e.X - r*0.45, Y: e.Y - r*0.4}
	hull[2] = draw.Point{X: e.X + r*0.45, Y: e.Y - r*0.4}
	hull[3] = draw.Point{X: e.X + r, Y: e.Y}
	hull[4] = draw.Point{X: e.X + r*0.45, Y: e.Y + r*0.4}
	hull[5] = draw.Point{X: e.X - r*0.45, Y: e.Y + r*0.4}
	c.canvas.DrawPolygon(hull, false)

	// Canopy and beltline.
	c.canvas.DrawLine(draw.Point{X: e.X - r*0.35, Y: e.Y - r*0.4}, draw.Point{X: e.X - r*0.15, Y: e.Y - r*0.75})
	c.canvas.DrawLine(draw.Point{X: e.X - r*0.15, Y: e.Y - r*0.75}, draw.Point{X: e.X + r*0.15, Y: e.Y - r*0.75})
	c.canvas.DrawLine(draw.Point{X: e.X + r*0.15, Y: e.Y - r*0.75}, draw.Point{X: e.X + r*0.35, Y: e.Y - r*0.4})
	c.canvas.DrawLine(draw.Point{X: e.X - r, Y: e.Y}, draw.Point{X: e.X + r, Y: e.Y})
}

func (c *client) drawPowerUp(e game.EntityState) {
	c.canvas.DrawCircle(draw.Point{X: e.X, Y: e.Y}, e.Radius)

	col, row := c.canvas.WorldToCell(e.X, e.Y)
	c.labels = append(c.labels, label{col: col, row: row, text: powerUpGlyph(e.Effect)})
}

func powerUpGlyph(effect string) string {
	switch effect {
	case game.EffectAmmo.String():
		return "A"
	case game.EffectRapidFire.String():
		return "R"
	case game.EffectBonusScore.String():
		return "$"
	case game.EffectShield.String():
		return "S"
	}
	return "?"
}
