package term

import (
	"math"
	"math/rand"
	"time"

	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
)

// saucerEdgeMargin separates a shot-down saucer from one that slipped off
// the playfield; only the kill gets debris.
const saucerEdgeMargin = 8.0

type particle struct {
	x, y    float64
	vx, vy  float64
	life    float64
	maxLife float64
	drag    float64
}

// effects is the client-side debris layer. The simulation never hears about
// particles; bursts are inferred by diffing consecutive snapshots, so every
// client can disagree about sparks while agreeing about the game.
type effects struct {
	parts  []particle
	alive  map[uint64]bool
	rng    *rand.Rand
	worldW float64
}

func newEffects(worldW float64) *effects {
	return &effects{
		alive:  make(map[uint64]bool, 64),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		worldW: worldW,
	}
}

func (e *effects) reset() {
	e.parts = e.parts[:0]
}

// observe spawns debris for everything that stopped existing between two
// snapshots. A respawned ship keeps its entity, so a lost life is detected
// from the lives counter instead.
func (e *effects) observe(prev, cur game.Snapshot) {
	if cur.Tick == prev.Tick {
		return
	}

	clear(e.alive)
	for _, en := range cur.Entities {
		e.alive[en.ID] = true
	}

	for _, en := range prev.Entities {
		if e.alive[en.ID] {
			continue
		}
		switch en.Kind {
		case game.KindAsteroid.String():
			e.burst(en.X, en.Y, 4*(en.Tier+1), 120, 0.6)
		case game.KindShip.String():
			e.burst(en.X, en.Y, 24, 150, 0.9)
		case game.KindSaucer.String():
			if en.X > saucerEdgeMargin && en.X < e.worldW-saucerEdgeMargin {
				e.burst(en.X, en.Y, 16, 130, 0.7)
			}
		case game.KindPowerUp.String():
			e.burst(en.X, en.Y, 6, 60, 0.4)
		}
	}

	if cur.Lives < prev.Lives {
		if sh, ok := shipState(prev); ok {
			e.burst(sh.X, sh.Y, 24, 150, 0.9)
		}
	}
}

func (e *effects) burst(x, y float64, count int, speed, life float64) {
	for i := 0; i < count; i++ {
		a := e.rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + e.rng.Float64())
		l := life * (0.5 + e.rng.Float64()*0.5)
		e.parts = append(e.parts, particle{
			x: x, y: y,
			vx:      math.Cos(a) * spd,
			vy:      math.Sin(a) * spd,
			life:    l,
			maxLife: l,
			drag:    0.95,
		})
	}
}

// thrust spews one or two short-lived sparks out of the engine, spread
// around the direction opposite the heading.
func (e *effects) thrust(x, y, heading, radius float64) {
	bx := x - math.Cos(heading)*radius*0.8
	by := y - math.Sin(heading)*radius*0.8

	count := 1 + e.rng.Intn(2)
	for i := 0; i < count; i++ {
		a := heading + math.Pi + (e.rng.Float64()-0.5)*0.5
		spd := 50 + e.rng.Float64()*25
		l := 0.1 + e.rng.Float64()*0.15
		e.parts = append(e.parts, particle{
			x: bx, y: by,
			vx:      math.Cos(a) * spd,
			vy:      math.Sin(a) * spd,
			life:    l,
			maxLife: l,
			drag:    0.85,
		})
	}
}

func (e *effects) update(dt float64) {
	kept := e.parts[:0]
	for _, p := range e.parts {
		p.life -= dt
		if p.life <= 0 {
			continue
		}
		f := math.Pow(p.drag, dt*60)
		p.vx *= f
		p.vy *= f
		p.x += p.vx * dt
		p.y += p.vy * dt
		kept = append(kept, p)
	}
	e.parts = kept
}

// render lights one pixel per particle. The last quarter of a particle's
// life is skipped rather than dimmed; on a two-tone canvas dropout reads
// as fading.
func (e *effects) render(cv *draw.Canvas) {
	for _, p := range e.parts {
		if p.life < p.maxLife*0.25 {
			continue
		}
		cv.Set(p.x, p.y)
	}
}
