package geom

import "math"

// Size holds world bounds.
type Size struct {
	W, H float64
}

// Wrap maps a position into [0,w) x [0,h) by exact modulo. Exiting one edge
// re-enters the opposite edge; nothing is clamped.
func Wrap(v Vec2, b Size) Vec2 {
	x := math.Mod(v.X, b.W)
	if x < 0 {
		x += b.W
	}
	y := math.Mod(v.Y, b.H)
	if y < 0 {
		y += b.H
	}
	return Vec2{X: x, Y: y}
}

// TorusDelta returns the shortest vector from a to b across the torus.
// Each axis takes the nearer of the direct and the wrapped path.
func TorusDelta(a, b Vec2, bounds Size) Vec2 {
	dx := b.X - a.X
	if dx > bounds.W/2 {
		dx -= bounds.W
	} else if dx < -bounds.W/2 {
		dx += bounds.W
	}
	dy := b.Y - a.Y
	if dy > bounds.H/2 {
		dy -= bounds.H
	} else if dy < -bounds.H/2 {
		dy += bounds.H
	}
	return Vec2{X: dx, Y: dy}
}

// TorusDistSq returns the squared wrapped distance between a and b.
func TorusDistSq(a, b Vec2, bounds Size) float64 {
	return TorusDelta(a, b, bounds).LenSq()
}

// CirclesOverlap reports whether two circles touch or overlap under the
// wrapped distance metric. The test is inclusive at exact contact.
func CirclesOverlap(a, b Vec2, ra, rb float64, bounds Size) bool {
	r := ra + rb
	return TorusDistSq(a, b, bounds) <= r*r
}
