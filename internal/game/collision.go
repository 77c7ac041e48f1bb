package game

import "github.com/avolanis/asteroids/internal/geom"

// Pair is one detected overlap. A is always the asteroid; B is the
// bullet or the ship that touched it.
type Pair struct {
	A EntityID
	B EntityID
}

// FindCollisions scans asteroids against player bullets and the ship
// under the wrapped distance metric and reports every hit as an ID pair.
// It only detects; callers decide what a hit means.
//
// Each bullet pairs with at most one asteroid. Both slices arrive in
// ascending ID order, so the first overlap found is the lowest-ID
// asteroid and the scan can stop there. The ship pairs with every
// asteroid it overlaps; invulnerability is the resolver's business.
// Hostile bullets never hit asteroids and are skipped.
//
// The scan is a plain nested loop. At the entity counts a wave produces
// (tens, not thousands) anything smarter costs more than it saves.
func FindCollisions(asteroids []*Asteroid, bullets []*Bullet, ship *Ship, bounds geom.Size) []Pair {
	var pairs []Pair
	for _, b := range bullets {
		if !b.Alive || b.Hostile {
			continue
		}
		for _, a := range asteroids {
			if !a.Alive {
				continue
			}
			if geom.CirclesOverlap(b.Pos, a.Pos, b.Radius, a.Radius, bounds) {
				pairs = append(pairs, Pair{A: a.ID, B: b.ID})
				break
			}
		}
	}
	if ship != nil && ship.Alive {
		for _, a := range asteroids {
			if !a.Alive {
				continue
			}
			if geom.CirclesOverlap(ship.Pos, a.Pos, ship.Radius, a.Radius, bounds) {
				pairs = append(pairs, Pair{A: a.ID, B: ship.ID})
			}
		}
	}
	return pairs
}
