package term

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
)

func newTestEffects() *effects {
	return &effects{
		alive:  make(map[uint64]bool),
		rng:    rand.New(rand.NewSource(1)),
		worldW: 800,
	}
}

func rockState(id uint64, x, y float64, tier int) game.EntityState {
	return game.EntityState{ID: id, Kind: game.KindAsteroid.String(), X: x, Y: y, Tier: tier}
}

func TestBurstOnAsteroidKill(t *testing.T) {
	e := newTestEffects()

	prev := game.Snapshot{Tick: 1, Entities: []game.EntityState{rockState(5, 100, 100, 2)}}
	cur := game.Snapshot{Tick: 2}
	e.observe(prev, cur)

	if got := len(e.parts); got != 12 {
		t.Fatalf("large rock debris = %d particles, want 12", got)
	}
	for _, p := range e.parts {
		if p.x != 100 || p.y != 100 {
			t.Fatalf("debris spawned at (%v,%v), want the wreck position", p.x, p.y)
		}
	}
}

func TestNoBurstWhenTickFrozen(t *testing.T) {
	e := newTestEffects()

	prev := game.Snapshot{Tick: 7, Entities: []game.EntityState{rockState(5, 100, 100, 2)}}
	cur := game.Snapshot{Tick: 7}
	e.observe(prev, cur)

	if len(e.parts) != 0 {
		t.Fatalf("frozen tick spawned %d particles", len(e.parts))
	}
}

func TestSaucerEdgeDespawnIsSilent(t *testing.T) {
	e := newTestEffects()

	edge := game.EntityState{ID: 9, Kind: game.KindSaucer.String(), X: 2, Y: 200}
	e.observe(game.Snapshot{Tick: 1, Entities: []game.EntityState{edge}}, game.Snapshot{Tick: 2})
	if len(e.parts) != 0 {
		t.Fatalf("edge despawn spawned %d particles", len(e.parts))
	}

	shot := game.EntityState{ID: 10, Kind: game.KindSaucer.String(), X: 400, Y: 200}
	e.observe(game.Snapshot{Tick: 2, Entities: []game.EntityState{shot}}, game.Snapshot{Tick: 3})
	if got := len(e.parts); got != 16 {
		t.Fatalf("saucer kill debris = %d particles, want 16", got)
	}
}

func TestLostLifeBurstsAtOldPosition(t *testing.T) {
	e := newTestEffects()

	ship := game.EntityState{ID: 1, Kind: game.KindShip.String(), X: 250, Y: 180}
	respawned := game.EntityState{ID: 1, Kind: game.KindShip.String(), X: 400, Y: 300}
	prev := game.Snapshot{Tick: 1, Lives: 3, Entities: []game.EntityState{ship}}
	cur := game.Snapshot{Tick: 2, Lives: 2, Entities: []game.EntityState{respawned}}
	e.observe(prev, cur)

	if got := len(e.parts); got != 24 {
		t.Fatalf("ship debris = %d particles, want 24", got)
	}
	for _, p := range e.parts {
		if p.x != 250 || p.y != 180 {
			t.Fatalf("debris at (%v,%v), want the crash site", p.x, p.y)
		}
	}
}

func TestPowerUpFizzle(t *testing.T) {
	e := newTestEffects()

	pu := game.EntityState{ID: 12, Kind: game.KindPowerUp.String(), X: 50, Y: 60}
	e.observe(game.Snapshot{Tick: 1, Entities: []game.EntityState{pu}}, game.Snapshot{Tick: 2})

	if got := len(e.parts); got != 6 {
		t.Fatalf("powerup fizzle = %d particles, want 6", got)
	}
}

func TestParticlesExpire(t *testing.T) {
	e := newTestEffects()
	e.burst(10, 10, 8, 100, 0.5)

	e.update(1.0)
	if len(e.parts) != 0 {
		t.Fatalf("%d particles outlived their lifetime", len(e.parts))
	}
}

func TestDragSlowsParticles(t *testing.T) {
	e := newTestEffects()
	e.burst(10, 10, 1, 100, 5)

	p0 := e.parts[0]
	v0 := math.Hypot(p0.vx, p0.vy)
	e.update(1.0 / 60)
	v1 := math.Hypot(e.parts[0].vx, e.parts[0].vy)

	if v1 >= v0 {
		t.Fatalf("speed went %v -> %v, want a decay", v0, v1)
	}
}

func TestRenderSkipsDyingParticles(t *testing.T) {
	e := newTestEffects()
	cv := draw.NewScaledCanvas(40, 20, 800, 600)

	e.parts = append(e.parts, particle{x: 400, y: 300, life: 0.1, maxLife: 1})
	var sb strings.Builder
	e.render(cv)
	cv.Render(&sb)
	if sb.String() != "" {
		t.Fatal("dying particle was drawn")
	}

	e.parts[0].life = 0.9
	e.render(cv)
	sb.Reset()
	cv.Render(&sb)
	if sb.String() == "" {
		t.Fatal("healthy particle was not drawn")
	}
}

func TestResetDropsParticles(t *testing.T) {
	e := newTestEffects()
	e.burst(10, 10, 8, 100, 0.5)
	e.reset()
	if len(e.parts) != 0 {
		t.Fatal("reset kept particles")
	}
}
