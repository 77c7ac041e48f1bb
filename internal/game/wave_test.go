package game

import (
	"testing"

	"github.com/avolanis/asteroids/internal/geom"
)

func TestWaveRefillCount(t *testing.T) {
	s := mustSession(t, testConfig())
	if len(s.asteroids) != s.cfg.InitialAsteroids {
		t.Fatalf("creation batch = %d, want %d", len(s.asteroids), s.cfg.InitialAsteroids)
	}

	s.asteroids = s.asteroids[:0]
	s.Advance(Intent{}, testDt)

	if s.Wave() != 1 {
		t.Fatalf("wave = %d, want 1 after the field cleared", s.Wave())
	}
	want := s.cfg.InitialAsteroids + 1
	if len(s.asteroids) != want {
		t.Fatalf("refill spawned %d asteroids, want %d", len(s.asteroids), want)
	}
	safe := s.tun.SafeSpawnRadius * s.tun.SafeSpawnRadius
	for _, a := range s.asteroids {
		if a.Tier != TierLarge {
			t.Errorf("refill asteroid %d tier = %v, want large", a.ID, a.Tier)
		}
		if geom.TorusDistSq(a.Pos, s.ship.Pos, s.bounds) < safe {
			t.Errorf("refill asteroid %d inside the safe radius at %v", a.ID, a.Pos)
		}
	}

	s.asteroids = s.asteroids[:0]
	s.Advance(Intent{}, testDt)

	if s.Wave() != 2 || len(s.asteroids) != s.cfg.InitialAsteroids+2 {
		t.Fatalf("second refill: wave %d with %d asteroids, want 2 with %d",
			s.Wave(), len(s.asteroids), s.cfg.InitialAsteroids+2)
	}
}

func TestLastKillRefillsSameTick(t *testing.T) {
	s := mustSession(t, testConfig())
	clearRocks(s)
	addRock(s, geom.Vec2{X: 100, Y: 100}, geom.Vec2{}, TierSmall)
	addBullet(s, geom.Vec2{X: 100, Y: 100}, false)

	s.Advance(Intent{}, testDt)

	if s.Score() != ScoreSmall {
		t.Fatalf("score = %d, want %d", s.Score(), ScoreSmall)
	}
	if s.Wave() != 1 {
		t.Fatal("clearing the field did not advance the wave")
	}
	// a small asteroid leaves no fragments; only the refill restocks
	if len(s.asteroids) != 1 {
		t.Fatalf("field holds %d asteroids, want the refill batch of 1", len(s.asteroids))
	}
	if s.asteroids[0].Tier != TierLarge {
		t.Fatalf("refill tier = %v, want large", s.asteroids[0].Tier)
	}
}
