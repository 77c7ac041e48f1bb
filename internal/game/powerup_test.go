package game

import (
	"testing"

	"github.com/avolanis/asteroids/internal/geom"
)

func powerupConfig() Config {
	cfg := DefaultConfig(42)
	cfg.Saucers = false
	return cfg
}

func addPickup(s *Session, pos geom.Vec2, e Effect) *PowerUp {
	p := &PowerUp{
		Body: Body{
			ID:     s.allocID(),
			Kind:   KindPowerUp,
			Pos:    pos,
			Radius: s.tun.PowerUpRadius,
			Alive:  true,
		},
		Effect: e,
		TTL:    s.tun.PowerUpTTL,
	}
	s.powerups = append(s.powerups, p)
	return p
}

func TestGuaranteedDropOnKill(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	s.tun.DropChance = 1
	rock := addRock(s, geom.Vec2{X: 100, Y: 100}, geom.Vec2{}, TierSmall)
	addBullet(s, rock.Pos, false)

	s.Advance(Intent{}, testDt)

	if len(s.powerups) != 1 {
		t.Fatalf("drops = %d, want 1", len(s.powerups))
	}
	p := s.powerups[0]
	if p.Pos != rock.Pos {
		t.Fatalf("drop at %v, want the wreck at %v", p.Pos, rock.Pos)
	}
	if p.Effect < EffectAmmo || p.Effect > EffectShield {
		t.Fatalf("unknown effect %v", p.Effect)
	}
	if p.TTL != s.tun.PowerUpTTL {
		t.Fatalf("drop TTL = %d, want a full %d", p.TTL, s.tun.PowerUpTTL)
	}
}

func TestNoDropAtZeroChance(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	s.tun.DropChance = 0
	rock := addRock(s, geom.Vec2{X: 100, Y: 100}, geom.Vec2{}, TierSmall)
	addBullet(s, rock.Pos, false)

	s.Advance(Intent{}, testDt)

	if len(s.powerups) != 0 {
		t.Fatal("powerup dropped at zero chance")
	}
}

func TestPowerUpExpires(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	p := addPickup(s, geom.Vec2{X: 100, Y: 100}, EffectAmmo)
	p.TTL = 2

	s.Advance(Intent{}, testDt)
	if len(s.powerups) != 1 {
		t.Fatal("powerup expired early")
	}
	s.Advance(Intent{}, testDt)
	if len(s.powerups) != 0 {
		t.Fatal("powerup outlived its TTL")
	}
}

func TestAmmoPickup(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	addPickup(s, s.ship.Pos, EffectAmmo)

	s.Advance(Intent{}, testDt)

	if want := s.tun.AmmoInitial + s.tun.AmmoPickup; s.ship.Ammo != want {
		t.Fatalf("ammo = %d, want %d", s.ship.Ammo, want)
	}
	if len(s.powerups) != 0 {
		t.Fatal("pickup not consumed")
	}
}

func TestAmmoPickupCapsAtMax(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	s.ship.Ammo = s.tun.AmmoMax
	addPickup(s, s.ship.Pos, EffectAmmo)

	s.Advance(Intent{}, testDt)

	if s.ship.Ammo != s.tun.AmmoMax {
		t.Fatalf("ammo = %d, want capped at %d", s.ship.Ammo, s.tun.AmmoMax)
	}
}

func TestBonusScorePickup(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	addPickup(s, s.ship.Pos, EffectBonusScore)

	s.Advance(Intent{}, testDt)

	if s.Score() != s.tun.ScoreBonus {
		t.Fatalf("score = %d, want %d", s.Score(), s.tun.ScoreBonus)
	}
}

func TestShieldPickup(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	s.ship.InvulnerableUntil = 0
	addPickup(s, s.ship.Pos, EffectShield)

	s.Advance(Intent{}, testDt)

	if s.tick >= s.ship.InvulnerableUntil {
		t.Fatal("shield did not arm")
	}

	addRock(s, s.ship.Pos, geom.Vec2{}, TierLarge)
	s.Advance(Intent{}, testDt)

	if got := s.ship.Lives; got != s.cfg.InitialLives {
		t.Fatal("shield did not absorb the hit")
	}
}

func TestRapidFirePickup(t *testing.T) {
	s := mustSession(t, powerupConfig())
	clearRocks(s)
	addPickup(s, s.ship.Pos, EffectRapidFire)
	s.Advance(Intent{}, testDt)

	if !s.Snapshot().RapidFire {
		t.Fatal("rapid fire not active after pickup")
	}

	hold := Intent{Fire: true}
	s.Advance(hold, testDt)
	if len(s.bullets) != 1 {
		t.Fatalf("bullets = %d, want the first shot out", len(s.bullets))
	}
	rapidCd := int(float64(s.tun.FireCooldown) * s.tun.RapidFireFactor)
	for i := 0; i < rapidCd; i++ {
		s.Advance(hold, testDt)
	}
	if len(s.bullets) != 2 {
		t.Fatalf("bullets = %d, want a follow-up after %d ticks", len(s.bullets), rapidCd)
	}

	for i := 0; i < s.tun.RapidFireTicks; i++ {
		s.Advance(Intent{}, testDt)
	}
	if s.Snapshot().RapidFire {
		t.Fatal("rapid fire never expired")
	}
}
