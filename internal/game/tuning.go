package game

import (
	"fmt"
	"math"
)

// Score values per destroyed asteroid tier. Smaller rocks are harder to hit
// and pay more.
const (
	ScoreLarge  = 20
	ScoreMedium = 50
	ScoreSmall  = 100
)

// TierScore returns the score awarded for destroying an asteroid of the
// given tier with a bullet.
func TierScore(t Tier) int {
	switch t {
	case TierLarge:
		return ScoreLarge
	case TierMedium:
		return ScoreMedium
	case TierSmall:
		return ScoreSmall
	default:
		return 0
	}
}

// Tuning collects every gameplay constant. The zero value is not usable;
// start from DefaultTuning. Tick-denominated fields assume the nominal
// 60 Hz loop. A TOML file may override individual values, see
// internal/config.
type Tuning struct {
	// MaxDelta caps dt fed into Advance, in seconds. Protects integration
	// from stalled clocks.
	MaxDelta float64 `toml:"max_delta"`

	ShipRadius      float64 `toml:"ship_radius"`
	ShipThrust      float64 `toml:"ship_thrust"`    // px/s^2
	ShipMaxSpeed    float64 `toml:"ship_max_speed"` // px/s
	ShipTurnRate    float64 `toml:"ship_turn_rate"` // rad/s
	FireCooldown    int     `toml:"fire_cooldown"`  // min ticks between shots
	Invulnerability int     `toml:"invulnerability"` // ticks after spawn or hit

	BulletSpeed  float64 `toml:"bullet_speed"` // px/s, added to ship velocity
	BulletRadius float64 `toml:"bullet_radius"`
	BulletTTL    int     `toml:"bullet_ttl"` // ticks

	AmmoMax            int `toml:"ammo_max"`
	AmmoInitial        int `toml:"ammo_initial"`
	AmmoRecharge       int `toml:"ammo_recharge"` // ticks per refill step
	AmmoRechargeAmount int `toml:"ammo_recharge_amount"`

	// LargeRadius sets the top tier; each split halves the radius.
	LargeRadius     float64 `toml:"large_radius"`
	SpeedLarge      float64 `toml:"speed_large"` // px/s base speed per tier
	SpeedMedium     float64 `toml:"speed_medium"`
	SpeedSmall      float64 `toml:"speed_small"`
	SafeSpawnRadius float64 `toml:"safe_spawn_radius"` // keep-out around ship spawn

	SaucerRadius      float64 `toml:"saucer_radius"`
	SaucerSpeed       float64 `toml:"saucer_speed"`
	SaucerInterval    int     `toml:"saucer_interval"`   // base ticks between visits
	SaucerFireEvery   int     `toml:"saucer_fire_every"` // ticks between shots
	SaucerBulletSpeed float64 `toml:"saucer_bullet_speed"`
	SaucerAimJitter   float64 `toml:"saucer_aim_jitter"` // radians either side
	SaucerWaveAmp     float64 `toml:"saucer_wave_amp"`   // px/s vertical weave
	SaucerWaveFreq    float64 `toml:"saucer_wave_freq"`  // rad/s
	SaucerScore       int     `toml:"saucer_score"`

	PowerUpRadius   float64 `toml:"powerup_radius"`
	PowerUpTTL      int     `toml:"powerup_ttl"`
	PowerUpDrift    float64 `toml:"powerup_drift"`
	DropChance      float64 `toml:"drop_chance"` // per asteroid killed by bullet
	RapidFireTicks  int     `toml:"rapid_fire_ticks"`
	RapidFireFactor float64 `toml:"rapid_fire_factor"` // cooldown multiplier
	ShieldTicks     int     `toml:"shield_ticks"`
	AmmoPickup      int     `toml:"ammo_pickup"`
	ScoreBonus      int     `toml:"score_bonus"`
}

// DefaultTuning returns the shipped game feel for an 800x600 world at 60 Hz.
func DefaultTuning() Tuning {
	return Tuning{
		MaxDelta: 0.05,

		ShipRadius:      15,
		ShipThrust:      480,
		ShipMaxSpeed:    420,
		ShipTurnRate:    5.0,
		FireCooldown:    18,
		Invulnerability: 180,

		BulletSpeed:  500,
		BulletRadius: 3,
		BulletTTL:    72,

		AmmoMax:            80,
		AmmoInitial:        25,
		AmmoRecharge:       120,
		AmmoRechargeAmount: 3,

		LargeRadius:     40,
		SpeedLarge:      50,
		SpeedMedium:     80,
		SpeedSmall:      120,
		SafeSpawnRadius: 150,

		SaucerRadius:      22,
		SaucerSpeed:       120,
		SaucerInterval:    900,
		SaucerFireEvery:   120,
		SaucerBulletSpeed: 350,
		SaucerAimJitter:   0.25,
		SaucerWaveAmp:     90,
		SaucerWaveFreq:    2.2,
		SaucerScore:       300,

		PowerUpRadius:   12,
		PowerUpTTL:      600,
		PowerUpDrift:    30,
		DropChance:      0.3,
		RapidFireTicks:  300,
		RapidFireFactor: 0.3,
		ShieldTicks:     240,
		AmmoPickup:      5,
		ScoreBonus:      500,
	}
}

// validate rejects overrides the simulation cannot run with.
func (t Tuning) validate() error {
	switch {
	case t.MaxDelta <= 0:
		return fmt.Errorf("%w: max_delta %g", ErrInvalidConfig, t.MaxDelta)
	case t.ShipRadius <= 0 || t.BulletRadius <= 0 || t.LargeRadius <= 0 ||
		t.SaucerRadius <= 0 || t.PowerUpRadius <= 0:
		return fmt.Errorf("%w: entity radii must be positive", ErrInvalidConfig)
	case t.ShipThrust <= 0 || t.ShipMaxSpeed <= 0 || t.ShipTurnRate <= 0:
		return fmt.Errorf("%w: ship dynamics must be positive", ErrInvalidConfig)
	case t.FireCooldown <= 0 || t.BulletTTL <= 0 || t.BulletSpeed <= 0:
		return fmt.Errorf("%w: bullet tuning must be positive", ErrInvalidConfig)
	case t.AmmoMax <= 0 || t.AmmoInitial < 0 || t.AmmoInitial > t.AmmoMax ||
		t.AmmoRecharge <= 0 || t.AmmoRechargeAmount <= 0:
		return fmt.Errorf("%w: ammo tuning out of range", ErrInvalidConfig)
	case t.SpeedLarge <= 0 || t.SpeedMedium <= 0 || t.SpeedSmall <= 0:
		return fmt.Errorf("%w: asteroid speeds must be positive", ErrInvalidConfig)
	case t.SafeSpawnRadius < 0:
		return fmt.Errorf("%w: safe_spawn_radius %g", ErrInvalidConfig, t.SafeSpawnRadius)
	case t.SaucerSpeed <= 0 || t.SaucerInterval <= 0 || t.SaucerFireEvery <= 0 ||
		t.SaucerBulletSpeed <= 0:
		return fmt.Errorf("%w: saucer tuning must be positive", ErrInvalidConfig)
	case t.DropChance < 0 || t.DropChance > 1:
		return fmt.Errorf("%w: drop_chance %g not in [0,1]", ErrInvalidConfig, t.DropChance)
	case t.RapidFireFactor <= 0 || t.RapidFireFactor > 1:
		return fmt.Errorf("%w: rapid_fire_factor %g not in (0,1]", ErrInvalidConfig, t.RapidFireFactor)
	case t.PowerUpTTL <= 0 || t.RapidFireTicks <= 0 || t.ShieldTicks <= 0:
		return fmt.Errorf("%w: powerup durations must be positive", ErrInvalidConfig)
	}
	return nil
}

// forDifficulty returns a copy scaled by the chosen preset.
func (t Tuning) forDifficulty(d Difficulty) Tuning {
	switch d {
	case DifficultyEasy:
		t.SpeedLarge *= 0.75
		t.SpeedMedium *= 0.75
		t.SpeedSmall *= 0.75
		t.SaucerInterval = t.SaucerInterval * 3 / 2
		t.AmmoRecharge = t.AmmoRecharge * 3 / 4
		t.DropChance = math.Min(1, t.DropChance*1.5)
	case DifficultyHard:
		t.SpeedLarge *= 1.3
		t.SpeedMedium *= 1.3
		t.SpeedSmall *= 1.3
		t.SaucerInterval = t.SaucerInterval * 3 / 5
		t.AmmoRecharge = t.AmmoRecharge * 3 / 2
		t.DropChance *= 0.6
	}
	return t
}
