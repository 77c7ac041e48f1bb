// Package game implements the deterministic Asteroids simulation: entities,
// collision detection, scoring and the tick-based state machine. The package
// does no I/O and never calls a renderer; launchers feed it intents and a
// clock, and read the world back through snapshots.
package game

import "github.com/avolanis/asteroids/internal/geom"

// EntityID identifies an entity for the lifetime of a session. IDs are
// allocated from a monotonic counter, so later spawns always carry larger
// IDs and append-only collections stay in ascending-ID order.
type EntityID uint64

// Kind tags the variant of an entity. Update, collision and render logic
// dispatch on it with exhaustive switches.
type Kind uint8

const (
	KindShip Kind = iota + 1
	KindAsteroid
	KindBullet
	KindSaucer
	KindPowerUp
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	case KindSaucer:
		return "saucer"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Tier is the asteroid size class controlling radius, split behavior and
// score value. Values are ordered so Tier-1 is the next smaller class.
type Tier uint8

const (
	TierSmall  Tier = 1
	TierMedium Tier = 2
	TierLarge  Tier = 3
)

func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Body is the positional record shared by every entity kind.
type Body struct {
	ID      EntityID
	Kind    Kind
	Pos     geom.Vec2
	Vel     geom.Vec2
	Heading float64 // radians
	Radius  float64
	Alive   bool
}

// Ship is the player vessel. A session holds at most one.
type Ship struct {
	Body
	Lives             int
	InvulnerableUntil uint64 // tick before which hits are ignored
	FireCooldown      int    // ticks until the next shot is allowed
	Ammo              int

	rechargeTimer  int
	rapidFireTimer int
}

// Asteroid drifts, wraps and splits per tier when shot.
type Asteroid struct {
	Body
	Tier Tier
}

// Bullet ages by one TTL tick per simulation tick and dies at zero or on
// impact. Hostile bullets come from the saucer and only threaten the ship.
type Bullet struct {
	Body
	TTL     int
	Hostile bool
}

// Saucer crosses the screen on a weaving course, firing at the ship. It
// never wraps; it despawns at the far edge.
type Saucer struct {
	Body

	fireTimer int
	dir       float64 // +1 entering from the left, -1 from the right
	phase     float64 // weave oscillator state
}

// PowerUp drifts until collected by the ship or expired.
type PowerUp struct {
	Body
	Effect Effect
	TTL    int
}

// Effect identifies what a collected powerup grants.
type Effect uint8

const (
	EffectAmmo Effect = iota + 1
	EffectRapidFire
	EffectBonusScore
	EffectShield
)

func (e Effect) String() string {
	switch e {
	case EffectAmmo:
		return "ammo"
	case EffectRapidFire:
		return "rapid-fire"
	case EffectBonusScore:
		return "bonus-score"
	case EffectShield:
		return "shield"
	default:
		return "unknown"
	}
}

// State is the top-level game phase.
type State uint8

const (
	StatePlaying State = iota + 1
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Intent is one tick's sampled input snapshot, decoupled from the physical
// device. Simultaneous rotate intents resolve left-first; firing on cooldown
// is a silent no-op.
type Intent struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool
	Pause       bool
}
