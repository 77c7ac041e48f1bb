package game

import (
	"math"
	"math/rand"

	"github.com/avolanis/asteroids/internal/geom"
)

// Session owns every entity of one game. All mutation happens inside
// Advance; nothing here is safe for concurrent use.
type Session struct {
	cfg    Config
	tun    Tuning
	bounds geom.Size
	rng    *rand.Rand

	tick   uint64
	nextID EntityID
	state  State

	score int
	wave  int

	ship      *Ship
	saucer    *Saucer
	asteroids []*Asteroid
	bullets   []*Bullet
	powerups  []*PowerUp

	// Spawns requested mid-tick are queued and flushed after the removal
	// pass, so nothing is ever added to a slice a scan may be walking.
	spawnedAsteroids []*Asteroid
	spawnedBullets   []*Bullet
	spawnedPowerups  []*PowerUp

	saucerTimer int
	prevPause   bool
}

// NewSession validates cfg and builds a ready-to-run game: ship centered,
// first asteroid wave on the field, saucer timer armed. Sessions with equal
// configs (seed included) replay identically under equal inputs.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	tun := DefaultTuning()
	if cfg.Tuning != nil {
		tun = *cfg.Tuning
	}
	tun = tun.forDifficulty(cfg.Difficulty)
	if err := tun.validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		tun:    tun,
		bounds: geom.Size{W: cfg.Width, H: cfg.Height},
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		state:  StatePlaying,
	}
	s.ship = s.newShip()
	s.spawnWave()
	s.saucerTimer = s.nextSaucerDelay()
	return s, nil
}

func (s *Session) allocID() EntityID {
	s.nextID++
	return s.nextID
}

func (s *Session) newShip() *Ship {
	return &Ship{
		Body: Body{
			ID:      s.allocID(),
			Kind:    KindShip,
			Pos:     geom.Vec2{X: s.bounds.W / 2, Y: s.bounds.H / 2},
			Heading: -math.Pi / 2,
			Radius:  s.tun.ShipRadius,
			Alive:   true,
		},
		Lives:             s.cfg.InitialLives,
		InvulnerableUntil: s.tick + uint64(s.tun.Invulnerability),
		Ammo:              s.tun.AmmoInitial,
	}
}

func (s *Session) tierRadius(t Tier) float64 {
	r := s.tun.LargeRadius
	for i := TierLarge; i > t; i-- {
		r /= 2
	}
	return r
}

func (s *Session) tierSpeed(t Tier) float64 {
	switch t {
	case TierLarge:
		return s.tun.SpeedLarge
	case TierMedium:
		return s.tun.SpeedMedium
	default:
		return s.tun.SpeedSmall
	}
}

// edgePoint picks a random point on the wrap seam. On a torus the four
// screen edges collapse to the two seam lines x=0 and y=0.
func (s *Session) edgePoint() geom.Vec2 {
	if s.rng.Intn(2) == 0 {
		return geom.Vec2{X: s.rng.Float64() * s.bounds.W, Y: 0}
	}
	return geom.Vec2{X: 0, Y: s.rng.Float64() * s.bounds.H}
}

// spawnEdgeAsteroid places a fresh asteroid on the seam, resampling a few
// times to stay outside the keep-out radius around the ship.
func (s *Session) spawnEdgeAsteroid(tier Tier) *Asteroid {
	safe := s.tun.SafeSpawnRadius * s.tun.SafeSpawnRadius
	pos := s.edgePoint()
	for try := 0; try < 16; try++ {
		if s.ship == nil || geom.TorusDistSq(pos, s.ship.Pos, s.bounds) >= safe {
			break
		}
		pos = s.edgePoint()
	}
	angle := s.rng.Float64() * 2 * math.Pi
	return &Asteroid{
		Body: Body{
			ID:     s.allocID(),
			Kind:   KindAsteroid,
			Pos:    pos,
			Vel:    geom.FromAngle(angle).Scale(s.tierSpeed(tier)),
			Radius: s.tierRadius(tier),
			Alive:  true,
		},
		Tier: tier,
	}
}

// spawnWave fills the field with initial_count + wave Large asteroids.
func (s *Session) spawnWave() {
	n := s.cfg.InitialAsteroids + s.wave
	for i := 0; i < n; i++ {
		s.asteroids = append(s.asteroids, s.spawnEdgeAsteroid(TierLarge))
	}
}

func (s *Session) newSaucer() *Saucer {
	dir := 1.0
	x := 0.0
	if s.rng.Intn(2) == 1 {
		dir = -1
		x = s.bounds.W - 1
	}
	y := s.bounds.H * (0.2 + 0.6*s.rng.Float64())
	return &Saucer{
		Body: Body{
			ID:     s.allocID(),
			Kind:   KindSaucer,
			Pos:    geom.Vec2{X: x, Y: y},
			Vel:    geom.Vec2{X: dir * s.tun.SaucerSpeed},
			Radius: s.tun.SaucerRadius,
			Alive:  true,
		},
		fireTimer: s.tun.SaucerFireEvery,
		dir:       dir,
	}
}

func (s *Session) nextSaucerDelay() int {
	base := s.tun.SaucerInterval
	return base/2 + s.rng.Intn(base+1)
}

func (s *Session) newPowerUp(pos geom.Vec2) *PowerUp {
	effects := [...]Effect{EffectAmmo, EffectRapidFire, EffectBonusScore, EffectShield}
	angle := s.rng.Float64() * 2 * math.Pi
	return &PowerUp{
		Body: Body{
			ID:     s.allocID(),
			Kind:   KindPowerUp,
			Pos:    pos,
			Vel:    geom.FromAngle(angle).Scale(s.tun.PowerUpDrift),
			Radius: s.tun.PowerUpRadius,
			Alive:  true,
		},
		Effect: effects[s.rng.Intn(len(effects))],
		TTL:    s.tun.PowerUpTTL,
	}
}

func (s *Session) State() State      { return s.state }
func (s *Session) Score() int        { return s.score }
func (s *Session) Wave() int         { return s.wave }
func (s *Session) Tick() uint64      { return s.tick }
func (s *Session) Bounds() geom.Size { return s.bounds }

// Tuning returns the resolved constants the session plays with, difficulty
// scaling included.
func (s *Session) Tuning() Tuning { return s.tun }

// Lives reports the remaining lives, clamped at zero: the counter passes
// through -1 internally on the final death.
func (s *Session) Lives() int {
	if s.ship == nil || s.ship.Lives < 0 {
		return 0
	}
	return s.ship.Lives
}
