package game

import (
	"math"

	"github.com/avolanis/asteroids/internal/geom"
)

// Advance runs one simulation tick under the given intent. dt is in
// seconds and is clamped to MaxDelta; dt <= 0 is a degenerate tick that
// changes nothing at all, so advancing by zero is idempotent. While
// paused or after game over only the pause/resume edge is honored.
func (s *Session) Advance(in Intent, dt float64) {
	if dt <= 0 {
		return
	}
	if dt > s.tun.MaxDelta {
		dt = s.tun.MaxDelta
	}

	// A held pause key must flip the state once, not strobe it at tick
	// rate, so only the rising edge toggles.
	edge := in.Pause && !s.prevPause
	s.prevPause = in.Pause

	switch s.state {
	case StatePaused:
		if edge {
			s.state = StatePlaying
		}
		return
	case StateGameOver:
		return
	}
	if edge {
		s.state = StatePaused
		return
	}

	s.controlShip(in, dt)
	s.controlSaucer(dt)
	s.integrate(dt)
	s.resolveCollisions()
	s.compact()
	s.flushSpawns()
	s.refillWave()
	s.scheduleSaucer()
	s.tick++
}

func (s *Session) controlShip(in Intent, dt float64) {
	sh := s.ship
	if sh == nil || !sh.Alive {
		return
	}

	switch {
	case in.RotateLeft: // left wins when both rotate intents are set
		sh.Heading = normalizeAngle(sh.Heading - s.tun.ShipTurnRate*dt)
	case in.RotateRight:
		sh.Heading = normalizeAngle(sh.Heading + s.tun.ShipTurnRate*dt)
	}

	if in.Thrust {
		sh.Vel = sh.Vel.Add(geom.FromAngle(sh.Heading).Scale(s.tun.ShipThrust * dt))
		if sh.Vel.Len() > s.tun.ShipMaxSpeed {
			sh.Vel = sh.Vel.Norm().Scale(s.tun.ShipMaxSpeed)
		}
	}

	if sh.FireCooldown > 0 {
		sh.FireCooldown--
	}
	if sh.rapidFireTimer > 0 {
		sh.rapidFireTimer--
	}
	s.rechargeAmmo(sh)

	if in.Fire && sh.FireCooldown == 0 && sh.Ammo > 0 {
		s.fireShip(sh)
	}
}

// normalizeAngle folds a into [-pi, pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func (s *Session) rechargeAmmo(sh *Ship) {
	if sh.Ammo >= s.tun.AmmoMax {
		sh.rechargeTimer = 0
		return
	}
	sh.rechargeTimer++
	if sh.rechargeTimer >= s.tun.AmmoRecharge {
		sh.rechargeTimer = 0
		sh.Ammo = min(sh.Ammo+s.tun.AmmoRechargeAmount, s.tun.AmmoMax)
	}
}

// fireShip spawns a bullet at the nose, inheriting the ship's velocity.
func (s *Session) fireShip(sh *Ship) {
	dir := geom.FromAngle(sh.Heading)
	b := &Bullet{
		Body: Body{
			ID:      s.allocID(),
			Kind:    KindBullet,
			Pos:     geom.Wrap(sh.Pos.Add(dir.Scale(sh.Radius)), s.bounds),
			Vel:     sh.Vel.Add(dir.Scale(s.tun.BulletSpeed)),
			Heading: sh.Heading,
			Radius:  s.tun.BulletRadius,
			Alive:   true,
		},
		TTL: s.tun.BulletTTL,
	}
	s.spawnedBullets = append(s.spawnedBullets, b)

	cd := s.tun.FireCooldown
	if sh.rapidFireTimer > 0 {
		cd = int(float64(cd) * s.tun.RapidFireFactor)
		if cd < 1 {
			cd = 1
		}
	}
	sh.FireCooldown = cd
	sh.Ammo--
}

// controlSaucer moves the saucer on its weaving course and fires at the
// ship. Saucers do not wrap: crossing the far edge despawns them.
func (s *Session) controlSaucer(dt float64) {
	sc := s.saucer
	if sc == nil || !sc.Alive {
		return
	}

	sc.phase += s.tun.SaucerWaveFreq * dt
	sc.Vel = geom.Vec2{
		X: sc.dir * s.tun.SaucerSpeed,
		Y: math.Sin(sc.phase) * s.tun.SaucerWaveAmp,
	}

	x := sc.Pos.X + sc.Vel.X*dt
	if x < 0 || x >= s.bounds.W {
		sc.Alive = false
		return
	}
	sc.Pos = geom.Wrap(geom.Vec2{X: x, Y: sc.Pos.Y + sc.Vel.Y*dt}, s.bounds)

	sc.fireTimer--
	if sc.fireTimer <= 0 {
		s.fireSaucer(sc)
		sc.fireTimer = s.tun.SaucerFireEvery
	}
}

// fireSaucer shoots a hostile bullet at the ship along the shortest
// toroidal path, with a little aim jitter.
func (s *Session) fireSaucer(sc *Saucer) {
	sh := s.ship
	if sh == nil || !sh.Alive {
		return
	}
	aim := geom.TorusDelta(sc.Pos, sh.Pos, s.bounds).Angle()
	aim += (s.rng.Float64()*2 - 1) * s.tun.SaucerAimJitter
	dir := geom.FromAngle(aim)
	b := &Bullet{
		Body: Body{
			ID:      s.allocID(),
			Kind:    KindBullet,
			Pos:     geom.Wrap(sc.Pos.Add(dir.Scale(sc.Radius)), s.bounds),
			Vel:     dir.Scale(s.tun.SaucerBulletSpeed),
			Heading: aim,
			Radius:  s.tun.BulletRadius,
			Alive:   true,
		},
		TTL:     s.tun.BulletTTL,
		Hostile: true,
	}
	s.spawnedBullets = append(s.spawnedBullets, b)
}

// integrate moves every entity by its velocity and wraps positions back
// into bounds. Bullet and powerup lifetimes age by one tick here.
func (s *Session) integrate(dt float64) {
	if sh := s.ship; sh != nil && sh.Alive {
		sh.Pos = geom.Wrap(sh.Pos.Add(sh.Vel.Scale(dt)), s.bounds)
	}
	for _, a := range s.asteroids {
		a.Pos = geom.Wrap(a.Pos.Add(a.Vel.Scale(dt)), s.bounds)
	}
	for _, b := range s.bullets {
		b.Pos = geom.Wrap(b.Pos.Add(b.Vel.Scale(dt)), s.bounds)
		b.TTL--
		if b.TTL <= 0 {
			b.Alive = false
		}
	}
	for _, p := range s.powerups {
		p.Pos = geom.Wrap(p.Pos.Add(p.Vel.Scale(dt)), s.bounds)
		p.TTL--
		if p.TTL <= 0 {
			p.Alive = false
		}
	}
}

func (s *Session) resolveCollisions() {
	pairs := FindCollisions(s.asteroids, s.bullets, s.ship, s.bounds)

	asteroidByID := make(map[EntityID]*Asteroid, len(s.asteroids))
	for _, a := range s.asteroids {
		asteroidByID[a.ID] = a
	}
	bulletByID := make(map[EntityID]*Bullet, len(s.bullets))
	for _, b := range s.bullets {
		bulletByID[b.ID] = b
	}

	for _, p := range pairs {
		a := asteroidByID[p.A]
		if a == nil || !a.Alive {
			// Destroyed earlier this tick; a second bullet keeps flying
			// and a ship overlap with the wreck is moot.
			continue
		}
		if s.ship != nil && p.B == s.ship.ID {
			s.hitShip()
			continue
		}
		b := bulletByID[p.B]
		if b == nil || !b.Alive {
			continue
		}
		b.Alive = false
		s.destroyAsteroid(a)
	}

	if s.cfg.Saucers {
		s.resolveSaucer()
		s.resolveHostileBullets()
	}
	if s.cfg.PowerUps {
		s.resolvePickups()
	}
}

// destroyAsteroid scores the kill and queues the two split children.
// Small asteroids vanish without fragments.
func (s *Session) destroyAsteroid(a *Asteroid) {
	a.Alive = false
	s.score += TierScore(a.Tier)
	if a.Tier > TierSmall {
		for i := 0; i < 2; i++ {
			s.spawnedAsteroids = append(s.spawnedAsteroids, s.newSplitChild(a))
		}
	}
	if s.cfg.PowerUps && s.rng.Float64() < s.tun.DropChance {
		s.spawnedPowerups = append(s.spawnedPowerups, s.newPowerUp(a.Pos))
	}
}

func (s *Session) newSplitChild(parent *Asteroid) *Asteroid {
	tier := parent.Tier - 1
	angle := s.rng.Float64() * 2 * math.Pi
	return &Asteroid{
		Body: Body{
			ID:     s.allocID(),
			Kind:   KindAsteroid,
			Pos:    parent.Pos,
			Vel:    geom.FromAngle(angle).Scale(s.tierSpeed(tier)),
			Radius: parent.Radius / 2,
			Alive:  true,
		},
		Tier: tier,
	}
}

// hitShip handles one ship impact: invulnerability absorbs it, otherwise
// a life is spent and the ship respawns at center. Lives below zero end
// the game, so a session with N lives survives N deaths.
func (s *Session) hitShip() {
	sh := s.ship
	if sh == nil || !sh.Alive {
		return
	}
	if s.tick < sh.InvulnerableUntil {
		return
	}
	sh.Lives--
	if sh.Lives < 0 {
		sh.Alive = false
		s.state = StateGameOver
		return
	}
	sh.Pos = geom.Vec2{X: s.bounds.W / 2, Y: s.bounds.H / 2}
	sh.Vel = geom.Vec2{}
	sh.Heading = -math.Pi / 2
	sh.InvulnerableUntil = s.tick + uint64(s.tun.Invulnerability)
	sh.FireCooldown = 0
}

func (s *Session) resolveSaucer() {
	sc := s.saucer
	if sc == nil || !sc.Alive {
		return
	}
	for _, b := range s.bullets {
		if !b.Alive || b.Hostile {
			continue
		}
		if geom.CirclesOverlap(b.Pos, sc.Pos, b.Radius, sc.Radius, s.bounds) {
			b.Alive = false
			sc.Alive = false
			s.score += s.tun.SaucerScore
			return
		}
	}
	if s.ship != nil && s.ship.Alive &&
		geom.CirclesOverlap(s.ship.Pos, sc.Pos, s.ship.Radius, sc.Radius, s.bounds) {
		sc.Alive = false
		s.score += s.tun.SaucerScore
		s.hitShip()
	}
}

func (s *Session) resolveHostileBullets() {
	sh := s.ship
	if sh == nil || !sh.Alive {
		return
	}
	for _, b := range s.bullets {
		if !b.Alive || !b.Hostile {
			continue
		}
		if geom.CirclesOverlap(b.Pos, sh.Pos, b.Radius, sh.Radius, s.bounds) {
			// The shield eats the bullet either way.
			b.Alive = false
			s.hitShip()
		}
	}
}

func (s *Session) resolvePickups() {
	sh := s.ship
	if sh == nil || !sh.Alive {
		return
	}
	for _, p := range s.powerups {
		if !p.Alive {
			continue
		}
		if geom.CirclesOverlap(p.Pos, sh.Pos, p.Radius, sh.Radius, s.bounds) {
			p.Alive = false
			s.applyEffect(sh, p.Effect)
		}
	}
}

func (s *Session) applyEffect(sh *Ship, e Effect) {
	switch e {
	case EffectAmmo:
		sh.Ammo = min(sh.Ammo+s.tun.AmmoPickup, s.tun.AmmoMax)
	case EffectRapidFire:
		sh.rapidFireTimer = s.tun.RapidFireTicks
	case EffectBonusScore:
		s.score += s.tun.ScoreBonus
	case EffectShield:
		sh.InvulnerableUntil = s.tick + uint64(s.tun.ShieldTicks)
	}
}

// compact drops dead entities at end of tick, preserving order. Nothing
// is removed mid-scan; everything above only flips Alive.
func (s *Session) compact() {
	keptA := s.asteroids[:0]
	for _, a := range s.asteroids {
		if a.Alive {
			keptA = append(keptA, a)
		}
	}
	s.asteroids = keptA

	keptB := s.bullets[:0]
	for _, b := range s.bullets {
		if b.Alive {
			keptB = append(keptB, b)
		}
	}
	s.bullets = keptB

	keptP := s.powerups[:0]
	for _, p := range s.powerups {
		if p.Alive {
			keptP = append(keptP, p)
		}
	}
	s.powerups = keptP

	if s.saucer != nil && !s.saucer.Alive {
		s.saucer = nil
	}
}

func (s *Session) flushSpawns() {
	s.asteroids = append(s.asteroids, s.spawnedAsteroids...)
	s.spawnedAsteroids = s.spawnedAsteroids[:0]
	s.bullets = append(s.bullets, s.spawnedBullets...)
	s.spawnedBullets = s.spawnedBullets[:0]
	s.powerups = append(s.powerups, s.spawnedPowerups...)
	s.spawnedPowerups = s.spawnedPowerups[:0]
}

// refillWave starts the next wave once the field is clear.
func (s *Session) refillWave() {
	if len(s.asteroids) > 0 {
		return
	}
	s.wave++
	s.spawnWave()
}

func (s *Session) scheduleSaucer() {
	if !s.cfg.Saucers || s.saucer != nil {
		return
	}
	s.saucerTimer--
	if s.saucerTimer <= 0 {
		s.saucer = s.newSaucer()
		s.saucerTimer = s.nextSaucerDelay()
	}
}
