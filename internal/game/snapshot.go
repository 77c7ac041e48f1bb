package game

// EntityState is one entity as the renderer sees it.
type EntityState struct {
	ID      uint64  `json:"id"`
	Kind    string  `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Radius  float64 `json:"radius"`
	Tier    int     `json:"tier,omitempty"`
	Effect  string  `json:"effect,omitempty"`
	Hostile bool    `json:"hostile,omitempty"`
}

// Snapshot is the read-only view handed to renderers. The core never
// draws; clients pull snapshots and data flows one way.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	State     string        `json:"state"`
	Score     int           `json:"score"`
	Lives     int           `json:"lives"`
	Wave      int           `json:"wave"`
	Ammo      int           `json:"ammo"`
	Shielded  bool          `json:"shielded,omitempty"`
	RapidFire bool          `json:"rapidFire,omitempty"`
	Entities  []EntityState `json:"entities"`
}

func entityState(b *Body) EntityState {
	return EntityState{
		ID:      uint64(b.ID),
		Kind:    b.Kind.String(),
		X:       b.Pos.X,
		Y:       b.Pos.Y,
		Heading: b.Heading,
		Radius:  b.Radius,
	}
}

// Snapshot copies the visible state out of the session. Entities are
// listed ship first, then saucer, asteroids, bullets and powerups, each
// group in ascending ID order.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  s.tick,
		State: s.state.String(),
		Score: s.score,
		Lives: s.Lives(),
		Wave:  s.wave,
	}
	n := len(s.asteroids) + len(s.bullets) + len(s.powerups) + 2
	snap.Entities = make([]EntityState, 0, n)

	if sh := s.ship; sh != nil && sh.Alive {
		snap.Ammo = sh.Ammo
		snap.Shielded = s.tick < sh.InvulnerableUntil
		snap.RapidFire = sh.rapidFireTimer > 0
		snap.Entities = append(snap.Entities, entityState(&sh.Body))
	}
	if sc := s.saucer; sc != nil && sc.Alive {
		snap.Entities = append(snap.Entities, entityState(&sc.Body))
	}
	for _, a := range s.asteroids {
		if !a.Alive {
			continue
		}
		es := entityState(&a.Body)
		es.Tier = int(a.Tier)
		snap.Entities = append(snap.Entities, es)
	}
	for _, b := range s.bullets {
		if !b.Alive {
			continue
		}
		es := entityState(&b.Body)
		es.Hostile = b.Hostile
		snap.Entities = append(snap.Entities, es)
	}
	for _, p := range s.powerups {
		if !p.Alive {
			continue
		}
		es := entityState(&p.Body)
		es.Effect = p.Effect.String()
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}
