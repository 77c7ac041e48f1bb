package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by NewSession for configurations the
// simulation cannot run with. Inspect with errors.Is.
var ErrInvalidConfig = errors.New("invalid session configuration")

// Difficulty selects a preset of tuning multipliers applied at session
// creation. The zero value is Normal.
type Difficulty uint8

const (
	DifficultyNormal Difficulty = iota
	DifficultyEasy
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyNormal:
		return "normal"
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a user-supplied name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return DifficultyNormal, nil
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("%w: difficulty %q", ErrInvalidConfig, s)
	}
}

// Config describes one game session. Seed feeds the session RNG; equal
// configs replay identically.
type Config struct {
	Width, Height    float64
	InitialAsteroids int
	InitialLives     int
	Difficulty       Difficulty
	Seed             int64

	// Saucers and PowerUps switch the bonus features; the classic rules are
	// unaffected when off.
	Saucers  bool
	PowerUps bool

	// Tuning overrides DefaultTuning when non-nil.
	Tuning *Tuning
}

// DefaultConfig returns the shipped 800x600 game with all features on.
func DefaultConfig(seed int64) Config {
	return Config{
		Width:            800,
		Height:           600,
		InitialAsteroids: 4,
		InitialLives:     3,
		Difficulty:       DifficultyNormal,
		Seed:             seed,
		Saucers:          true,
		PowerUps:         true,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: screen bounds %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.InitialAsteroids <= 0 {
		return fmt.Errorf("%w: initial asteroid count %d", ErrInvalidConfig, c.InitialAsteroids)
	}
	if c.InitialLives < 0 {
		return fmt.Errorf("%w: initial lives %d", ErrInvalidConfig, c.InitialLives)
	}
	if c.Difficulty > DifficultyHard {
		return fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfig, c.Difficulty)
	}
	return nil
}
