package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/avolanis/asteroids/internal/game"
)

// LoadTuning reads a TOML tuning file over the built-in defaults. Keys
// the tuning table does not know are rejected, so a typo fails loudly
// instead of silently keeping a default.
func LoadTuning(path string) (game.Tuning, error) {
	tun := game.DefaultTuning()
	meta, err := toml.DecodeFile(path, &tun)
	if err != nil {
		return game.Tuning{}, fmt.Errorf("tuning file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return game.Tuning{}, fmt.Errorf("tuning file %s: unknown keys: %s",
			path, strings.Join(keys, ", "))
	}
	return tun, nil
}
