package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avolanis/asteroids/internal/game"
)

func writeTuningFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	return path
}

func TestLoadTuningOverridesDefaults(t *testing.T) {
	path := writeTuningFile(t, "ship_thrust = 600.0\nbullet_ttl = 90\n")
	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tun.ShipThrust != 600 || tun.BulletTTL != 90 {
		t.Fatalf("overrides not applied: thrust=%v ttl=%d", tun.ShipThrust, tun.BulletTTL)
	}
	if def := game.DefaultTuning(); tun.ShipMaxSpeed != def.ShipMaxSpeed {
		t.Fatalf("untouched key drifted from default: %v", tun.ShipMaxSpeed)
	}
}

func TestLoadTuningRejectsUnknownKeys(t *testing.T) {
	path := writeTuningFile(t, "ship_thrst = 600.0\n")
	if _, err := LoadTuning(path); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("LoadTuning error = %v, want unknown key complaint", err)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing tuning file did not error")
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("ASTEROIDS_TEST_KEY", "set")
	if got := GetEnv("ASTEROIDS_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("GetEnv = %q, want the set value", got)
	}
	if got := GetEnv("ASTEROIDS_TEST_KEY_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want the fallback", got)
	}
}
