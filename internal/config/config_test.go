package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Width != 480 || cfg.Game.Height != 640 {
		t.Fatalf("playfield = %vx%v, want 480x640", cfg.Game.Width, cfg.Game.Height)
	}
	if cfg.Game.Invaders.Rows != 5 || cfg.Game.Invaders.Cols != 10 {
		t.Fatalf("wave = %dx%d, want 5x10", cfg.Game.Invaders.Rows, cfg.Game.Invaders.Cols)
	}
	if cfg.Game.PowerUps.Duration != 10*time.Second {
		t.Fatalf("duration = %v, want 10s", cfg.Game.PowerUps.Duration)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeFile(t, "invaders.toml", `
[game]
frame_rate = 30

[game.player]
lives = 5

[game.invaders]
rows = 2

[game.powerups]
duration = "4s"

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.FrameRate != 30 {
		t.Fatalf("frame_rate = %d, want 30", cfg.Game.FrameRate)
	}
	if cfg.Game.Player.Lives != 5 {
		t.Fatalf("lives = %d, want 5", cfg.Game.Player.Lives)
	}
	if cfg.Game.Invaders.Rows != 2 || cfg.Game.Invaders.Cols != 10 {
		t.Fatalf("wave = %dx%d, want 2x10", cfg.Game.Invaders.Rows, cfg.Game.Invaders.Cols)
	}
	if cfg.Game.PowerUps.Duration != 4*time.Second {
		t.Fatalf("duration = %v, want 4s", cfg.Game.PowerUps.Duration)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if cfg.Game.Player.Speed != 5 {
		t.Fatalf("unset key lost its default: speed = %v", cfg.Game.Player.Speed)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := writeFile(t, "bad.toml", "[game\nwidth = ")
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("err = %v, want parse error", err)
	}

	invalid := writeFile(t, "invalid.toml", "[game.bullets]\nmagazine = 0\n")
	_, err = Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "magazine") {
		t.Fatalf("err = %v, want magazine validation error", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("SSH_DISPLAY_HOST", "play.example.org")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SSH.Port != "2323" {
		t.Fatalf("ssh port = %q, want 2323", cfg.SSH.Port)
	}
	if cfg.Web.DisplayHost != "play.example.org" {
		t.Fatalf("display host = %q", cfg.Web.DisplayHost)
	}
	if cfg.SSH.Host != "::" {
		t.Fatalf("ssh host = %q, want default", cfg.SSH.Host)
	}

	t.Setenv("INVADERS_LOG_LEVEL", "nonsense")
	if _, err := Load(""); err == nil {
		t.Fatalf("Load accepted an invalid log level from the environment")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(g *GameConfig)
	}{
		{"zero width", func(g *GameConfig) { g.Width = 0 }},
		{"no lives", func(g *GameConfig) { g.Player.Lives = 0 }},
		{"drop chance", func(g *GameConfig) { g.PowerUps.DropChance = 1.5 }},
		{"negative rows", func(g *GameConfig) { g.Invaders.Rows = -1 }},
		{"frame rate", func(g *GameConfig) { g.FrameRate = 0 }},
		{"fire rate", func(g *GameConfig) { g.Invaders.BaseFireRate = -0.1 }},
	}
	for _, tc := range cases {
		g := DefaultGame()
		tc.mutate(&g)
		if err := g.Validate(); err == nil {
			t.Fatalf("%s: Validate accepted invalid config", tc.name)
		}
	}
	if err := DefaultGame().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestFrames(t *testing.T) {
	g := DefaultGame()
	if got := g.Frames(10 * time.Second); got != 600 {
		t.Fatalf("Frames(10s) = %d, want 600", got)
	}
	if got := g.Frames(0); got != 0 {
		t.Fatalf("Frames(0) = %d, want 0", got)
	}
	if got := g.Frames(25 * time.Millisecond); got != 2 {
		t.Fatalf("Frames(25ms) = %d, want 2", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_KEY", "value")
	if got := GetEnv("INVADERS_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("GetEnv = %q, want value", got)
	}
	if got := GetEnv("INVADERS_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}
}

func TestLoadExampleFile(t *testing.T) {
	cfg, err := Load("../../invaders.toml")
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	if cfg.Game.LevelsFile != "data/levels.yaml" {
		t.Fatalf("levels file = %q", cfg.Game.LevelsFile)
	}
	if cfg.Game.PowerUps.Duration != 10*time.Second {
		t.Fatalf("duration = %v, want 10s", cfg.Game.PowerUps.Duration)
	}
	if cfg.Audio.Volume != -1 {
		t.Fatalf("volume = %v, want -1", cfg.Audio.Volume)
	}
	if cfg.Game.Invaders.Rows != 5 {
		t.Fatalf("omitted key lost its default: rows = %d", cfg.Game.Invaders.Rows)
	}
}
