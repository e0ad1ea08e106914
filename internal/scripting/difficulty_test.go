package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/engine"
)

func fallback() engine.LinearDifficulty {
	return engine.NewLinearDifficulty(config.DefaultGame().Invaders)
}

func TestScriptedCurve(t *testing.T) {
	d, err := NewDifficultyString(`
function invader_speed(level, dead) return level + dead end
function fire_rate(level) return level / 100 end
`, fallback(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer d.Close()

	if got := d.InvaderSpeed(2, 3); got != 5 {
		t.Fatalf("InvaderSpeed = %v, want 5", got)
	}
	if got := d.FireRate(4); got != 0.04 {
		t.Fatalf("FireRate = %v, want 0.04", got)
	}
	if got := d.FireRate(500); got != 1 {
		t.Fatalf("FireRate = %v, want capped 1", got)
	}
}

func TestScriptFallsBack(t *testing.T) {
	fb := fallback()
	cases := map[string]string{
		"missing":  `x = 1`,
		"error":    `function invader_speed() error("boom") end function fire_rate() error("boom") end`,
		"string":   `function invader_speed() return "fast" end function fire_rate() return "often" end`,
		"negative": `function invader_speed() return -1 end function fire_rate() return -1 end`,
	}
	for name, src := range cases {
		d, err := NewDifficultyString(src, fb, nil)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if got, want := d.InvaderSpeed(3, 7), fb.InvaderSpeed(3, 7); got != want {
			t.Fatalf("%s: InvaderSpeed = %v, want fallback %v", name, got, want)
		}
		if got, want := d.FireRate(3), fb.FireRate(3); got != want {
			t.Fatalf("%s: FireRate = %v, want fallback %v", name, got, want)
		}
		d.Close()
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := NewDifficultyString(`function (`, fallback(), nil); err == nil {
		t.Fatalf("syntax error accepted")
	}
	if _, err := NewDifficulty(filepath.Join(t.TempDir(), "none.lua"), fallback(), nil); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestShippedScriptMatchesDefaults(t *testing.T) {
	path := filepath.Join("..", "..", "scripts", "difficulty.lua")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("script not found: %v", err)
	}
	d, err := NewDifficulty(path, fallback(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer d.Close()

	fb := fallback()
	if got, want := d.InvaderSpeed(1, 0), fb.InvaderSpeed(1, 0); got != want {
		t.Fatalf("InvaderSpeed(1,0) = %v, want %v", got, want)
	}
	if d.InvaderSpeed(1, 49) <= fb.InvaderSpeed(1, 49) {
		t.Fatalf("last invaders are not boosted")
	}
	if got := d.FireRate(100); got != 0.05 {
		t.Fatalf("FireRate(100) = %v, want capped 0.05", got)
	}
}

func TestDrivesEngine(t *testing.T) {
	d, err := NewDifficultyString(`
function invader_speed(level, dead) return 0 end
function fire_rate(level) return 0 end
`, fallback(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer d.Close()

	e, err := engine.New(config.DefaultGame(), engine.WithDifficulty(d))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	before := e.Snapshot().Invaders[0].X
	for i := 0; i < 30; i++ {
		e.Advance(engine.Input{})
	}
	s := e.Snapshot()
	if s.Invaders[0].X != before {
		t.Fatalf("wave moved with scripted speed 0")
	}
	if len(s.InvaderBullets) != 0 {
		t.Fatalf("invaders fired with scripted rate 0")
	}
}
