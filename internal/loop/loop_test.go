package loop

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/loop/client"
)

func TestSetupDefaults(t *testing.T) {
	rt, err := Setup(config.Defaults(), nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	eng, err := rt.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if got := eng.Snapshot().AliveInvaders(); got != 50 {
		t.Fatalf("alive = %d, want 50", got)
	}
}

func TestSetupWithShippedData(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.LevelsFile = "../../data/levels.yaml"
	cfg.Game.DifficultyScript = "../../scripts/difficulty.lua"

	rt, err := Setup(cfg, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	eng, err := rt.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	snap := eng.Snapshot()
	if snap.LevelName == "" {
		t.Fatalf("level name missing with a roster")
	}
	eng.Advance(engine.Input{})
}

func TestSetupReportsMissingFiles(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.LevelsFile = "does-not-exist.yaml"
	if _, err := Setup(cfg, nil); err == nil {
		t.Fatalf("Setup accepted a missing levels file")
	}

	cfg = config.Defaults()
	cfg.Game.DifficultyScript = "does-not-exist.lua"
	if _, err := Setup(cfg, nil); err == nil {
		t.Fatalf("Setup accepted a missing script")
	}
}

func TestRunQuits(t *testing.T) {
	rt, err := Setup(config.Defaults(), nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	var out bytes.Buffer
	opts := client.ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 40, nil },
	}
	if err := Run(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, rt, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("nothing drawn")
	}
}
