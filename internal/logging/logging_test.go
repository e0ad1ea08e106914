package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tomz197/invaders/internal/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		log, err := New(config.LoggingConfig{Level: tc.level, Format: "console", Output: []string{"stderr"}})
		if err != nil {
			t.Fatalf("New(%q): %v", tc.level, err)
		}
		if !log.Core().Enabled(tc.want) {
			t.Fatalf("level %q: %v not enabled", tc.level, tc.want)
		}
		if tc.want > zapcore.DebugLevel && log.Core().Enabled(tc.want-1) {
			t.Fatalf("level %q: %v unexpectedly enabled", tc.level, tc.want-1)
		}
	}
}

func TestToFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(ToFile(config.LoggingConfig{Level: "info"}, path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("level started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"level started"`) {
		t.Fatalf("log file = %q, want json entry", data)
	}
}
