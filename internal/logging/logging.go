// Package logging builds the zap logger used by every command.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tomz197/invaders/internal/config"
)

// New builds a logger from cfg. Format "json" selects the production
// encoder, anything else a coloured console encoder. An unknown level
// falls back to info.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if len(cfg.Output) > 0 {
		zapCfg.OutputPaths = cfg.Output
		zapCfg.ErrorOutputPaths = cfg.Output
	}

	return zapCfg.Build()
}

// ToFile returns cfg with output redirected to path. Terminal frontends use
// it so log lines do not tear the rendered frame.
func ToFile(cfg config.LoggingConfig, path string) config.LoggingConfig {
	cfg.Output = []string{path}
	cfg.Format = "json"
	return cfg
}
