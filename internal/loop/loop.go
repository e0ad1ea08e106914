// Package loop wires configuration into running sessions and runs a local
// terminal game.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/level"
	"github.com/tomz197/invaders/internal/loop/client"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/scripting"
)

// Runtime holds everything shared by the sessions of one process.
type Runtime struct {
	Config     *config.Config
	Log        *zap.Logger
	levels     *level.Set
	difficulty engine.Difficulty
	script     *scripting.Difficulty
}

// Setup loads the level roster and difficulty script named by cfg.
// The scripted difficulty is not safe for concurrent use; every engine built
// by one Runtime must be advanced from the same goroutine.
func Setup(cfg *config.Config, log *zap.Logger) (*Runtime, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rt := &Runtime{
		Config:     cfg,
		Log:        log,
		difficulty: engine.NewLinearDifficulty(cfg.Game.Invaders),
	}

	if path := cfg.Game.LevelsFile; path != "" {
		set, err := level.Load(path)
		if err != nil {
			return nil, err
		}
		rt.levels = set
		log.Info("levels loaded", zap.String("path", path), zap.Int("count", set.Len()))
	}

	if path := cfg.Game.DifficultyScript; path != "" {
		script, err := scripting.NewDifficulty(path, rt.difficulty, log)
		if err != nil {
			return nil, err
		}
		rt.script = script
		rt.difficulty = script
		log.Info("difficulty script loaded", zap.String("path", path))
	}

	return rt, nil
}

// NewEngine builds a fresh session from the runtime's configuration.
func (rt *Runtime) NewEngine() (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithLogger(rt.Log),
		engine.WithDifficulty(rt.difficulty),
	}
	if rt.levels != nil {
		opts = append(opts, engine.WithLevels(rt.levels))
	}
	return engine.New(rt.Config.Game, opts...)
}

// Close releases the difficulty script.
func (rt *Runtime) Close() {
	if rt.script != nil {
		rt.script.Close()
	}
}

// Run plays a single local session on r and w until the player quits.
// The session runs on an in-process server, the same path remote players take.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, rt *Runtime, opts client.ClientOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := server.NewServer(rt.NewEngine, rt.Log, server.WithTickRate(rt.Config.Game.FrameRate))
	go srv.Run(ctx)

	opts.FieldWidth = rt.Config.Game.Width
	opts.FieldHeight = rt.Config.Game.Height
	opts.FrameRate = rt.Config.Game.FrameRate

	c := client.NewClient(srv, r, w, opts)
	if err := c.Run(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}
