package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
)

func main() {
	cfg, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rt, err := loop.Setup(cfg, logger)
	if err != nil {
		logger.Fatal("setup game", zap.Error(err))
	}
	defer rt.Close()

	eng, err := rt.NewEngine()
	if err != nil {
		logger.Fatal("create session", zap.Error(err))
	}

	sound, err := audio.New(cfg.Audio, logger)
	if err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	defer sound.Close()

	g := desktop.New(eng, desktop.Options{Sound: sound, Log: logger, FrameRate: cfg.Game.FrameRate})

	ebiten.SetWindowSize(int(cfg.Game.Width), int(cfg.Game.Height))
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(cfg.Game.FrameRate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
