package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/client"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	logger, err := logging.New(logging.ToFile(cfg.Logging, config.GetEnv("INVADERS_LOG", "invaders.log")))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	rt, err := loop.Setup(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	sound, err := audio.New(cfg.Audio, logger)
	if err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	defer sound.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()
	draw.EnterAltScreen(os.Stdout)
	defer draw.ExitAltScreen(os.Stdout)

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(context.Background(), reader, os.Stdout, rt, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Sound:    sound,
	})
}
