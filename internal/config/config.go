// Package config loads the TOML configuration shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the file-backed configuration shared by all commands.
type Config struct {
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
	SSH     SSHConfig     `toml:"ssh"`
	Web     WebConfig     `toml:"web"`
	Audio   AudioConfig   `toml:"audio"`
}

// GameConfig holds every gameplay constant. Distances are playfield units,
// speeds are units per frame.
type GameConfig struct {
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	FrameRate int     `toml:"frame_rate"` // Frames per second, used to convert durations

	Player   PlayerConfig  `toml:"player"`
	Bullets  BulletConfig  `toml:"bullets"`
	Invaders InvaderConfig `toml:"invaders"`
	Shields  ShieldConfig  `toml:"shields"`
	PowerUps PowerUpConfig `toml:"powerups"`
	Scoring  ScoringConfig `toml:"scoring"`
	FX       EffectsConfig `toml:"fx"`

	LevelsFile       string `toml:"levels_file"`       // Optional YAML level roster
	DifficultyScript string `toml:"difficulty_script"` // Optional Lua difficulty curve
}

type PlayerConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Speed  float64 `toml:"speed"`
	Margin float64 `toml:"margin"` // Gap between ship and bottom edge
	Lives  int     `toml:"lives"`
}

type BulletConfig struct {
	Width            float64   `toml:"width"`
	Height           float64   `toml:"height"`
	Speed            float64   `toml:"speed"`
	InvaderSpeed     float64   `toml:"invader_speed"`
	Magazine         int       `toml:"magazine"`          // Max player bullets in flight without multishot
	MultishotOffsets []float64 `toml:"multishot_offsets"` // Fractions of ship width
}

type InvaderConfig struct {
	Rows             int     `toml:"rows"`
	Cols             int     `toml:"cols"`
	Width            float64 `toml:"width"`
	Height           float64 `toml:"height"`
	Padding          float64 `toml:"padding"`
	StartY           float64 `toml:"start_y"`
	LevelYOffset     float64 `toml:"level_y_offset"` // Extra start depth per level
	BaseSpeed        float64 `toml:"base_speed"`
	DeadSpeedBonus   float64 `toml:"dead_speed_bonus"`  // Added per dead invader
	LevelSpeedBonus  float64 `toml:"level_speed_bonus"` // Added per level after the first
	Drop             float64 `toml:"drop"`
	BaseFireRate     float64 `toml:"base_fire_rate"` // Per invader per frame
	FireRateIncrease float64 `toml:"fire_rate_increase"`
}

type ShieldConfig struct {
	Count               int     `toml:"count"`
	Rows                int     `toml:"rows"`
	Cols                int     `toml:"cols"`
	BlockSize           float64 `toml:"block_size"`
	Offset              float64 `toml:"offset"` // Distance of the cluster top from the bottom edge
	HP                  int     `toml:"hp"`
	AbsorbPlayerBullets bool    `toml:"absorb_player_bullets"`
	RebuildEachLevel    bool    `toml:"rebuild_each_level"`
}

type PowerUpConfig struct {
	DropChance        float64       `toml:"drop_chance"`
	Size              float64       `toml:"size"`
	Speed             float64       `toml:"speed"`
	Duration          time.Duration `toml:"duration"`
	SpeedupMultiplier float64       `toml:"speedup_multiplier"`
}

type ScoringConfig struct {
	PerKill int `toml:"per_kill"`
}

type EffectsConfig struct {
	KillParticles  int     `toml:"kill_particles"`
	HitParticles   int     `toml:"hit_particles"`
	ParticleSpeed  float64 `toml:"particle_speed"`
	ParticleRadius float64 `toml:"particle_radius"`
	ParticleLife   int     `toml:"particle_life"`
	TextLife       int     `toml:"text_life"`
	TextRise       float64 `toml:"text_rise"`
	HitText        string  `toml:"hit_text"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`
	Format string   `toml:"format"` // "json" or "console"
	Output []string `toml:"output"` // zap output paths
}

type SSHConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	HostKey string `toml:"host_key"`
}

type WebConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	DisplayHost string `toml:"display_host"` // Host shown in the ssh command on the landing page
}

// AudioConfig controls the optional sound effects of local frontends.
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // Base-2 exponent, 0 is unchanged
}

// Load reads the TOML file at path over the defaults. An empty path yields
// the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration of the classic game.
func Defaults() *Config {
	return &Config{
		Game: DefaultGame(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: []string{"stderr"},
		},
		SSH: SSHConfig{
			Host:    "::",
			Port:    "2222",
			HostKey: "/app/keys/host_key",
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     -1,
		},
	}
}

// DefaultGame returns the classic gameplay constants.
func DefaultGame() GameConfig {
	return GameConfig{
		Width:     480,
		Height:    640,
		FrameRate: 60,
		Player: PlayerConfig{
			Width:  50,
			Height: 30,
			Speed:  5,
			Margin: 40,
			Lives:  3,
		},
		Bullets: BulletConfig{
			Width:            5,
			Height:           15,
			Speed:            7,
			InvaderSpeed:     3.5,
			Magazine:         3,
			MultishotOffsets: []float64{0.25, 0.5, 0.75},
		},
		Invaders: InvaderConfig{
			Rows:             5,
			Cols:             10,
			Width:            30,
			Height:           20,
			Padding:          10,
			StartY:           50,
			LevelYOffset:     10,
			BaseSpeed:        0.3,
			DeadSpeedBonus:   0.02,
			LevelSpeedBonus:  0.1,
			Drop:             20,
			BaseFireRate:     0.001,
			FireRateIncrease: 0.003,
		},
		Shields: ShieldConfig{
			Count:               4,
			Rows:                3,
			Cols:                7,
			BlockSize:           8,
			Offset:              120,
			HP:                  4,
			AbsorbPlayerBullets: true,
			RebuildEachLevel:    false,
		},
		PowerUps: PowerUpConfig{
			DropChance:        0.1,
			Size:              20,
			Speed:             2,
			Duration:          10 * time.Second,
			SpeedupMultiplier: 1.5,
		},
		Scoring: ScoringConfig{
			PerKill: 10,
		},
		FX: EffectsConfig{
			KillParticles:  15,
			HitParticles:   8,
			ParticleSpeed:  1,
			ParticleRadius: 3,
			ParticleLife:   60,
			TextLife:       60,
			TextRise:       1,
			HitText:        "ヒット！",
		},
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not json or console", c.Logging.Format)
	}
	return nil
}

// Validate checks that gameplay constants describe a playable field.
func (g GameConfig) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return errors.New("game.width and game.height must be positive")
	case g.FrameRate <= 0:
		return errors.New("game.frame_rate must be positive")
	case g.Player.Width <= 0 || g.Player.Height <= 0:
		return errors.New("game.player size must be positive")
	case g.Player.Width > g.Width:
		return errors.New("game.player.width exceeds the playfield")
	case g.Player.Speed < 0:
		return errors.New("game.player.speed must not be negative")
	case g.Player.Lives < 1:
		return errors.New("game.player.lives must be at least 1")
	case g.Bullets.Width <= 0 || g.Bullets.Height <= 0:
		return errors.New("game.bullets size must be positive")
	case g.Bullets.Speed <= 0 || g.Bullets.InvaderSpeed <= 0:
		return errors.New("game.bullets speeds must be positive")
	case g.Bullets.Magazine < 1:
		return errors.New("game.bullets.magazine must be at least 1")
	case g.Invaders.Rows < 0 || g.Invaders.Cols < 0:
		return errors.New("game.invaders rows and cols must not be negative")
	case g.Invaders.Width <= 0 || g.Invaders.Height <= 0:
		return errors.New("game.invaders size must be positive")
	case g.Invaders.Padding < 0 || g.Invaders.Drop < 0:
		return errors.New("game.invaders padding and drop must not be negative")
	case !probability(g.Invaders.BaseFireRate) || g.Invaders.FireRateIncrease < 0:
		return errors.New("game.invaders fire rate must be a probability")
	case g.Shields.Count < 0 || g.Shields.Rows < 0 || g.Shields.Cols < 0:
		return errors.New("game.shields counts must not be negative")
	case g.Shields.Count > 0 && (g.Shields.BlockSize <= 0 || g.Shields.HP < 1):
		return errors.New("game.shields block_size and hp must be positive")
	case !probability(g.PowerUps.DropChance):
		return errors.New("game.powerups.drop_chance must be in [0, 1]")
	case g.PowerUps.Size <= 0 || g.PowerUps.Speed <= 0:
		return errors.New("game.powerups size and speed must be positive")
	case g.PowerUps.Duration < 0:
		return errors.New("game.powerups.duration must not be negative")
	case g.PowerUps.SpeedupMultiplier <= 0:
		return errors.New("game.powerups.speedup_multiplier must be positive")
	case g.FX.ParticleLife < 0 || g.FX.TextLife < 0:
		return errors.New("game.fx lifetimes must not be negative")
	}
	return nil
}

// Frames converts d to a whole number of frames at the configured frame rate.
func (g GameConfig) Frames(d time.Duration) uint64 {
	if d <= 0 || g.FrameRate <= 0 {
		return 0
	}
	return uint64((d*time.Duration(g.FrameRate) + time.Second/2) / time.Second)
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
