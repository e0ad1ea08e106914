package engine

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Difficulty yields the wave speed and per-invader fire probability.
type Difficulty interface {
	// InvaderSpeed returns the horizontal speed in units per frame.
	InvaderSpeed(level, dead int) float64
	// FireRate returns the per-invader, per-frame fire probability.
	FireRate(level int) float64
}

// LinearDifficulty grows speed with kills and levels, and fire rate with levels.
type LinearDifficulty struct {
	BaseSpeed        float64
	DeadSpeedBonus   float64
	LevelSpeedBonus  float64
	BaseFireRate     float64
	FireRateIncrease float64
}

var _ Difficulty = LinearDifficulty{}

// NewLinearDifficulty builds the default curve from the invader config.
func NewLinearDifficulty(cfg config.InvaderConfig) LinearDifficulty {
	return LinearDifficulty{
		BaseSpeed:        cfg.BaseSpeed,
		DeadSpeedBonus:   cfg.DeadSpeedBonus,
		LevelSpeedBonus:  cfg.LevelSpeedBonus,
		BaseFireRate:     cfg.BaseFireRate,
		FireRateIncrease: cfg.FireRateIncrease,
	}
}

func (d LinearDifficulty) InvaderSpeed(level, dead int) float64 {
	return d.BaseSpeed + float64(dead)*d.DeadSpeedBonus + float64(level-1)*d.LevelSpeedBonus
}

// FireRate is capped at 1.
func (d LinearDifficulty) FireRate(level int) float64 {
	return physics.Clamp(d.BaseFireRate+float64(level-1)*d.FireRateIncrease, 0, 1)
}
