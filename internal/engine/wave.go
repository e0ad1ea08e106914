package engine

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
)

// LayoutWave builds a rows×cols grid of live invaders centred horizontally
// in a field of the given width. Each level starts the grid lower.
func LayoutWave(cfg config.InvaderConfig, fieldWidth float64, level, rows, cols int) []object.Invader {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	stepX := cfg.Width + cfg.Padding
	stepY := cfg.Height + cfg.Padding
	gridWidth := float64(cols)*stepX - cfg.Padding
	offsetX := (fieldWidth - gridWidth) / 2
	offsetY := cfg.StartY + float64(level-1)*cfg.LevelYOffset

	invaders := make([]object.Invader, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			invaders = append(invaders, object.Invader{
				X:     float64(c)*stepX + offsetX,
				Y:     float64(r)*stepY + offsetY,
				W:     cfg.Width,
				H:     cfg.Height,
				Alive: true,
			})
		}
	}
	return invaders
}

// AdvanceWave moves every live invader by speed in the shared direction.
// If a live invader ends up outside [minX, maxX] the direction flips and the
// whole grid, dead placeholders included, drops by drop.
func AdvanceWave(invaders []object.Invader, direction int, speed, minX, maxX, drop float64) (int, bool) {
	dx := speed * float64(direction)
	hitEdge := false
	for i := range invaders {
		inv := &invaders[i]
		if !inv.Alive {
			continue
		}
		inv.X += dx
		if inv.X < minX || inv.X > maxX {
			hitEdge = true
		}
	}
	if !hitEdge {
		return direction, false
	}
	for i := range invaders {
		invaders[i].Y += drop
	}
	return -direction, true
}

// RollFire draws once per live invader and appends a downward bullet, centred
// under the invader, for every draw below rate.
func RollFire(dst []object.Bullet, invaders []object.Invader, rate float64, cfg config.BulletConfig, rnd object.Rand) []object.Bullet {
	for i := range invaders {
		inv := &invaders[i]
		if !inv.Alive {
			continue
		}
		if rnd.Float64() < rate {
			dst = append(dst, object.NewBullet(
				inv.X+inv.W/2-cfg.Width/2,
				inv.Y+inv.H,
				cfg.Width, cfg.Height,
				cfg.InvaderSpeed,
			))
		}
	}
	return dst
}

// Breached reports whether a live invader has reached the player's row.
func Breached(invaders []object.Invader, playerY float64) bool {
	for i := range invaders {
		if invaders[i].Alive && invaders[i].Y+invaders[i].H >= playerY {
			return true
		}
	}
	return false
}
