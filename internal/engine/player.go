package engine

import "github.com/tomz197/invaders/internal/object"

// playerSpeed returns the ship speed, boosted while speed-up is active.
func (e *Engine) playerSpeed() float64 {
	speed := e.cfg.Player.Speed
	if e.w.effects.Active(object.PowerUpSpeedup, e.w.frame) {
		speed *= e.cfg.PowerUps.SpeedupMultiplier
	}
	return speed
}

// movePlayer applies held direction keys. Holding both cancels out.
func (e *Engine) movePlayer(in Input) {
	speed := e.playerSpeed()
	dx := 0.0
	if in.Left {
		dx -= speed
	}
	if in.Right {
		dx += speed
	}
	e.w.player.Move(dx, e.cfg.Width-e.w.player.W)
}

// fire spawns player bullets. Multishot fires a spread that ignores the
// magazine; otherwise one bullet is fired only while the magazine has room.
func (e *Engine) fire() {
	p := e.w.player
	b := e.cfg.Bullets

	if e.w.effects.Active(object.PowerUpMultishot, e.w.frame) {
		for _, off := range b.MultishotOffsets {
			e.w.playerBullets = append(e.w.playerBullets,
				object.NewBullet(p.X+p.W*off-b.Width/2, p.Y, b.Width, b.Height, -b.Speed))
		}
		return
	}

	if len(e.w.playerBullets) >= b.Magazine {
		return
	}
	e.w.playerBullets = append(e.w.playerBullets,
		object.NewBullet(p.CenterX()-b.Width/2, p.Y, b.Width, b.Height, -b.Speed))
}
