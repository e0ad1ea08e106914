package engine

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/object"
)

// checkCollisions runs the four passes in order. Each pass compacts its
// bullet or power-up slice in place, so every element is visited once.
func (e *Engine) checkCollisions() {
	e.collideBulletsShields()
	e.collidePlayerBulletsInvaders()
	e.collideInvaderBulletsPlayer()
	e.collidePowerUpsPlayer()
}

// collideBulletsShields lets shields stop bullets. Invader bullets chip the
// first live block they hit; player bullets are only absorbed.
func (e *Engine) collideBulletsShields() {
	w := e.w

	kept := w.invaderBullets[:0]
	for _, b := range w.invaderBullets {
		if blk, hit := w.firstShieldHit(b.Bounds()); hit {
			blk.Damage()
			continue
		}
		kept = append(kept, b)
	}
	w.invaderBullets = kept

	if !e.cfg.Shields.AbsorbPlayerBullets {
		return
	}
	keptPlayer := w.playerBullets[:0]
	for _, b := range w.playerBullets {
		if _, hit := w.firstShieldHit(b.Bounds()); hit {
			continue
		}
		keptPlayer = append(keptPlayer, b)
	}
	w.playerBullets = keptPlayer
}

// collidePlayerBulletsInvaders kills the first live invader each bullet hits.
func (e *Engine) collidePlayerBulletsInvaders() {
	w := e.w

	kept := w.playerBullets[:0]
	for _, b := range w.playerBullets {
		bounds := b.Bounds()
		hit := -1
		for i := range w.invaders {
			if w.invaders[i].Alive && w.invaders[i].Bounds().Overlaps(bounds) {
				hit = i
				break
			}
		}
		if hit < 0 {
			kept = append(kept, b)
			continue
		}
		e.killInvader(&w.invaders[hit])
	}
	w.playerBullets = kept
}

func (e *Engine) killInvader(inv *object.Invader) {
	if !inv.Kill() {
		return
	}
	w := e.w
	fx := e.cfg.FX
	points := e.cfg.Scoring.PerKill
	w.score += points

	cx, cy := inv.Bounds().Center()
	w.particles = append(w.particles, object.SpawnBurst(cx, cy, e.killBurst(), e.rnd)...)
	w.texts = append(w.texts, object.NewFloatingText(
		inv.X+inv.W/2, inv.Y, "+"+strconv.Itoa(points), fx.TextRise, fx.TextLife))
	e.emit(Event{Type: EventInvaderKilled, X: cx, Y: cy, Score: points})

	if e.rnd.Float64() < e.cfg.PowerUps.DropChance {
		pu := object.PowerUp{
			X:    inv.X,
			Y:    inv.Y,
			Size: e.cfg.PowerUps.Size,
			VY:   e.cfg.PowerUps.Speed,
			Kind: object.RandomPowerUpKind(e.rnd),
		}
		w.powerUps = append(w.powerUps, pu)
		e.emit(Event{Type: EventPowerUpSpawned, X: pu.X, Y: pu.Y, PowerUp: pu.Kind})
		e.log.Debug("power-up spawned", zap.Stringer("kind", pu.Kind), zap.Int("level", w.level))
	}
}

// collideInvaderBulletsPlayer applies hits on the ship. An active shield
// absorbs one hit and is used up.
func (e *Engine) collideInvaderBulletsPlayer() {
	w := e.w
	ship := w.player.Bounds()

	kept := w.invaderBullets[:0]
	for _, b := range w.invaderBullets {
		if !b.Bounds().Overlaps(ship) {
			kept = append(kept, b)
			continue
		}
		if w.effects.Active(object.PowerUpShield, w.frame) {
			w.effects.Consume(object.PowerUpShield)
			e.emit(Event{Type: EventShieldAbsorbed, X: b.X, Y: b.Y, PowerUp: object.PowerUpShield})
			continue
		}
		if w.lives > 0 {
			w.lives--
		}
		e.hitPlayer()
	}
	w.invaderBullets = kept
}

func (e *Engine) hitPlayer() {
	w := e.w
	fx := e.cfg.FX
	cx, cy := w.player.Bounds().Center()
	w.texts = append(w.texts, object.NewFloatingText(
		w.player.X+w.player.W/2, w.player.Y, fx.HitText, fx.TextRise, fx.TextLife))
	w.particles = append(w.particles, object.SpawnBurst(cx, cy, e.hitBurst(), e.rnd)...)
	e.emit(Event{Type: EventPlayerHit, X: cx, Y: cy, Lives: w.lives})
}

// collidePowerUpsPlayer collects power-ups touching the ship.
func (e *Engine) collidePowerUpsPlayer() {
	w := e.w
	ship := w.player.Bounds()

	kept := w.powerUps[:0]
	for _, pu := range w.powerUps {
		if !pu.Bounds().Overlaps(ship) {
			kept = append(kept, pu)
			continue
		}
		w.effects.Activate(pu.Kind, w.frame, e.effectFrames)
		e.emit(Event{Type: EventPowerUpCollected, X: pu.X, Y: pu.Y, PowerUp: pu.Kind})
		e.log.Debug("power-up collected", zap.Stringer("kind", pu.Kind), zap.Uint64("frame", w.frame))
	}
	w.powerUps = kept
}

func (e *Engine) killBurst() object.Burst {
	fx := e.cfg.FX
	return object.Burst{Count: fx.KillParticles, MaxSpeed: fx.ParticleSpeed, MaxRadius: fx.ParticleRadius, Life: fx.ParticleLife}
}

func (e *Engine) hitBurst() object.Burst {
	fx := e.cfg.FX
	return object.Burst{Count: fx.HitParticles, MaxSpeed: fx.ParticleSpeed, MaxRadius: fx.ParticleRadius, Life: fx.ParticleLife}
}
