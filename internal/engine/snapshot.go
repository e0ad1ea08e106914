package engine

import "github.com/tomz197/invaders/internal/object"

// Snapshot is an independent copy of a session for rendering. Mutating it
// never affects the engine.
type Snapshot struct {
	Width, Height float64

	Player         object.Player
	PlayerBullets  []object.Bullet
	InvaderBullets []object.Bullet
	Invaders       []object.Invader
	Shields        []object.ShieldCluster
	PowerUps       []object.PowerUp
	Particles      []object.Particle
	Texts          []object.FloatingText

	Score     int
	Lives     int
	Level     int
	LevelName string
	Frame     uint64
	State     State
	Effects   [object.NumPowerUpKinds]EffectStatus

	// Events emitted by the frame that produced this snapshot.
	Events []Event
}

// EffectStatus describes one timed effect.
type EffectStatus struct {
	Active    bool
	Remaining uint64 // Frames
}

// Snapshot copies the current session.
func (e *Engine) Snapshot() *Snapshot {
	w := e.w
	s := &Snapshot{
		Width:          e.cfg.Width,
		Height:         e.cfg.Height,
		Player:         w.player,
		PlayerBullets:  append([]object.Bullet(nil), w.playerBullets...),
		InvaderBullets: append([]object.Bullet(nil), w.invaderBullets...),
		Invaders:       append([]object.Invader(nil), w.invaders...),
		PowerUps:       append([]object.PowerUp(nil), w.powerUps...),
		Texts:          append([]object.FloatingText(nil), w.texts...),
		Score:          w.score,
		Lives:          w.lives,
		Level:          w.level,
		LevelName:      e.levelName(w.level),
		Frame:          w.frame,
		State:          w.state,
		Events:         append([]Event(nil), e.events...),
	}

	s.Shields = make([]object.ShieldCluster, len(w.shields))
	for i, c := range w.shields {
		s.Shields[i].Blocks = append([]object.ShieldBlock(nil), c.Blocks...)
	}

	s.Particles = make([]object.Particle, len(w.particles))
	for i, p := range w.particles {
		s.Particles[i] = *p
	}

	for k := range s.Effects {
		kind := object.PowerUpKind(k)
		s.Effects[k] = EffectStatus{
			Active:    w.effects.Active(kind, w.frame),
			Remaining: w.effects.Remaining(kind, w.frame),
		}
	}
	return s
}

// EffectActive reports whether kind is active in the snapshot.
func (s *Snapshot) EffectActive(kind object.PowerUpKind) bool {
	return kind >= 0 && int(kind) < len(s.Effects) && s.Effects[kind].Active
}

// AliveInvaders returns the number of live invaders.
func (s *Snapshot) AliveInvaders() int {
	return object.CountAlive(s.Invaders)
}
