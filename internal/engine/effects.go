package engine

import "github.com/tomz197/invaders/internal/object"

// Effects tracks the timed power-up effects as an expiry frame per kind.
// An effect is active while the frame counter is below its expiry.
type Effects struct {
	until [object.NumPowerUpKinds]uint64
}

// Activate starts kind for duration frames from now. Re-activating an
// active effect restarts it with a fresh full duration.
func (e *Effects) Activate(kind object.PowerUpKind, now, duration uint64) {
	if !validKind(kind) {
		return
	}
	e.until[kind] = now + duration
}

// Active reports whether kind is in effect at frame now.
func (e *Effects) Active(kind object.PowerUpKind, now uint64) bool {
	return validKind(kind) && e.until[kind] > now
}

// Consume ends kind immediately.
func (e *Effects) Consume(kind object.PowerUpKind) {
	if validKind(kind) {
		e.until[kind] = 0
	}
}

// Remaining returns the number of frames kind stays active after now.
func (e *Effects) Remaining(kind object.PowerUpKind, now uint64) uint64 {
	if !e.Active(kind, now) {
		return 0
	}
	return e.until[kind] - now
}

// Expire clears every effect whose expiry frame has been reached and calls
// fn for each one.
func (e *Effects) Expire(now uint64, fn func(object.PowerUpKind)) {
	for k := range e.until {
		if e.until[k] != 0 && e.until[k] <= now {
			e.until[k] = 0
			fn(object.PowerUpKind(k))
		}
	}
}

func validKind(kind object.PowerUpKind) bool {
	return kind >= 0 && int(kind) < object.NumPowerUpKinds
}
