package engine

import (
	"testing"

	"github.com/tomz197/invaders/internal/object"
)

func TestEffectsActivateAndExpire(t *testing.T) {
	var fx Effects
	fx.Activate(object.PowerUpSpeedup, 10, 5)
	if !fx.Active(object.PowerUpSpeedup, 14) {
		t.Fatalf("inactive before expiry")
	}
	if fx.Remaining(object.PowerUpSpeedup, 12) != 3 {
		t.Fatalf("remaining = %d, want 3", fx.Remaining(object.PowerUpSpeedup, 12))
	}
	if fx.Active(object.PowerUpSpeedup, 15) {
		t.Fatalf("active at expiry frame")
	}

	var expired []object.PowerUpKind
	fx.Expire(15, func(k object.PowerUpKind) { expired = append(expired, k) })
	if len(expired) != 1 || expired[0] != object.PowerUpSpeedup {
		t.Fatalf("expired = %v, want [speedup]", expired)
	}
	fx.Expire(16, func(k object.PowerUpKind) { t.Fatalf("expired %v twice", k) })
}

func TestEffectsReactivateRestarts(t *testing.T) {
	var fx Effects
	fx.Activate(object.PowerUpMultishot, 0, 100)
	fx.Activate(object.PowerUpMultishot, 90, 100)
	if !fx.Active(object.PowerUpMultishot, 150) {
		t.Fatalf("re-pickup did not restart the timer")
	}
	if fx.Remaining(object.PowerUpMultishot, 150) != 40 {
		t.Fatalf("remaining = %d, want 40", fx.Remaining(object.PowerUpMultishot, 150))
	}
}

func TestEffectsIndependent(t *testing.T) {
	var fx Effects
	for k := 0; k < object.NumPowerUpKinds; k++ {
		fx.Activate(object.PowerUpKind(k), 0, 10)
	}
	fx.Consume(object.PowerUpShield)
	if fx.Active(object.PowerUpShield, 1) {
		t.Fatalf("consumed shield still active")
	}
	if !fx.Active(object.PowerUpMultishot, 1) || !fx.Active(object.PowerUpSpeedup, 1) {
		t.Fatalf("consuming shield ended other effects")
	}
	fx.Activate(object.PowerUpKind(7), 0, 10)
	if fx.Active(object.PowerUpKind(7), 1) {
		t.Fatalf("unknown kind reported active")
	}
}

func TestEffectExpiresDuringAdvance(t *testing.T) {
	cfg := stillGame()
	e := newTestEngine(t, cfg)
	e.w.effects.Activate(object.PowerUpSpeedup, e.w.frame, 2)

	if ev := e.Advance(Input{}); hasEvent(ev, EventEffectExpired) {
		t.Fatalf("expired after one frame")
	}
	ev := e.Advance(Input{})
	if !hasEvent(ev, EventEffectExpired) {
		t.Fatalf("no expiry event on frame 2")
	}
	if e.Snapshot().EffectActive(object.PowerUpSpeedup) {
		t.Fatalf("speedup still active")
	}
}

func TestConfiguredDurationInFrames(t *testing.T) {
	e := newTestEngine(t, stillGame())
	if e.effectFrames != 600 {
		t.Fatalf("effect frames = %d, want 600 for 10s at 60fps", e.effectFrames)
	}
}
