package engine

import (
	"testing"

	"github.com/tomz197/invaders/internal/object"
)

func TestMagazineCapsSingleShots(t *testing.T) {
	e := newTestEngine(t, stillGame())
	for i := 0; i < 6; i++ {
		e.Advance(Input{Fire: true})
	}
	if n := len(e.w.playerBullets); n != 3 {
		t.Fatalf("player bullets = %d, want magazine 3", n)
	}
	b := e.w.playerBullets[0]
	if b.X != e.w.player.CenterX()-b.W/2 {
		t.Fatalf("bullet x = %v, want centred on ship", b.X)
	}
	if b.VY >= 0 {
		t.Fatalf("player bullet moving down: vy = %v", b.VY)
	}
}

func TestMultishotBypassesMagazine(t *testing.T) {
	e := newTestEngine(t, stillGame())
	e.w.effects.Activate(object.PowerUpMultishot, 0, 600)
	e.Advance(Input{Fire: true})
	e.Advance(Input{Fire: true})
	if n := len(e.w.playerBullets); n != 6 {
		t.Fatalf("player bullets = %d, want 6", n)
	}

	p := e.w.player
	want := []float64{p.X + p.W*0.25 - 2.5, p.X + p.W*0.5 - 2.5, p.X + p.W*0.75 - 2.5}
	for i, w := range want {
		if got := e.w.playerBullets[3+i].X; got != w {
			t.Fatalf("spread bullet %d x = %v, want %v", i, got, w)
		}
	}
}

func TestPlayerMovementAndSpeedup(t *testing.T) {
	e := newTestEngine(t, stillGame())
	x := e.w.player.X

	e.Advance(Input{Left: true})
	if e.w.player.X != x-5 {
		t.Fatalf("x = %v, want %v", e.w.player.X, x-5)
	}
	e.Advance(Input{Left: true, Right: true})
	if e.w.player.X != x-5 {
		t.Fatalf("both keys moved the ship to %v", e.w.player.X)
	}

	e.w.effects.Activate(object.PowerUpSpeedup, e.w.frame, 600)
	e.Advance(Input{Right: true})
	if e.w.player.X != x-5+7.5 {
		t.Fatalf("speedup x = %v, want %v", e.w.player.X, x-5+7.5)
	}

	for i := 0; i < 200; i++ {
		e.Advance(Input{Right: true})
	}
	if e.w.player.X != 480-50 {
		t.Fatalf("x = %v, want clamped 430", e.w.player.X)
	}
}
