package engine

import (
	"testing"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
)

func TestLayoutWaveCentersGrid(t *testing.T) {
	cfg := config.DefaultGame().Invaders
	inv := LayoutWave(cfg, 480, 1, 5, 10)
	if len(inv) != 50 {
		t.Fatalf("len = %d, want 50", len(inv))
	}
	if inv[0].X != 45 || inv[0].Y != 50 {
		t.Fatalf("first at (%v,%v), want (45,50)", inv[0].X, inv[0].Y)
	}
	last := inv[len(inv)-1]
	if last.X != 405 || last.Y != 170 {
		t.Fatalf("last at (%v,%v), want (405,170)", last.X, last.Y)
	}
	for i, v := range inv {
		if !v.Alive {
			t.Fatalf("invader %d starts dead", i)
		}
	}

	deeper := LayoutWave(cfg, 480, 3, 5, 10)
	if deeper[0].Y != 70 {
		t.Fatalf("level 3 start y = %v, want 70", deeper[0].Y)
	}
	if LayoutWave(cfg, 480, 1, 0, 10) != nil {
		t.Fatalf("empty grid should be nil")
	}
}

func TestAdvanceWaveMovesOnlyAlive(t *testing.T) {
	inv := []object.Invader{
		{X: 100, Y: 10, W: 30, H: 20, Alive: true},
		{X: 200, Y: 10, W: 30, H: 20, Alive: false},
	}
	dir, dropped := AdvanceWave(inv, -1, 2, 0, 450, 20)
	if dir != -1 || dropped {
		t.Fatalf("dir=%d dropped=%v, want -1 false", dir, dropped)
	}
	if inv[0].X != 98 || inv[1].X != 200 {
		t.Fatalf("x = %v, %v, want 98, 200", inv[0].X, inv[1].X)
	}
}

func TestAdvanceWaveFlipsOnEitherEdge(t *testing.T) {
	left := []object.Invader{
		{X: 0.5, Y: 10, W: 30, H: 20, Alive: true},
		{X: 300, Y: 10, W: 30, H: 20, Alive: true},
		{X: 5, Y: 40, W: 30, H: 20, Alive: false},
	}
	dir, dropped := AdvanceWave(left, -1, 1, 0, 450, 20)
	if dir != 1 || !dropped {
		t.Fatalf("dir=%d dropped=%v, want 1 true", dir, dropped)
	}
	if left[0].Y != 30 || left[1].Y != 30 || left[2].Y != 60 {
		t.Fatalf("y after drop = %v %v %v", left[0].Y, left[1].Y, left[2].Y)
	}

	// Exactly on the edge is still inside.
	edge := []object.Invader{{X: 449, W: 30, H: 20, Alive: true}}
	if _, dropped := AdvanceWave(edge, 1, 1, 0, 450, 20); dropped {
		t.Fatalf("invader at maxX dropped")
	}

	// A dead invader outside the range does not count.
	dead := []object.Invader{{X: 460, W: 30, H: 20, Alive: false}}
	if _, dropped := AdvanceWave(dead, 1, 1, 0, 450, 20); dropped {
		t.Fatalf("dead invader triggered a drop")
	}
	if _, dropped := AdvanceWave(nil, 1, 1, 0, 450, 20); dropped {
		t.Fatalf("empty wave dropped")
	}
}

type seqRand struct {
	floats []float64
	i      int
}

func (r *seqRand) Float64() float64 {
	v := r.floats[r.i%len(r.floats)]
	r.i++
	return v
}

func (r *seqRand) Intn(n int) int { return 0 }

func TestRollFireOneDrawPerAliveInvader(t *testing.T) {
	inv := []object.Invader{
		{X: 0, Y: 0, W: 30, H: 20, Alive: true},
		{X: 40, Y: 0, W: 30, H: 20, Alive: false},
		{X: 80, Y: 0, W: 30, H: 20, Alive: true},
	}
	rnd := &seqRand{floats: []float64{0.5, 0.001}}
	bullets := RollFire(nil, inv, 0.01, config.DefaultGame().Bullets, rnd)
	if rnd.i != 2 {
		t.Fatalf("draws = %d, want 2", rnd.i)
	}
	if len(bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(bullets))
	}
	b := bullets[0]
	if b.X != 80+15-2.5 || b.Y != 20 || b.VY != 3.5 {
		t.Fatalf("bullet = %+v", b)
	}
}

func TestBreached(t *testing.T) {
	inv := []object.Invader{{Y: 540, H: 20, Alive: true}}
	if Breached(inv, 570) {
		t.Fatalf("breach reported 10 units early")
	}
	inv[0].Y = 550
	if !Breached(inv, 570) {
		t.Fatalf("touching the player row is a breach")
	}
	inv[0].Alive = false
	if Breached(inv, 570) {
		t.Fatalf("dead invader breached")
	}
}

func TestLinearDifficulty(t *testing.T) {
	d := NewLinearDifficulty(config.DefaultGame().Invaders)
	if got := d.InvaderSpeed(1, 0); got != 0.3 {
		t.Fatalf("speed(1,0) = %v, want 0.3", got)
	}
	base, dead, lvl := 0.3, 0.02, 0.1
	if got, want := d.InvaderSpeed(2, 10), base+10*dead+lvl; got != want {
		t.Fatalf("speed(2,10) = %v, want %v", got, want)
	}
	if got := d.FireRate(1); got != 0.001 {
		t.Fatalf("fire(1) = %v, want 0.001", got)
	}
	if got := d.FireRate(1000); got != 1 {
		t.Fatalf("fire(1000) = %v, want capped 1", got)
	}
}
