// Package object defines the entity populations of the playfield.
//
// Objects are plain values with their own kinematics. Which collection an
// object lives in, and when it is removed, is decided by the engine.
package object

import "github.com/tomz197/invaders/internal/physics"

// Rand is the source of randomness used for spawning.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Player is the ship at the bottom of the playfield.
type Player struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewPlayer places the ship horizontally centred, margin units above the bottom edge.
func NewPlayer(fieldW, fieldH, w, h, margin float64) Player {
	return Player{
		X: fieldW/2 - w/2,
		Y: fieldH - h - margin,
		W: w,
		H: h,
	}
}

// Bounds returns the collision box.
func (p Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// CenterX returns the horizontal centre of the ship.
func (p Player) CenterX() float64 {
	return p.X + p.W/2
}

// Move shifts the ship by dx and clamps it to [0, maxX].
func (p *Player) Move(dx, maxX float64) {
	p.X = physics.Clamp(p.X+dx, 0, maxX)
}
