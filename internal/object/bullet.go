package object

import "github.com/tomz197/invaders/internal/physics"

// Bullet is a projectile. Player bullets travel up (VY < 0), invader
// bullets travel down (VY > 0).
type Bullet struct {
	X, Y float64 // Top-left corner
	W, H float64
	VY   float64 // Units per frame
}

// NewBullet creates a bullet whose top-left corner is at (x, y).
func NewBullet(x, y, w, h, vy float64) Bullet {
	return Bullet{X: x, Y: y, W: w, H: h, VY: vy}
}

// Update advances the bullet by one frame.
func (b *Bullet) Update() {
	b.Y += b.VY
}

// OutOfBounds reports whether the bullet has left the vertical playfield.
func (b Bullet) OutOfBounds(height float64) bool {
	return b.Y < 0 || b.Y > height
}

// Bounds returns the collision box.
func (b Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}
