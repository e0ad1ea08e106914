package object

import "github.com/tomz197/invaders/internal/physics"

// PowerUpKind identifies the effect granted by a power-up.
type PowerUpKind int

const (
	PowerUpMultishot PowerUpKind = iota
	PowerUpShield
	PowerUpSpeedup
)

// NumPowerUpKinds is the number of distinct power-up kinds.
const NumPowerUpKinds = 3

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpMultishot:
		return "multishot"
	case PowerUpShield:
		return "shield"
	case PowerUpSpeedup:
		return "speedup"
	default:
		return "unknown"
	}
}

// PowerUp is a pickup drifting down from a destroyed invader.
type PowerUp struct {
	X, Y float64
	Size float64
	VY   float64
	Kind PowerUpKind
}

// RandomPowerUpKind picks a kind uniformly.
func RandomPowerUpKind(rnd Rand) PowerUpKind {
	return PowerUpKind(rnd.Intn(NumPowerUpKinds))
}

// Update advances the power-up by one frame.
func (p *PowerUp) Update() {
	p.Y += p.VY
}

// Bounds returns the collision box.
func (p PowerUp) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}
