package object

import "github.com/tomz197/invaders/internal/physics"

// Invader is one cell of the wave grid. Dead invaders stay in the grid as
// placeholders so indices remain stable for the layout.
type Invader struct {
	X, Y  float64
	W, H  float64
	Alive bool
}

// Kill marks the invader dead. It returns false if it was already dead.
func (i *Invader) Kill() bool {
	if !i.Alive {
		return false
	}
	i.Alive = false
	return true
}

// Bounds returns the collision box.
func (i Invader) Bounds() physics.Rect {
	return physics.Rect{X: i.X, Y: i.Y, W: i.W, H: i.H}
}

// CountAlive returns the number of live invaders.
func CountAlive(invaders []Invader) int {
	n := 0
	for i := range invaders {
		if invaders[i].Alive {
			n++
		}
	}
	return n
}
