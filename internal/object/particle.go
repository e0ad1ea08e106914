package object

import "sync"

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment.
type Particle struct {
	X, Y    float64 // Position (center)
	VX, VY  float64 // Velocity per frame
	Radius  float64
	Life    int // Frames remaining
	MaxLife int // Initial life (for fade calculation)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, radius float64, life int) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Radius = radius
	p.Life = life
	p.MaxLife = life
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Burst describes an explosion.
type Burst struct {
	Count     int
	MaxSpeed  float64 // Each velocity component is uniform in (-MaxSpeed, MaxSpeed)
	MaxRadius float64
	Life      int
}

// SpawnBurst creates b.Count particles centred at (x, y).
func SpawnBurst(x, y float64, b Burst, rnd Rand) []*Particle {
	if b.Count <= 0 {
		return nil
	}
	out := make([]*Particle, 0, b.Count)
	for i := 0; i < b.Count; i++ {
		vx := (rnd.Float64() - 0.5) * 2 * b.MaxSpeed
		vy := (rnd.Float64() - 0.5) * 2 * b.MaxSpeed
		radius := rnd.Float64() * b.MaxRadius
		out = append(out, NewParticle(x, y, vx, vy, radius, b.Life))
	}
	return out
}

// Update moves the particle and consumes one frame of life.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
}

// Expired reports whether the particle should be removed.
func (p *Particle) Expired() bool {
	return p.Life <= 0
}

// Alpha returns the remaining life fraction in [0, 1].
func (p *Particle) Alpha() float64 {
	return lifeFraction(p.Life, p.MaxLife)
}

func lifeFraction(life, maxLife int) float64 {
	if maxLife <= 0 || life <= 0 {
		return 0
	}
	if life >= maxLife {
		return 1
	}
	return float64(life) / float64(maxLife)
}
