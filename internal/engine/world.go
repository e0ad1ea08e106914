package engine

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// shieldGridCellSize must be at least the largest bullet dimension so a
// bullet never spans more than two cells per axis.
const shieldGridCellSize = 16.0

// world holds one session. Restart replaces the whole value.
type world struct {
	player         object.Player
	playerBullets  []object.Bullet
	invaderBullets []object.Bullet
	invaders       []object.Invader
	shields        []object.ShieldCluster
	powerUps       []object.PowerUp
	particles      []*object.Particle
	texts          []object.FloatingText

	score     int
	lives     int
	level     int
	direction int // +1 right, -1 left
	frame     uint64
	effects   Effects
	state     State

	// Broad phase for shield blocks. Blocks never move, so the grid is
	// rebuilt only when shields are laid out.
	shieldGrid *physics.Grid
	shieldRefs []blockRef // flat grid index -> block
}

type blockRef struct {
	cluster, block int
}

// indexShields rebuilds the shield broad phase. Flat indices follow
// (cluster, block) order, so the lowest index is the first block.
func (w *world) indexShields() {
	w.shieldGrid.Clear()
	w.shieldRefs = w.shieldRefs[:0]
	for c := range w.shields {
		for b := range w.shields[c].Blocks {
			w.shieldGrid.Insert(w.shields[c].Blocks[b].Bounds(), len(w.shieldRefs))
			w.shieldRefs = append(w.shieldRefs, blockRef{cluster: c, block: b})
		}
	}
}

// firstShieldHit returns the first live block overlapping r.
func (w *world) firstShieldHit(r physics.Rect) (*object.ShieldBlock, bool) {
	best := -1
	w.shieldGrid.Query(r, func(idx int) bool {
		if best >= 0 && idx >= best {
			return false
		}
		ref := w.shieldRefs[idx]
		blk := &w.shields[ref.cluster].Blocks[ref.block]
		if blk.Live() && blk.Bounds().Overlaps(r) {
			best = idx
		}
		return false
	})
	if best < 0 {
		return nil, false
	}
	ref := w.shieldRefs[best]
	return &w.shields[ref.cluster].Blocks[ref.block], true
}

// releaseParticles returns every particle to the pool.
func (w *world) releaseParticles() {
	for _, p := range w.particles {
		p.Release()
	}
	w.particles = nil
}
