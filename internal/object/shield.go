package object

import "github.com/tomz197/invaders/internal/physics"

// ShieldBlock is one destructible cell of a shield cluster.
// A block with HP <= 0 neither renders nor collides but keeps its slot.
type ShieldBlock struct {
	X, Y  float64
	Size  float64
	HP    int
	MaxHP int
}

// Live reports whether the block still collides.
func (b ShieldBlock) Live() bool {
	return b.HP > 0
}

// Damage removes one hit point. HP never drops below zero.
func (b *ShieldBlock) Damage() {
	if b.HP > 0 {
		b.HP--
	}
}

// Bounds returns the collision box.
func (b ShieldBlock) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// ShieldCluster is a group of blocks forming one bunker.
type ShieldCluster struct {
	Blocks []ShieldBlock
}

// ShieldLayout describes how shield clusters are built.
type ShieldLayout struct {
	FieldWidth float64
	Y          float64 // Top edge of every cluster
	Count      int
	Rows       int
	Cols       int
	BlockSize  float64
	MaxHP      int
}

// LayoutShields builds Count evenly spaced clusters. Each cluster is a
// Rows×Cols block grid with the middle of the bottom row cut out, leaving two
// legs at each side.
func LayoutShields(l ShieldLayout) []ShieldCluster {
	clusterW := float64(l.Cols) * l.BlockSize
	spacing := (l.FieldWidth - float64(l.Count)*clusterW) / float64(l.Count+1)

	clusters := make([]ShieldCluster, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		startX := spacing*float64(i+1) + clusterW*float64(i)
		blocks := make([]ShieldBlock, 0, l.Rows*l.Cols)
		for r := 0; r < l.Rows; r++ {
			for c := 0; c < l.Cols; c++ {
				if r == l.Rows-1 && c > 1 && c < l.Cols-2 {
					continue
				}
				blocks = append(blocks, ShieldBlock{
					X:     startX + float64(c)*l.BlockSize,
					Y:     l.Y + float64(r)*l.BlockSize,
					Size:  l.BlockSize,
					HP:    l.MaxHP,
					MaxHP: l.MaxHP,
				})
			}
		}
		clusters = append(clusters, ShieldCluster{Blocks: blocks})
	}
	return clusters
}
