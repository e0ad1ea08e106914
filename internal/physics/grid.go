package physics

import "math"

// Grid is a uniform grid for broad-phase collision queries against
// rectangles that do not move between rebuilds (shield blocks).
//
// A rectangle is inserted into every cell it covers, so a query may report
// the same index more than once.
type Grid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that cover a grid cell.
// The slice is reused between rebuilds (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates a grid covering a w×h area with square cells.
func NewGrid(w, h, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(w / cellSize))
	rows := int(math.Ceil(h / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item covering r. Parts of r outside the grid are clamped
// onto the border cells.
func (g *Grid) Insert(r Rect, index int) {
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			cell := &g.cells[offset+col]
			cell.items = append(cell.items, index)
		}
	}
}

// Query calls fn for every item index stored in the cells r covers.
// If fn returns true, iteration stops early.
func (g *Grid) Query(r Rect, fn func(index int) bool) {
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, idx := range g.cells[offset+col].items {
				if fn(idx) {
					return
				}
			}
		}
	}
}

// span returns the inclusive cell range covered by r.
func (g *Grid) span(r Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.posToCell(r.X, r.Y)
	c1, r1 = g.posToCell(r.Right(), r.Bottom())
	return c0, r0, c1, r1
}

// posToCell converts coordinates to grid cell coordinates, clamped to the grid.
func (g *Grid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
