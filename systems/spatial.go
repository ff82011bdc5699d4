// Package systems contains ECS systems for the demo scene.
package systems

import "github.com/pthm-cable/tensai/geom"

// SpatialGrid buckets collider indices by cell so contact candidates can be
// found without testing every pair. Positions outside the grid are clamped
// to the border cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]int // flat grid of index lists
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all indices from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds index i at the given position.
func (g *SpatialGrid) Insert(i int, p geom.Vec2) {
	col, row := g.cellCoords(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], i)
}

// QueryRadiusInto appends every index stored in a cell that overlaps the
// square of half-size radius around p. Results are candidates only; the
// caller does the exact test. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []int, p geom.Vec2, radius float32) []int {
	minCol, minRow := g.cellCoords(p.Sub(geom.V2(radius, radius)))
	maxCol, maxRow := g.cellCoords(p.Add(geom.V2(radius, radius)))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cellCoords returns the clamped cell for a world position.
func (g *SpatialGrid) cellCoords(p geom.Vec2) (col, row int) {
	col = int(p.X / g.cellSize)
	row = int(p.Y / g.cellSize)

	// Clamp to valid range
	if p.X < 0 || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if p.Y < 0 || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
