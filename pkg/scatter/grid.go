package scatter

import "math"

// Cell is a grid position.
type Cell struct {
	Col, Row int
}

// GridSize returns the side of the square grid used for n pieces. Portrait
// mobile layouts get one extra row and column.
func GridSize(n int, d Device) int {
	if n <= 0 {
		return 0
	}
	g := int(math.Ceil(math.Sqrt(float64(n))))
	if d.PortraitMobile() {
		g++
	}
	return g
}

// RowMajor returns the cell for index i on a grid of side g.
func RowMajor(i, g int) Cell {
	return Cell{Col: i % g, Row: i / g}
}

// Spiral returns every cell of a g x g grid ordered ring by ring outward
// from the center. Index 0 is the center cell. Each ring is walked
// clockwise starting from its top-left corner.
func Spiral(g int) []Cell {
	if g <= 0 {
		return nil
	}
	c := (g - 1) / 2
	in := func(col, row int) bool { return col >= 0 && col < g && row >= 0 && row < g }

	cells := make([]Cell, 0, g*g)
	cells = append(cells, Cell{Col: c, Row: c})
	for r := 1; len(cells) < g*g; r++ {
		var ring []Cell
		for col := c - r; col <= c+r; col++ { // top
			ring = append(ring, Cell{col, c - r})
		}
		for row := c - r + 1; row <= c+r; row++ { // right
			ring = append(ring, Cell{c + r, row})
		}
		for col := c + r - 1; col >= c-r; col-- { // bottom
			ring = append(ring, Cell{col, c + r})
		}
		for row := c + r - 1; row > c-r; row-- { // left
			ring = append(ring, Cell{c - r, row})
		}
		for _, cell := range ring {
			if in(cell.Col, cell.Row) {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// jitter is the deterministic in-cell offset for piece i, at most 10% of
// the cell size on each axis.
func jitter(i int, cellW, cellH float64) (dx, dy float64) {
	a := float64(i+1) * 37.5
	return math.Cos(a) * 0.1 * cellW, math.Sin(a) * 0.1 * cellH
}

// Rotation returns the scatter rotation for piece i: quarter turns on
// mobile, 45 degree steps elsewhere.
func Rotation(i int, d Device) float64 {
	if d.IsMobile {
		return [...]float64{0, 90, 180, 270}[i%4]
	}
	return float64(i%8) * 45
}
