package grid

import (
	"fmt"
	"strings"
)

// Grid is a fixed-size square of cells stored row-major
// The grid exclusively owns its cells; Reset recreates all of them
type Grid struct {
	size  int
	cells []Cell
}

// New allocates size×size empty cells
func New(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidDimension, size)
	}
	g := &Grid{size: size}
	g.build()
	return g, nil
}

func (g *Grid) build() {
	g.cells = make([]Cell, g.size*g.size)
	for i := range g.cells {
		g.cells[i].pos = g.PointOf(i)
	}
}

// Size returns the row (and column) count
func (g *Grid) Size() int { return g.size }

// Len returns the total number of cells
func (g *Grid) Len() int { return len(g.cells) }

// Contains reports whether p lies inside the grid
func (g *Grid) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// Index converts p to its flat index; p must be in bounds
func (g *Grid) Index(p Point) int {
	return p.Row*g.size + p.Col
}

// PointOf converts a flat index back to coordinates
func (g *Grid) PointOf(idx int) Point {
	return Point{Row: idx / g.size, Col: idx % g.size}
}

// CellAt is the bounds-checked accessor
func (g *Grid) CellAt(row, col int) (*Cell, error) {
	p := Point{Row: row, Col: col}
	if !g.Contains(p) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.size, g.size)
	}
	return &g.cells[g.Index(p)], nil
}

// At returns the cell at p, or nil when p is out of bounds
func (g *Grid) At(p Point) *Cell {
	if !g.Contains(p) {
		return nil
	}
	return &g.cells[g.Index(p)]
}

// StateAt returns the state at p; out of bounds reads as Obstacle
func (g *Grid) StateAt(p Point) State {
	if c := g.At(p); c != nil {
		return c.state
	}
	return Obstacle
}

// Cells calls fn for every cell in row-major order until fn returns false
func (g *Grid) Cells(fn func(*Cell) bool) {
	for i := range g.cells {
		if !fn(&g.cells[i]) {
			return
		}
	}
}

// computeNeighbors returns the in-bounds orthogonal non-obstacle cells around c
func (g *Grid) computeNeighbors(c *Cell) []Point {
	out := c.neighbors[:0]
	for _, d := range neighborOrder {
		np := c.pos.Add(d)
		if !g.Contains(np) {
			continue
		}
		if g.cells[g.Index(np)].state == Obstacle {
			continue
		}
		out = append(out, np)
	}
	return out
}

// RefreshNeighbors recomputes every cell's neighbor list against the current obstacle layout
// Must run before each search because obstacles may have changed since the last one
func (g *Grid) RefreshNeighbors() {
	for i := range g.cells {
		g.cells[i].neighbors = g.computeNeighbors(&g.cells[i])
	}
}

// Neighbors returns the stored neighbor list of the cell at p
func (g *Grid) Neighbors(p Point) []Point {
	if c := g.At(p); c != nil {
		return c.neighbors
	}
	return nil
}

// Reset rebuilds every cell as Empty, dropping start, end, obstacles and search marks
func (g *Grid) Reset() {
	g.build()
}

// ClearSearch turns Frontier, Visited and Path cells back to Empty
func (g *Grid) ClearSearch() {
	for i := range g.cells {
		if g.cells[i].state.IsSearchMark() {
			g.cells[i].state = Empty
		}
	}
}

// Find returns the first cell in row-major order with state s
func (g *Grid) Find(s State) (Point, bool) {
	for i := range g.cells {
		if g.cells[i].state == s {
			return g.cells[i].pos, true
		}
	}
	return Point{}, false
}

// Count returns how many cells carry state s
func (g *Grid) Count(s State) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].state == s {
			n++
		}
	}
	return n
}

// String draws the grid one glyph per cell, one line per row
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.size + 1) * g.size)
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			sb.WriteRune(g.cells[row*g.size+col].state.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a grid from the picture produced by String
// Every line must be as long as the number of lines
func Parse(lines []string) (*Grid, error) {
	g, err := New(len(lines))
	if err != nil {
		return nil, err
	}
	for row, line := range lines {
		runes := []rune(line)
		if len(runes) != g.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimension, row, len(runes), g.size)
		}
		for col, r := range runes {
			s, ok := stateForGlyph(r)
			if !ok {
				return nil, fmt.Errorf("grid: unknown glyph %q at (%d,%d)", r, row, col)
			}
			g.cells[row*g.size+col].state = s
		}
	}
	return g, nil
}

func stateForGlyph(r rune) (State, bool) {
	for s := range stateNames {
		if State(s).Glyph() == r {
			return State(s), true
		}
	}
	return Empty, false
}
