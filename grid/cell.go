package grid

import "fmt"

// Point addresses a cell by row and column
type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p offset by d
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Manhattan returns |Δrow| + |Δcol|
func Manhattan(a, b Point) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Orthogonal reports whether a and b are distinct and share an edge
func Orthogonal(a, b Point) bool {
	return Manhattan(a, b) == 1
}

// neighborOrder is fixed: it decides frontier insertion order and therefore tie-breaking.
// Order: down, up, right, left
var neighborOrder = [4]Point{
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// Cell is a single grid position. Coordinates never change after creation
type Cell struct {
	pos       Point
	state     State
	neighbors []Point
}

func (c *Cell) Point() Point { return c.pos }
func (c *Cell) Row() int     { return c.pos.Row }
func (c *Cell) Col() int     { return c.pos.Col }
func (c *Cell) State() State { return c.state }

// SetState assigns s without validation; single Start/End is the caller's invariant
func (c *Cell) SetState(s State) {
	c.state = s
}

// Neighbors returns the list computed by the last Grid.RefreshNeighbors
func (c *Cell) Neighbors() []Point {
	return c.neighbors
}
