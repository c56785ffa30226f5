package maze

import (
	"fmt"

	"github.com/lixenwraith/astral/grid"
)

// Size returns the side length of the layout
func (l Layout) Size() int {
	return len(l.Walls)
}

// Apply resets g and copies the layout onto it
// Cells of g outside the layout become obstacles
func (l Layout) Apply(g *grid.Grid) error {
	n := l.Size()
	if n == 0 || n > g.Size() {
		return fmt.Errorf("%w: layout %d does not fit grid %d", grid.ErrInvalidDimension, n, g.Size())
	}

	g.Reset()
	g.Cells(func(c *grid.Cell) bool {
		p := c.Point()
		if p.Row >= n || p.Col >= n || l.Walls[p.Row][p.Col] == Wall {
			c.SetState(grid.Obstacle)
		}
		return true
	})

	g.At(l.Start).SetState(grid.Start)
	if l.End != l.Start {
		g.At(l.End).SetState(grid.End)
	}
	return nil
}

// ShortestPath runs a breadth-first search over the wall picture
// Returns nil when either endpoint is blocked or unreachable
func ShortestPath(walls [][]bool, start, end grid.Point) []grid.Point {
	n := len(walls)
	if !inside(n, start) || !inside(n, end) {
		return nil
	}
	if walls[start.Row][start.Col] == Wall || walls[end.Row][end.Col] == Wall {
		return nil
	}

	queue := []grid.Point{start}
	cameFrom := make(map[grid.Point]grid.Point)
	visited := map[grid.Point]bool{start: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			var path []grid.Point
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range orthoDirs {
			next := curr.Add(d)
			if inside(n, next) && walls[next.Row][next.Col] == Passage && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// WallsOf extracts the obstacle picture of g
func WallsOf(g *grid.Grid) [][]bool {
	walls := filled(g.Size(), Passage)
	g.Cells(func(c *grid.Cell) bool {
		if c.State() == grid.Obstacle {
			walls[c.Row()][c.Col()] = Wall
		}
		return true
	})
	return walls
}
