package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/astral/grid"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

type Config struct {
	Size int

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Higher values add cycles. Constraints (No Plazas/Pillars) take precedence.
	Braiding float64

	// If true, the outer boundary is set to Passage.
	RemoveBorders bool

	Start *grid.Point // Optional (nil = Automatic)
	End   *grid.Point // Optional (nil = Automatic)
	Seed  int64       // Optional (0 = Random)
}

// Layout is an obstacle picture with its endpoints
// Walls is indexed [row][col]
type Layout struct {
	Walls        [][]bool
	Start, End   grid.Point
	SolutionPath []grid.Point // BFS shortest path, nil if unsolvable
}

// Generate creates a stochastic topological maze.
// The maze side is rounded down to odd; Apply fills the leftover band with walls
func Generate(cfg Config) Layout {
	n := ensureOdd(cfg.Size)

	walls := filled(n, Wall)
	rng := newRNG(cfg.Seed)

	startDef := grid.Point{Row: 1, Col: 1}
	endDef := grid.Point{Row: n - 2, Col: n - 2}
	if cfg.RemoveBorders {
		// Jailbreak: start center, end on the right edge
		startDef = grid.Point{Row: (n / 2) | 1, Col: (n / 2) | 1}
		endDef = grid.Point{Row: (n / 2) | 1, Col: n - 1}
	}
	start := resolvePoint(n, cfg.Start, startDef)
	end := resolvePoint(n, cfg.End, endDef)

	// Uniform spanning tree
	recursiveBacktracker(walls, start, rng)

	// Borders go before braiding so edge rooms see their external exits
	if cfg.RemoveBorders {
		stripBorders(walls)
	}

	if cfg.Braiding > 0 {
		applySmartBraiding(walls, cfg.Braiding, rng)
	}

	if cfg.RemoveBorders {
		walls[start.Row][start.Col] = Passage
		walls[end.Row][end.Col] = Passage
	} else {
		forceOpen(walls, start)
		forceOpen(walls, end)
	}

	return Layout{
		Walls:        walls,
		Start:        start,
		End:          end,
		SolutionPath: ShortestPath(walls, start, end),
	}
}

// Scatter places independent random obstacles with the given density
// Start is the top-left corner and End the bottom-right; both stay open
func Scatter(size int, density float64, seed int64) Layout {
	if size < 1 {
		size = 1
	}
	rng := newRNG(seed)
	walls := filled(size, Passage)
	for row := range walls {
		for col := range walls[row] {
			if rng.Float64() < density {
				walls[row][col] = Wall
			}
		}
	}

	start := grid.Point{Row: 0, Col: 0}
	end := grid.Point{Row: size - 1, Col: size - 1}
	walls[start.Row][start.Col] = Passage
	walls[end.Row][end.Col] = Passage

	return Layout{
		Walls:        walls,
		Start:        start,
		End:          end,
		SolutionPath: ShortestPath(walls, start, end),
	}
}

// --- Core Algorithms ---

var (
	jumpDirs  = []grid.Point{{Row: -2}, {Row: 2}, {Col: -2}, {Col: 2}}
	orthoDirs = []grid.Point{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
)

func recursiveBacktracker(walls [][]bool, start grid.Point, rng *rand.Rand) {
	n := len(walls)

	if !inside(n, start) {
		start = grid.Point{Row: 1, Col: 1}
	}

	stack := []grid.Point{start}
	walls[start.Row][start.Col] = Passage

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]grid.Point, 0, 4)

		for _, d := range jumpDirs {
			next := curr.Add(d)
			// Leave a 1 cell border for walls
			if next.Row > 0 && next.Row < n-1 && next.Col > 0 && next.Col < n-1 {
				if walls[next.Row][next.Col] == Wall {
					candidates = append(candidates, d)
				}
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		between := grid.Point{Row: curr.Row + d.Row/2, Col: curr.Col + d.Col/2}
		next := curr.Add(d)

		walls[between.Row][between.Col] = Passage
		walls[next.Row][next.Col] = Passage

		stack = append(stack, next)
	}
}

func applySmartBraiding(walls [][]bool, probability float64, rng *rand.Rand) {
	n := len(walls)

	// Rooms sit on odd coordinates
	for row := 1; row < n-1; row += 2 {
		for col := 1; col < n-1; col += 2 {
			if walls[row][col] == Wall {
				continue
			}
			room := grid.Point{Row: row, Col: col}

			// Dead end: exactly one open side
			exits := 0
			for _, d := range orthoDirs {
				p := room.Add(d)
				if walls[p.Row][p.Col] == Passage {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]grid.Point, 0, 4)
			for _, jd := range jumpDirs {
				target := room.Add(jd)
				wall := grid.Point{Row: row + jd.Row/2, Col: col + jd.Col/2}
				if !inside(n, target) {
					continue
				}
				if walls[target.Row][target.Col] == Passage && walls[wall.Row][wall.Col] == Wall {
					if canSafelyRemoveWall(walls, wall) {
						candidates = append(candidates, wall)
					}
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				walls[c.Row][c.Col] = Passage
			}
		}
	}
}

// canSafelyRemoveWall checks if opening p creates prohibited topology:
// 1. Plazas (2x2 Passages).
// 2. Pillars (Isolated Walls).
func canSafelyRemoveWall(walls [][]bool, p grid.Point) bool {
	n := len(walls)

	// Out of bounds counts as wall
	open := func(row, col int) bool {
		if row < 0 || row >= n || col < 0 || col >= n {
			return false
		}
		return walls[row][col] == Passage
	}

	r, c := p.Row, p.Col
	if open(r-1, c-1) && open(r-1, c) && open(r, c-1) {
		return false
	}
	if open(r-1, c) && open(r-1, c+1) && open(r, c+1) {
		return false
	}
	if open(r, c-1) && open(r+1, c-1) && open(r+1, c) {
		return false
	}
	if open(r, c+1) && open(r+1, c) && open(r+1, c+1) {
		return false
	}

	// A neighboring wall must keep at least one other wall connection
	for _, d := range orthoDirs {
		nb := p.Add(d)
		if !inside(n, nb) || walls[nb.Row][nb.Col] != Wall {
			continue
		}
		connections := 0
		for _, d2 := range orthoDirs {
			nn := nb.Add(d2)
			if nn == p {
				continue // About to become passage
			}
			if inside(n, nn) && walls[nn.Row][nn.Col] == Wall {
				connections++
			}
		}
		if connections == 0 {
			return false
		}
	}

	return true
}

func stripBorders(walls [][]bool) {
	n := len(walls)
	for i := 0; i < n; i++ {
		walls[0][i] = Passage
		walls[n-1][i] = Passage
		walls[i][0] = Passage
		walls[i][n-1] = Passage
	}
}

// --- Helpers ---

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func filled(n int, v bool) [][]bool {
	walls := make([][]bool, n)
	for i := range walls {
		walls[i] = make([]bool, n)
		if v {
			for j := range walls[i] {
				walls[i][j] = v
			}
		}
	}
	return walls
}

func inside(n int, p grid.Point) bool {
	return p.Row >= 0 && p.Row < n && p.Col >= 0 && p.Col < n
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1 // Round down to stay within bounds
	}
	return n
}

func resolvePoint(n int, p *grid.Point, def grid.Point) grid.Point {
	if p == nil {
		return def
	}
	return grid.Point{Row: clamp(p.Row, 0, n-1), Col: clamp(p.Col, 0, n-1)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func forceOpen(walls [][]bool, p grid.Point) {
	n := len(walls)
	if !inside(n, p) {
		return
	}
	walls[p.Row][p.Col] = Passage

	for _, d := range orthoDirs {
		nb := p.Add(d)
		if inside(n, nb) && walls[nb.Row][nb.Col] == Passage {
			return
		}
	}

	// Isolated: open the first interior neighbor
	for _, d := range orthoDirs {
		nb := p.Add(d)
		if nb.Row > 0 && nb.Row < n-1 && nb.Col > 0 && nb.Col < n-1 {
			walls[nb.Row][nb.Col] = Passage
			return
		}
	}
}
