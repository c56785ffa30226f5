package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/astral/grid"
	"github.com/lixenwraith/astral/maze"
	"github.com/lixenwraith/astral/parameter"
	"github.com/lixenwraith/astral/search"
)

var (
	sizeFlag    = flag.Int("size", 0, "Grid side; 0 prompts interactively")
	braidFlag   = flag.Float64("braid", parameter.DefaultMazeBraiding, "Braiding factor [0.0 - 1.0]")
	scatterFlag = flag.Float64("scatter", 0, "Random obstacle density instead of a maze")
	seedFlag    = flag.Int64("seed", 0, "Seed (0 = random)")
)

func main() {
	flag.Parse()

	if *sizeFlag > 0 {
		if err := run(*sizeFlag, *braidFlag, *scatterFlag, *seedFlag, false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\n=== MAZE GENERATOR + A* SOLVER ===")

		size := getInt(reader, "Size [Odd prefered] (default 35): ", 35)
		braid := getFloat(reader, "Braiding Factor [0.0 - 1.0] (default 0.2): ", parameter.DefaultMazeBraiding)

		fmt.Print("Mode: Jailbreak (Remove Borders)? [y/N]: ")
		jailStr, _ := reader.ReadString('\n')
		jailMode := strings.ToLower(strings.TrimSpace(jailStr)) == "y"

		if err := run(size, braid, 0, 0, jailMode); err != nil {
			fmt.Println("Error:", err)
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// run generates one layout, solves it and prints the result
func run(size int, braid, scatter float64, seed int64, jail bool) error {
	fmt.Println("\nGenerating...")
	startT := time.Now()

	var layout maze.Layout
	if scatter > 0 {
		layout = maze.Scatter(size, scatter, seed)
	} else {
		layout = maze.Generate(maze.Config{
			Size:          size,
			Braiding:      braid,
			RemoveBorders: jail,
			Seed:          seed,
		})
	}
	fmt.Printf("Done in %v\n", time.Since(startT))

	g, err := grid.New(layout.Size())
	if err != nil {
		return err
	}
	if err := layout.Apply(g); err != nil {
		return err
	}
	g.RefreshNeighbors()

	startT = time.Now()
	res, err := search.FindPath(context.Background(), g, layout.Start, layout.End)
	if err != nil {
		return err
	}
	fmt.Printf("Grid Dimensions: %dx%d\n", g.Size(), g.Size())
	fmt.Printf("A* in %v: expanded %d cells, %d step events\n", time.Since(startT), res.Expanded, len(res.Steps))

	if !res.Found {
		fmt.Println("Status: Unsolvable (Isolated Start/End)")
	} else {
		fmt.Printf("Solution Path Length: %d cells\n", len(res.Path))
		if bfs := len(layout.SolutionPath); bfs != len(res.Path) {
			fmt.Printf("WARNING: breadth-first path has %d cells\n", bfs)
		}
		for _, p := range res.Path {
			if c := g.At(p); !c.State().IsEndpoint() {
				c.SetState(grid.Path)
			}
		}
	}

	draw(g)
	return nil
}

func draw(g *grid.Grid) {
	var b strings.Builder
	g.Cells(func(c *grid.Cell) bool {
		switch c.State() {
		case grid.Obstacle:
			b.WriteString("█")
		case grid.Path:
			b.WriteString("•")
		case grid.Empty:
			b.WriteByte(' ')
		default:
			b.WriteRune(c.State().Glyph())
		}
		if c.Col() == g.Size()-1 {
			b.WriteByte('\n')
		}
		return true
	})
	fmt.Print(b.String())
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
