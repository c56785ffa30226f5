package search

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lixenwraith/astral/grid"
)

// ErrInvalidSearchRequest is returned when an endpoint is missing or sits on an obstacle
var ErrInvalidSearchRequest = errors.New("search: invalid request")

const unreached = math.MaxInt

// Stepper runs A* one expansion at a time
// It reads cell states and neighbor lists; the grid must not change until the run is done
type Stepper struct {
	g          *grid.Grid
	start, end int
	opts       Options

	open     openSet
	seq      uint64
	cameFrom []int
	gScore   []int
	fScore   []int
	closed   []bool

	steps    []Step
	expanded int
	path     []grid.Point
	done     bool
	found    bool
}

// NewStepper validates the endpoints and seeds the open set with start
// Neighbor lists are taken as they are: call Grid.RefreshNeighbors first
func NewStepper(g *grid.Grid, start, end grid.Point, options ...Option) (*Stepper, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidSearchRequest)
	}
	for _, p := range []grid.Point{start, end} {
		if !g.Contains(p) {
			return nil, fmt.Errorf("%w: endpoint %v", grid.ErrOutOfBounds, p)
		}
		if g.StateAt(p) == grid.Obstacle {
			return nil, fmt.Errorf("%w: endpoint %v is an obstacle", ErrInvalidSearchRequest, p)
		}
	}

	n := g.Len()
	s := &Stepper{
		g:        g,
		start:    g.Index(start),
		end:      g.Index(end),
		opts:     buildOptions(options),
		cameFrom: make([]int, n),
		gScore:   make([]int, n),
		fScore:   make([]int, n),
		closed:   make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s.cameFrom[i] = -1
		s.gScore[i] = unreached
		s.fScore[i] = unreached
	}

	s.gScore[s.start] = 0
	s.fScore[s.start] = s.opts.Heuristic(start, end)
	s.pushOpen(s.start)

	return s, nil
}

func (s *Stepper) pushOpen(idx int) {
	s.open.push(openEntry{idx: idx, f: s.fScore[idx], g: s.gScore[idx], seq: s.seq})
	s.seq++
}

func (s *Stepper) emit(kind StepKind, idx int, out []Step) []Step {
	step := Step{Kind: kind, Cell: s.g.PointOf(idx)}
	s.steps = append(s.steps, step)
	if s.opts.Observer != nil {
		s.opts.Observer(step)
	}
	return append(out, step)
}

// Next performs one expansion and returns the steps it produced
// done is true once the end was reached or the open set ran dry
// A cancelled context aborts the run and discards its state
func (s *Stepper) Next(ctx context.Context) (steps []Step, done bool, err error) {
	if s.done {
		return nil, true, nil
	}
	if err := ctx.Err(); err != nil {
		s.abort()
		return nil, true, err
	}

	current, ok := s.popCurrent()
	if !ok {
		s.finish(false)
		return nil, true, nil
	}
	s.closed[current] = true
	s.expanded++

	if current == s.end {
		steps = s.reconstruct(steps)
		s.finish(true)
		return steps, true, nil
	}

	pos := s.g.PointOf(current)
	endPos := s.g.PointOf(s.end)
	for _, nb := range s.g.Neighbors(pos) {
		ni := s.g.Index(nb)
		tentative := s.gScore[current] + 1
		if tentative < s.gScore[ni] {
			s.cameFrom[ni] = current
			s.gScore[ni] = tentative
			s.fScore[ni] = tentative + s.opts.Heuristic(nb, endPos)
			s.pushOpen(ni)
			steps = s.emit(StepFrontier, ni, steps)
		}
	}

	if current != s.start {
		steps = s.emit(StepVisited, current, steps)
	}
	return steps, false, nil
}

// popCurrent pops the best live entry, skipping stale duplicates
func (s *Stepper) popCurrent() (int, bool) {
	for s.open.len() > 0 {
		e := s.open.pop()
		if s.closed[e.idx] || e.g != s.gScore[e.idx] {
			continue
		}
		return e.idx, true
	}
	return -1, false
}

// reconstruct walks came-from back from end, emitting path steps in that order
func (s *Stepper) reconstruct(steps []Step) []Step {
	var backward []grid.Point
	for idx := s.end; idx != -1; idx = s.cameFrom[idx] {
		steps = s.emit(StepPath, idx, steps)
		backward = append(backward, s.g.PointOf(idx))
		if idx == s.start {
			break
		}
	}
	s.path = make([]grid.Point, len(backward))
	for i, p := range backward {
		s.path[len(backward)-1-i] = p
	}
	return steps
}

func (s *Stepper) finish(found bool) {
	s.done = true
	s.found = found
	s.open = nil
	s.cameFrom, s.gScore, s.fScore, s.closed = nil, nil, nil, nil
}

func (s *Stepper) abort() {
	s.finish(false)
	s.path = nil
}

// Done reports whether the run has terminated
func (s *Stepper) Done() bool { return s.done }

// RunID identifies this run in results and logs
func (s *Stepper) RunID() uuid.UUID { return s.opts.RunID }

// Result summarizes the run so far; Path is set only once found
func (s *Stepper) Result() Result {
	return Result{
		RunID:    s.opts.RunID,
		Start:    s.g.PointOf(s.start),
		End:      s.g.PointOf(s.end),
		Found:    s.found,
		Path:     s.path,
		Steps:    s.steps,
		Expanded: s.expanded,
	}
}
