// Package session owns the grid of the interactive visualizer.
// It executes commands, runs searches and replays their steps into cell states.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/astral/ctxlog"
	"github.com/lixenwraith/astral/event"
	"github.com/lixenwraith/astral/grid"
	"github.com/lixenwraith/astral/maze"
	"github.com/lixenwraith/astral/metrics"
	"github.com/lixenwraith/astral/parameter"
	"github.com/lixenwraith/astral/search"
)

// ErrInvalidTransition is returned for a forbidden cell state assignment
var ErrInvalidTransition = errors.New("session: invalid state transition")

// Phase is the lifecycle position of the last search
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseReplaying
	PhaseFound
	PhaseNotFound
)

func (p Phase) String() string {
	switch p {
	case PhaseReplaying:
		return "replaying"
	case PhaseFound:
		return "found"
	case PhaseNotFound:
		return "not_found"
	default:
		return "idle"
	}
}

// Status summarizes the last search and its replay
type Status struct {
	Phase    Phase
	RunID    uuid.UUID
	PathLen  int
	Expanded int
	Applied  int // replayed steps
	Total    int // steps emitted by the run
}

// Pending returns the number of steps still queued for replay
func (s Status) Pending() int {
	return s.Total - s.Applied
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger, discarded by default
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics records search runs on c
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Session) { s.metrics = c }
}

// WithMazeConfig sets the layout parameters used by CmdMaze
func WithMazeConfig(cfg maze.Config) Option {
	return func(s *Session) { s.mazeCfg = cfg }
}

// WithScatterDensity sets the obstacle density used by CmdScatter
func WithScatterDensity(d float64) Option {
	return func(s *Session) { s.density = d }
}

// Session is owned by a single goroutine; it is not safe for concurrent use
type Session struct {
	g        *grid.Grid
	start    grid.Point
	end      grid.Point
	hasStart bool
	hasEnd   bool

	pending []search.Step
	cursor  int
	status  Status
	outcome Phase

	log     *slog.Logger
	metrics *metrics.Collector
	mazeCfg maze.Config
	density float64

	onStep  func(search.Step)
	onStart func(Status)
	onDone  func(Status)
}

// New creates a session over an empty grid of the given size
func New(size int, options ...Option) (*Session, error) {
	g, err := grid.New(size)
	if err != nil {
		return nil, err
	}
	s := &Session{
		g:       g,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		mazeCfg: maze.Config{Braiding: parameter.DefaultMazeBraiding},
		density: parameter.DefaultScatterDensity,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// OnStep registers fn to run for every step applied during replay
func (s *Session) OnStep(fn func(search.Step)) { s.onStep = fn }

// OnReplayStart registers fn to run when a search result is queued for replay
func (s *Session) OnReplayStart(fn func(Status)) { s.onStart = fn }

// OnReplayDone registers fn to run once the replay of a run has completed
func (s *Session) OnReplayDone(fn func(Status)) { s.onDone = fn }

// Grid exposes the grid for rendering; callers must not mutate it
func (s *Session) Grid() *grid.Grid { return s.g }

func (s *Session) Size() int { return s.g.Size() }

// State returns the state of the cell at row, col
func (s *Session) State(row, col int) (grid.State, error) {
	c, err := s.g.CellAt(row, col)
	if err != nil {
		return grid.Empty, err
	}
	return c.State(), nil
}

// Start returns the start marker, if set
func (s *Session) Start() (grid.Point, bool) { return s.start, s.hasStart }

// End returns the end marker, if set
func (s *Session) End() (grid.Point, bool) { return s.end, s.hasEnd }

func (s *Session) Status() Status { return s.status }

// Replaying reports whether steps are still queued
func (s *Session) Replaying() bool { return s.cursor < len(s.pending) }

// SetCellState assigns one of Empty, Obstacle, Start or End
// Start and End are single markers: placing one moves it
func (s *Session) SetCellState(row, col int, st grid.State) error {
	c, err := s.g.CellAt(row, col)
	if err != nil {
		return err
	}
	p := c.Point()
	cur := c.State()

	switch st {
	case grid.Start:
		if cur == grid.Obstacle || cur == grid.End {
			return fmt.Errorf("%w: start on %s at %v", ErrInvalidTransition, cur, p)
		}
		s.abortReplay()
		if s.hasStart && s.start != p {
			s.g.At(s.start).SetState(grid.Empty)
		}
		c.SetState(grid.Start)
		s.start, s.hasStart = p, true

	case grid.End:
		if cur == grid.Obstacle || cur == grid.Start {
			return fmt.Errorf("%w: end on %s at %v", ErrInvalidTransition, cur, p)
		}
		s.abortReplay()
		if s.hasEnd && s.end != p {
			s.g.At(s.end).SetState(grid.Empty)
		}
		c.SetState(grid.End)
		s.end, s.hasEnd = p, true

	case grid.Obstacle:
		if cur.IsEndpoint() {
			return fmt.Errorf("%w: obstacle on %s at %v", ErrInvalidTransition, cur, p)
		}
		s.abortReplay()
		c.SetState(grid.Obstacle)

	case grid.Empty:
		s.abortReplay()
		switch cur {
		case grid.Start:
			s.hasStart = false
		case grid.End:
			s.hasEnd = false
		}
		c.SetState(grid.Empty)

	default:
		return fmt.Errorf("%w: %s is not assignable", ErrInvalidTransition, st)
	}
	return nil
}

// Place applies the primary-click rule: start first, then end, then obstacles
// Clicking an existing marker does nothing
func (s *Session) Place(row, col int) error {
	c, err := s.g.CellAt(row, col)
	if err != nil {
		return err
	}
	p := c.Point()

	switch {
	case s.hasStart && p == s.start, s.hasEnd && p == s.end:
		return nil
	case !s.hasStart:
		return s.SetCellState(row, col, grid.Start)
	case !s.hasEnd:
		return s.SetCellState(row, col, grid.End)
	default:
		return s.SetCellState(row, col, grid.Obstacle)
	}
}

// Erase returns a cell to Empty, clearing a marker that sat on it
func (s *Session) Erase(row, col int) error {
	return s.SetCellState(row, col, grid.Empty)
}

// ResetGrid clears every cell and forgets both markers
func (s *Session) ResetGrid() {
	s.abortReplay()
	s.g.Reset()
	s.hasStart, s.hasEnd = false, false
	s.status = Status{}
	s.log.Info("grid reset", "size", s.g.Size())
}

// GenerateMaze replaces the grid content with a generated layout
// cfg.Size is taken from the grid
func (s *Session) GenerateMaze(cfg maze.Config) error {
	cfg.Size = s.g.Size()
	layout := maze.Generate(cfg)
	return s.applyLayout(layout, "maze")
}

// Scatter replaces the grid content with random obstacles
func (s *Session) Scatter(density float64, seed int64) error {
	layout := maze.Scatter(s.g.Size(), density, seed)
	return s.applyLayout(layout, "scatter")
}

func (s *Session) applyLayout(layout maze.Layout, kind string) error {
	s.abortReplay()
	if err := layout.Apply(s.g); err != nil {
		return err
	}
	s.start, s.hasStart = layout.Start, true
	s.end, s.hasEnd = layout.End, layout.End != layout.Start
	s.status = Status{}
	s.log.Info("layout applied",
		"kind", kind,
		"size", layout.Size(),
		"start", layout.Start,
		"end", layout.End,
		"solvable", layout.SolutionPath != nil,
	)
	return nil
}

// TriggerSearch runs A* between the markers and queues its steps for replay
// The grid is cleared of previous search marks first
func (s *Session) TriggerSearch(ctx context.Context) (search.Result, error) {
	if !s.hasStart || !s.hasEnd {
		s.metrics.ObserveInvalid()
		return search.Result{}, fmt.Errorf("%w: start and end must both be set", search.ErrInvalidSearchRequest)
	}

	s.abortReplay()
	s.g.ClearSearch()
	s.g.RefreshNeighbors()

	began := time.Now()
	res, err := search.FindPath(ctxlog.WithLogger(ctx, s.log), s.g, s.start, s.end)
	elapsed := time.Since(began)
	if err != nil {
		s.metrics.ObserveError(err)
		s.log.Warn("search failed", "err", err)
		return search.Result{}, err
	}

	s.metrics.ObserveRun(res.Found, elapsed, res.Expanded, len(res.Path), map[string]int{
		search.StepFrontier.String(): res.Count(search.StepFrontier),
		search.StepVisited.String():  res.Count(search.StepVisited),
		search.StepPath.String():     res.Count(search.StepPath),
	})

	s.pending = res.Steps
	s.cursor = 0
	s.outcome = PhaseNotFound
	if res.Found {
		s.outcome = PhaseFound
	}
	s.status = Status{
		Phase:    PhaseReplaying,
		RunID:    res.RunID,
		PathLen:  len(res.Path),
		Expanded: res.Expanded,
		Total:    len(res.Steps),
	}

	s.log.Info("search completed",
		"run", res.RunID,
		"found", res.Found,
		"path", len(res.Path),
		"expanded", res.Expanded,
		"steps", len(res.Steps),
		"elapsed", elapsed,
	)

	if s.onStart != nil {
		s.onStart(s.status)
	}
	if len(s.pending) == 0 {
		s.finishReplay()
	}
	return res, nil
}

// Advance applies up to n queued steps and returns how many were applied
// Start and End markers keep their state
func (s *Session) Advance(n int) int {
	applied := 0
	for applied < n && s.cursor < len(s.pending) {
		step := s.pending[s.cursor]
		s.cursor++
		applied++

		if c := s.g.At(step.Cell); c != nil && !c.State().IsEndpoint() {
			c.SetState(step.Kind.State())
		}
		if s.onStep != nil {
			s.onStep(step)
		}
	}
	s.status.Applied += applied

	if applied > 0 && s.cursor == len(s.pending) {
		s.finishReplay()
	}
	return applied
}

// Skip applies every remaining step
func (s *Session) Skip() int {
	return s.Advance(len(s.pending) - s.cursor)
}

func (s *Session) finishReplay() {
	s.pending = nil
	s.cursor = 0
	s.status.Phase = s.outcome
	if s.onDone != nil {
		s.onDone(s.status)
	}
}

// abortReplay drops queued steps; cells already painted keep their marks
func (s *Session) abortReplay() {
	if !s.Replaying() {
		return
	}
	s.log.Debug("replay aborted", "run", s.status.RunID, "applied", s.status.Applied, "total", s.status.Total)
	s.pending = nil
	s.cursor = 0
	s.status.Phase = PhaseIdle
}

// Apply executes a command and reports whether the session should end
func (s *Session) Apply(ctx context.Context, cmd event.Command) (quit bool, err error) {
	row, col := cmd.Cell.Row, cmd.Cell.Col

	switch cmd.Type {
	case event.CmdPlace:
		err = s.Place(row, col)
	case event.CmdErase:
		err = s.Erase(row, col)
	case event.CmdSetState:
		err = s.SetCellState(row, col, cmd.State)
	case event.CmdReset:
		s.ResetGrid()
	case event.CmdSearch:
		_, err = s.TriggerSearch(ctx)
	case event.CmdMaze:
		err = s.GenerateMaze(s.mazeCfg)
	case event.CmdScatter:
		err = s.Scatter(s.density, s.mazeCfg.Seed)
	case event.CmdSkip:
		s.Skip()
	case event.CmdQuit:
		return true, nil
	case event.CmdNone, event.CmdMute:
		// audio belongs to the caller
	default:
		err = fmt.Errorf("session: unknown %s", cmd.Type)
	}

	if err != nil {
		s.log.Debug("command rejected", "cmd", cmd.Type, "cell", cmd.Cell, "err", err)
	}
	return false, err
}
