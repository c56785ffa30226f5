package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/astral/ctxlog"
	"github.com/lixenwraith/astral/grid"
)

// Result contains the outcome of a search
// Found=false is the normal not-found outcome, not an error
type Result struct {
	RunID      uuid.UUID
	Start, End grid.Point
	Found      bool
	Path       []grid.Point // start..end inclusive when Found
	Steps      []Step       // every emitted step in order, replayable
	Expanded   int
}

// Count returns how many steps of the given kind were emitted
func (r Result) Count(kind StepKind) int {
	n := 0
	for _, s := range r.Steps {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// FindPath runs A* from start to end to completion
// Uniform edge cost 1, Manhattan heuristic unless overridden, ties broken by insertion order
func FindPath(ctx context.Context, g *grid.Grid, start, end grid.Point, options ...Option) (Result, error) {
	s, err := NewStepper(g, start, end, options...)
	if err != nil {
		return Result{}, err
	}

	log := ctxlog.FromContext(ctx)
	log.Debug("search started", "run", s.RunID(), "start", start, "end", end, "size", g.Size())
	began := time.Now()

	for !s.Done() {
		if _, _, err := s.Next(ctx); err != nil {
			log.Debug("search aborted", "run", s.RunID(), "err", err)
			return Result{}, err
		}
	}

	res := s.Result()
	log.Debug("search finished",
		"run", res.RunID,
		"found", res.Found,
		"path", len(res.Path),
		"expanded", res.Expanded,
		"steps", len(res.Steps),
		"elapsed", time.Since(began),
	)
	return res, nil
}
