package search

import (
	"github.com/google/uuid"
	"github.com/lixenwraith/astral/grid"
)

// Heuristic estimates the remaining cost from a cell to the goal
// It must never overestimate for results to stay shortest
type Heuristic func(from, to grid.Point) int

// Options holds search parameters
type Options struct {
	Heuristic Heuristic
	Observer  func(Step)
	RunID     uuid.UUID
}

// Option modifies Options
type Option func(*Options)

// WithHeuristic replaces the default Manhattan distance
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithObserver receives every step as it is produced
// The result does not depend on whether an observer is set
func WithObserver(fn func(Step)) Option {
	return func(o *Options) { o.Observer = fn }
}

// WithRunID fixes the run identifier instead of generating one
func WithRunID(id uuid.UUID) Option {
	return func(o *Options) { o.RunID = id }
}

func buildOptions(options []Option) Options {
	opts := Options{Heuristic: grid.Manhattan}
	for _, o := range options {
		o(&opts)
	}
	if opts.Heuristic == nil {
		opts.Heuristic = grid.Manhattan
	}
	if opts.RunID == uuid.Nil {
		opts.RunID = uuid.New()
	}
	return opts
}
