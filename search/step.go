package search

import (
	"fmt"

	"github.com/lixenwraith/astral/grid"
)

// StepKind is the reason a cell changed during a search
type StepKind uint8

const (
	// StepFrontier: cell pushed into the open set with an improved score
	StepFrontier StepKind = iota + 1
	// StepVisited: cell expanded (never emitted for the start cell)
	StepVisited
	// StepPath: cell is on the reconstructed path, emitted end first
	StepPath
)

func (k StepKind) String() string {
	switch k {
	case StepFrontier:
		return "frontier"
	case StepVisited:
		return "visited"
	case StepPath:
		return "path"
	default:
		return "unknown"
	}
}

// State maps the step reason to the cell state a renderer should show
func (k StepKind) State() grid.State {
	switch k {
	case StepFrontier:
		return grid.Frontier
	case StepVisited:
		return grid.Visited
	case StepPath:
		return grid.Path
	default:
		return grid.Empty
	}
}

// Step is one visualizable change emitted by the engine
type Step struct {
	Kind StepKind
	Cell grid.Point
}

func (s Step) String() string {
	return fmt.Sprintf("%s%v", s.Kind, s.Cell)
}
