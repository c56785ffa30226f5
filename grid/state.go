package grid

// State is the mutually exclusive tag carried by every cell
type State uint8

const (
	Empty State = iota
	Obstacle
	Start
	End
	Frontier // In the open set, not yet expanded
	Visited  // Expanded
	Path     // Part of the reconstructed shortest path
)

var stateNames = [...]string{
	Empty:    "empty",
	Obstacle: "obstacle",
	Start:    "start",
	End:      "end",
	Frontier: "frontier",
	Visited:  "visited",
	Path:     "path",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// IsSearchMark reports whether the state is written by search replay rather than by the user
func (s State) IsSearchMark() bool {
	return s == Frontier || s == Visited || s == Path
}

// IsEndpoint reports whether the state is one of the two search endpoints
func (s State) IsEndpoint() bool {
	return s == Start || s == End
}

// Glyph is the single-character picture used by String and the CLI
func (s State) Glyph() rune {
	switch s {
	case Obstacle:
		return '#'
	case Start:
		return 'S'
	case End:
		return 'E'
	case Frontier:
		return '+'
	case Visited:
		return '~'
	case Path:
		return '*'
	default:
		return '.'
	}
}
