package parameter

import "time"

// Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultStepsPerFrame is how many search steps replay applies per frame
	DefaultStepsPerFrame = 4

	// MaxStepsPerFrame caps replay speed set from config
	MaxStepsPerFrame = 4096
)

// Command Queue Limits
const (
	// CommandQueueSize is how many commands may wait before paint commands are refused
	CommandQueueSize = 256

	// CommandBacklogWarn is the pending count at which the frame loop logs a backlog
	CommandBacklogWarn = CommandQueueSize / 2
)

// Grid Defaults
const (
	// DefaultGridSize is the default rows (and columns) of the grid
	DefaultGridSize = 50

	// MaxGridSize bounds config so the score tables stay small
	MaxGridSize = 1024
)

// Maze Defaults
const (
	// DefaultMazeBraiding is the share of dead ends opened into loops
	DefaultMazeBraiding = 0.2

	// DefaultScatterDensity is the obstacle probability for scatter layouts
	DefaultScatterDensity = 0.3
)
