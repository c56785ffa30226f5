package event

import (
	"fmt"

	"github.com/lixenwraith/astral/grid"
)

// CommandType represents the type of input command
type CommandType int

const (
	// CmdNone is the zero value and is ignored by consumers
	CmdNone CommandType = iota

	// CmdPlace applies the click rule: start, then end, then obstacles
	// Trigger: primary pointer button | Payload: Cell
	CmdPlace

	// CmdErase returns a cell to Empty and forgets start/end on it
	// Trigger: secondary pointer button | Payload: Cell
	CmdErase

	// CmdSetState assigns an explicit state
	// Trigger: scripted input, tests | Payload: Cell, State
	CmdSetState

	// CmdReset rebuilds the grid
	// Trigger: 'c' | Payload: none
	CmdReset

	// CmdSearch runs A* and queues its steps for replay
	// Trigger: Space | Payload: none
	CmdSearch

	// CmdMaze replaces the layout with a generated maze
	// Trigger: 'm' | Payload: none
	CmdMaze

	// CmdScatter replaces the layout with random obstacles
	// Trigger: 'r' | Payload: none
	CmdScatter

	// CmdSkip applies all pending replay steps at once
	// Trigger: Enter | Payload: none
	CmdSkip

	// CmdQuit ends the main loop
	// Trigger: q, Esc, Ctrl-C | Payload: none
	CmdQuit

	// CmdMute toggles audio cues
	// Trigger: 's' | Payload: none
	CmdMute
)

var commandNames = map[CommandType]string{
	CmdNone:     "none",
	CmdPlace:    "place",
	CmdErase:    "erase",
	CmdSetState: "set_state",
	CmdReset:    "reset",
	CmdSearch:   "search",
	CmdMaze:     "maze",
	CmdScatter:  "scatter",
	CmdSkip:     "skip",
	CmdQuit:     "quit",
	CmdMute:     "mute",
}

func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(t))
}

// IsPaint reports whether t edits a single cell, as mouse drags do in bursts
func (t CommandType) IsPaint() bool {
	return t == CmdPlace || t == CmdErase || t == CmdSetState
}

// Command is one input-layer request for the session loop
type Command struct {
	Type  CommandType
	Cell  grid.Point
	State grid.State
}
