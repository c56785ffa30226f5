package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/event"
	"github.com/lixenwraith/astral/grid"
)

// Mapper converts terminal coordinates to grid cells
type Mapper struct {
	OriginX   int // screen column of cell (0,0)
	OriginY   int // screen row of cell (0,0)
	CellWidth int // terminal columns per cell
	Size      int // grid side
}

// CellAt returns the grid cell under screen position x, y
// ok is false outside the grid
func (m Mapper) CellAt(x, y int) (grid.Point, bool) {
	w := m.CellWidth
	if w < 1 {
		w = 1
	}
	dx, dy := x-m.OriginX, y-m.OriginY
	if dx < 0 || dy < 0 {
		return grid.Point{}, false
	}
	p := grid.Point{Row: dy, Col: dx / w}
	if p.Row >= m.Size || p.Col >= m.Size {
		return grid.Point{}, false
	}
	return p, true
}

// Machine translates terminal events into session commands
// Holding a button while dragging paints every cell crossed once
type Machine struct {
	mapper   Mapper
	keyTable *KeyTable

	// Drag state
	held     tcell.ButtonMask
	lastCell grid.Point
	hasLast  bool
}

// NewMachine creates a new input machine
func NewMachine(m Mapper) *Machine {
	return &Machine{
		mapper:   m,
		keyTable: DefaultKeyTable(),
	}
}

func (m *Machine) reset() {
	m.held = tcell.ButtonNone
	m.hasLast = false
}

// Process returns the command for ev, if any
func (m *Machine) Process(ev tcell.Event) (event.Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok := m.keyTable.Lookup(ev)
		if !ok {
			return event.Command{}, false
		}
		return event.Command{Type: cmd}, true

	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return event.Command{}, false
}

func (m *Machine) processMouse(ev *tcell.EventMouse) (event.Command, bool) {
	var cmdType event.CommandType
	var button tcell.ButtonMask
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		cmdType, button = event.CmdPlace, tcell.Button1
	case buttons&tcell.Button2 != 0:
		cmdType, button = event.CmdErase, tcell.Button2
	default:
		m.reset()
		return event.Command{}, false
	}

	x, y := ev.Position()
	cell, ok := m.mapper.CellAt(x, y)
	if !ok {
		return event.Command{}, false
	}

	// Motion inside the same cell with the same button adds nothing
	if m.held == button && m.hasLast && m.lastCell == cell {
		return event.Command{}, false
	}
	m.held = button
	m.lastCell, m.hasLast = cell, true

	return event.Command{Type: cmdType, Cell: cell}, true
}
