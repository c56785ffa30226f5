package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/event"
)

// KeyTable maps keys to commands
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc)
	SpecialKeys map[tcell.Key]event.CommandType

	// Printable rune bindings
	Runes map[rune]event.CommandType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]event.CommandType{
			tcell.KeyCtrlC:  event.CmdQuit,
			tcell.KeyEscape: event.CmdQuit,
			tcell.KeyEnter:  event.CmdSkip,
		},
		Runes: map[rune]event.CommandType{
			' ': event.CmdSearch,
			'c': event.CmdReset,
			'C': event.CmdReset,
			'm': event.CmdMaze,
			'r': event.CmdScatter,
			's': event.CmdMute,
			'q': event.CmdQuit,
			'Q': event.CmdQuit,
		},
	}
}

// Lookup returns the command bound to a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (event.CommandType, bool) {
	if ev.Key() == tcell.KeyRune {
		cmd, ok := kt.Runes[ev.Rune()]
		return cmd, ok
	}
	cmd, ok := kt.SpecialKeys[ev.Key()]
	return cmd, ok
}
