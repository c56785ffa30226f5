package parameter

// Layout & Margins
const (
	// TopMargin leaves a line for the title
	TopMargin = 1

	// BottomMargin for status bar and key help
	BottomMargin = 2

	// LeftMargin before the first grid column
	LeftMargin = 1

	// DefaultCellWidth is terminal columns per grid cell; 2 keeps cells roughly square
	DefaultCellWidth = 2

	// MaxCellWidth bounds cell_width from config
	MaxCellWidth = 8
)

// Status Bar
const (
	StatusTextIdle     = " READY "
	StatusTextReplay   = " SEARCHING "
	StatusTextFound    = " FOUND "
	StatusTextNotFound = " NO PATH "

	HelpText = "LMB:place RMB:erase SPC:search ENT:skip c:clear m:maze r:scatter s:mute q:quit"

	// CellGlyph fills every terminal column of a grid cell
	CellGlyph = ' '
)
