package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/grid"
	"github.com/lixenwraith/astral/parameter"
	"github.com/lixenwraith/astral/session"
)

const title = "astral: A* pathfinding"

// TerminalRenderer draws the grid, the status bar and key help
type TerminalRenderer struct {
	screen    tcell.Screen
	palette   Palette
	cellWidth int
	originX   int
	originY   int
}

// NewTerminalRenderer creates a renderer drawing grid cells cellWidth columns wide
func NewTerminalRenderer(screen tcell.Screen, palette Palette, cellWidth int) *TerminalRenderer {
	if cellWidth < 1 {
		cellWidth = 1
	}
	return &TerminalRenderer{
		screen:    screen,
		palette:   palette,
		cellWidth: cellWidth,
		originX:   parameter.LeftMargin,
		originY:   parameter.TopMargin,
	}
}

// Origin returns the screen position of grid cell (0,0)
func (r *TerminalRenderer) Origin() (x, y int) { return r.originX, r.originY }

// CellWidth returns the terminal columns used by one grid cell
func (r *TerminalRenderer) CellWidth() int { return r.cellWidth }

// RequiredSize returns the screen size needed to show a grid of side n
func (r *TerminalRenderer) RequiredSize(n int) (width, height int) {
	return r.originX + n*r.cellWidth + parameter.LeftMargin, r.originY + n + parameter.BottomMargin
}

// RenderFrame renders the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(g *grid.Grid, st session.Status) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	r.drawText(0, 0, title, defaultStyle.Foreground(RgbTitle))
	r.drawGrid(g)

	statusY := r.originY + g.Size()
	r.drawStatusBar(statusY, st, defaultStyle)
	r.drawText(0, statusY+1, parameter.HelpText, defaultStyle.Foreground(RgbHelp))

	r.screen.Show()
}

func (r *TerminalRenderer) drawGrid(g *grid.Grid) {
	g.Cells(func(c *grid.Cell) bool {
		style := tcell.StyleDefault.Background(r.palette.Color(c.State()))
		x := r.originX + c.Col()*r.cellWidth
		y := r.originY + c.Row()
		for dx := 0; dx < r.cellWidth; dx++ {
			r.screen.SetContent(x+dx, y, parameter.CellGlyph, nil, style)
		}
		return true
	})
}

func (r *TerminalRenderer) drawStatusBar(y int, st session.Status, defaultStyle tcell.Style) {
	label, bg := statusLabel(st.Phase)
	x := r.drawText(0, y, label, tcell.StyleDefault.Foreground(RgbStatusText).Background(bg))

	var detail string
	switch st.Phase {
	case session.PhaseReplaying:
		detail = fmt.Sprintf(" step %d/%d", st.Applied, st.Total)
	case session.PhaseFound:
		detail = fmt.Sprintf(" path %d  expanded %d", st.PathLen, st.Expanded)
	case session.PhaseNotFound:
		detail = fmt.Sprintf(" expanded %d", st.Expanded)
	}
	r.drawText(x, y, detail, defaultStyle.Foreground(RgbTitle))
}

func statusLabel(p session.Phase) (string, tcell.Color) {
	switch p {
	case session.PhaseReplaying:
		return parameter.StatusTextReplay, RgbReplayBg
	case session.PhaseFound:
		return parameter.StatusTextFound, RgbFoundBg
	case session.PhaseNotFound:
		return parameter.StatusTextNotFound, RgbNotFoundBg
	default:
		return parameter.StatusTextIdle, RgbIdleBg
	}
}

// drawText writes s from x and returns the column after its last rune
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
