package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/grid"
	"github.com/lixenwraith/astral/parameter"
	"github.com/lixenwraith/astral/session"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Simulation screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return screen
}

func backgroundAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func lineAt(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestRenderFrameCellColors(t *testing.T) {
	screen := newScreen(t)
	g, err := grid.Parse([]string{
		"S.#",
		"+~*",
		"..E",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	palette := NewPalette(ColorTrue)
	r := NewTerminalRenderer(screen, palette, 2)
	r.RenderFrame(g, session.Status{})

	ox, oy := r.Origin()
	g.Cells(func(c *grid.Cell) bool {
		want := palette.Color(c.State())
		for dx := 0; dx < 2; dx++ {
			x := ox + c.Col()*2 + dx
			if got := backgroundAt(screen, x, oy+c.Row()); got != want {
				t.Errorf("Cell %v column %d: expected %v, got %v", c.Point(), dx, want, got)
			}
		}
		return true
	})

	// Right of the grid stays background
	if got := backgroundAt(screen, ox+3*2, oy); got != RgbBackground {
		t.Errorf("Expected background right of grid, got %v", got)
	}
}

func TestRenderFrameStatusBar(t *testing.T) {
	screen := newScreen(t)
	g, err := grid.New(4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r := NewTerminalRenderer(screen, NewPalette(ColorBasic), 1)

	tests := []struct {
		status session.Status
		label  string
		detail string
	}{
		{session.Status{}, parameter.StatusTextIdle, ""},
		{session.Status{Phase: session.PhaseReplaying, Applied: 3, Total: 10}, parameter.StatusTextReplay, "step 3/10"},
		{session.Status{Phase: session.PhaseFound, PathLen: 7, Expanded: 12}, parameter.StatusTextFound, "path 7  expanded 12"},
		{session.Status{Phase: session.PhaseNotFound, Expanded: 5}, parameter.StatusTextNotFound, "expanded 5"},
	}

	_, oy := r.Origin()
	for _, tt := range tests {
		r.RenderFrame(g, tt.status)
		line := lineAt(screen, oy+4, 80)
		if !strings.HasPrefix(line, tt.label) {
			t.Errorf("Expected status %q, got %q", tt.label, line)
		}
		if !strings.Contains(line, tt.detail) {
			t.Errorf("Expected detail %q in %q", tt.detail, line)
		}
	}

	help := lineAt(screen, oy+5, len(parameter.HelpText))
	if help != parameter.HelpText {
		t.Errorf("Expected help line %q, got %q", parameter.HelpText, help)
	}
}

func TestRequiredSize(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen, NewPalette(ColorTrue), 2)
	w, h := r.RequiredSize(10)
	if w != parameter.LeftMargin*2+20 {
		t.Errorf("Unexpected width %d", w)
	}
	if h != parameter.TopMargin+10+parameter.BottomMargin {
		t.Errorf("Unexpected height %d", h)
	}

	if NewTerminalRenderer(screen, nil, 0).CellWidth() != 1 {
		t.Error("Expected cell width clamped to 1")
	}
}
