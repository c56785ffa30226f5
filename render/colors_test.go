package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/grid"
)

var allStates = []grid.State{
	grid.Empty, grid.Obstacle, grid.Start, grid.End,
	grid.Frontier, grid.Visited, grid.Path,
}

func TestPaletteDistinctColors(t *testing.T) {
	for _, mode := range []ColorMode{ColorTrue, ColorBasic} {
		t.Run(string(mode), func(t *testing.T) {
			p := NewPalette(mode)
			seen := make(map[tcell.Color]grid.State)
			for _, s := range allStates {
				c, ok := p[s]
				if !ok {
					t.Fatalf("State %s has no color", s)
				}
				if prev, dup := seen[c]; dup {
					t.Errorf("States %s and %s share a color", prev, s)
				}
				seen[c] = s
			}
		})
	}
}

func TestPaletteFallback(t *testing.T) {
	p := NewPalette(ColorTrue)
	if got := p.Color(grid.State(200)); got != RgbEmpty {
		t.Errorf("Expected empty color for unknown state, got %v", got)
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorTrue, false},
		{"truecolor", ColorTrue, false},
		{"basic", ColorBasic, false},
		{"sepia", "", true},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
