package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/grid"
)

// ColorMode selects the palette family
type ColorMode string

const (
	ColorTrue  ColorMode = "truecolor"
	ColorBasic ColorMode = "basic"
)

// ParseColorMode accepts the config spelling of a mode; empty means truecolor
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorTrue:
		return ColorTrue, nil
	case ColorBasic:
		return ColorBasic, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

// RGB color definitions for cell states
var (
	RgbEmpty    = tcell.NewRGBColor(255, 255, 255) // White
	RgbObstacle = tcell.NewRGBColor(0, 0, 0)       // Black
	RgbStart    = tcell.NewRGBColor(0, 200, 0)     // Green
	RgbEnd      = tcell.NewRGBColor(220, 40, 40)   // Red
	RgbFrontier = tcell.NewRGBColor(100, 150, 255) // Blue
	RgbVisited  = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbPath     = tcell.NewRGBColor(255, 215, 0)   // Gold

	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbTitle      = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHelp       = tcell.NewRGBColor(120, 120, 120) // Dim gray
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status

	// Status bar backgrounds
	RgbIdleBg     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbReplayBg   = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbFoundBg    = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbNotFoundBg = tcell.NewRGBColor(200, 50, 50)   // Red
)

// Palette maps every cell state to its fill color
type Palette map[grid.State]tcell.Color

// NewPalette returns the cell palette for mode
func NewPalette(mode ColorMode) Palette {
	if mode == ColorBasic {
		return Palette{
			grid.Empty:    tcell.ColorWhite,
			grid.Obstacle: tcell.ColorBlack,
			grid.Start:    tcell.ColorGreen,
			grid.End:      tcell.ColorRed,
			grid.Frontier: tcell.ColorBlue,
			grid.Visited:  tcell.ColorSilver,
			grid.Path:     tcell.ColorYellow,
		}
	}
	return Palette{
		grid.Empty:    RgbEmpty,
		grid.Obstacle: RgbObstacle,
		grid.Start:    RgbStart,
		grid.End:      RgbEnd,
		grid.Frontier: RgbFrontier,
		grid.Visited:  RgbVisited,
		grid.Path:     RgbPath,
	}
}

// Color returns the fill for s, falling back to the empty color
func (p Palette) Color(s grid.State) tcell.Color {
	if c, ok := p[s]; ok {
		return c
	}
	return p[grid.Empty]
}
