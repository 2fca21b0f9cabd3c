package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorMagenta  = lipgloss.Color("#FF00FF")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8")
)

// ConfigureColor picks the lipgloss color profile for this run.
// NO_COLOR or noColor forces plain ASCII output. Warp reports a TERM that
// makes termenv stall while probing, so it gets a fixed truecolor profile.
func ConfigureColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	if os.Getenv("TERM_PROGRAM") == "WarpTerminal" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// SideColor returns the color used for one side of a comparison
func SideColor(side string) lipgloss.Color {
	switch side {
	case "release":
		return ColorCyan
	case "tracker":
		return ColorMagenta
	case "common":
		return ColorGreen
	default:
		return ColorWhite
	}
}
