// Package style renders terminal text through a small set of lipgloss helpers.
package style

import "github.com/charmbracelet/lipgloss"

// Neutral tones, darkest to lightest.
var (
	Base    = lipgloss.Color("#24273a")
	Surface = lipgloss.Color("#363a4f")
	Overlay = lipgloss.Color("#6e738d")
	Subtext = lipgloss.Color("#b8c0e0")
	Text    = lipgloss.Color("#cad3f5")
)

// Accent tones.
var (
	Red      = lipgloss.Color("#ed8796")
	Peach    = lipgloss.Color("#f5a97f")
	Yellow   = lipgloss.Color("#eed49f")
	Green    = lipgloss.Color("#a6da95")
	Blue     = lipgloss.Color("#8aadf4")
	Lavender = lipgloss.Color("#b7bdf8")
	Mauve    = lipgloss.Color("#c6a0f6")
)

// Roles the UI paints with. Widgets reference these, not the raw tones.
var (
	AccentColor    = Mauve
	SecondaryColor = Lavender
	SuccessColor   = Green
	ErrorColor     = Red
)
