// Package color exposes the terminal palette trakr draws with.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a raw color value, either an ANSI index or a hex string.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Base ANSI palette, by standard index.
var (
	Black  = New("0")
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
)

// Bright variants, indices 8 through 15.
var (
	HiBlack  = New("8")
	HiRed    = New("9")
	HiGreen  = New("10")
	HiYellow = New("11")
	HiBlue   = New("12")
	HiPurple = New("13")
	HiCyan   = New("14")
	HiWhite  = New("15")
)

// Accents outside the ANSI range.
var (
	Orange = New("#fb8500")
)
