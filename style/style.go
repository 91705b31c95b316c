// Package style renders terminal text through a small set of lipgloss helpers.
package style

import "github.com/charmbracelet/lipgloss"

// New returns an empty style to build on.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a function rendering its argument in the given foreground color.
func Fg(c lipgloss.Color) func(string) string {
	style := New().Foreground(c)
	return func(s string) string { return style.Render(s) }
}

// Tag returns a function rendering its argument as a padded block with the
// given foreground and background.
func Tag(fg, bg lipgloss.Color) func(string) string {
	style := New().Foreground(fg).Background(bg).Padding(0, 1)
	return func(s string) string { return style.Render(s) }
}

// Truncate returns a function constraining its argument to the given width.
func Truncate(max int) func(string) string {
	style := New().Width(max)
	return func(s string) string { return style.Render(s) }
}

// Faint renders s dimmed.
func Faint(s string) string {
	return New().Faint(true).Render(s)
}

// Bold renders s emphasized.
func Bold(s string) string {
	return New().Bold(true).Render(s)
}

// Title renders the standard header block list views carry.
func Title(s string) string {
	return Tag(Base, AccentColor)(s)
}

// ErrorTitle renders the header block of failure screens.
func ErrorTitle(s string) string {
	return Tag(Base, ErrorColor)(s)
}
