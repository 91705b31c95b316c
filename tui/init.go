// Package tui implements the interactive full-screen interface.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init dispatches the entry command for the configured start state.
func (b *statefulBubble) Init() tea.Cmd {
	if b.options.Calendar {
		return tea.Batch(b.startLoading(), b.loadCalendar(), b.waitForCalendar(), b.spinnerC.Tick)
	}

	return textinput.Blink
}
