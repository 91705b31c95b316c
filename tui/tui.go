// Package tui implements the interactive full-screen interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options selects which screen the interface opens on.
type Options struct {
	Continue bool
	Calendar bool
}

// Run starts the interface and blocks until the user leaves it.
func Run(options *Options) error {
	bubble := newBubble(options)

	switch {
	case options.Continue:
		if _, err := bubble.loadHistory(); err != nil {
			return err
		}
		bubble.newState(historyState)
	case options.Calendar:
		bubble.newState(loadingState)
	default:
		bubble.newState(searchState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
