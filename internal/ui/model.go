// Package ui carries the shared state and rendering for transient terminal notifications.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the currently displayed non-blocking terminal alert, if any.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg raises a transient alert when it reaches the model.
type NotificationMsg struct {
	Text string
}

// ClearNotificationMsg resets the visible notification.
type ClearNotificationMsg struct{}

// Notify returns a tea.Cmd that raises a transient alert with the given text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// NotifySyncFailure returns a tea.Cmd to trigger an offline-queue fallback alert.
func NotifySyncFailure() tea.Cmd {
	return Notify("Sync failed - queued for background replay")
}

// ClearNotification returns a tea.Cmd that wipes the notification after a fixed delay.
func ClearNotification() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return ClearNotificationMsg{}
	})
}

// Update applies notification messages to the model.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = msg.Text
		m.notifiedAt = time.Now()
		return ClearNotification()
	case ClearNotificationMsg:
		m.notification = ""
		return nil
	}
	return nil
}

// View renders the active notification line, or nothing.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := "\033[90m" + m.notification + "\033[0m"

	if len(lines) > 0 {
		lines[len(lines)-1] = lines[len(lines)-1] + "  " + notifier
	}
	return strings.Join(lines, "\n")
}
