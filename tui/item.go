// Package tui implements the interactive full-screen interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/trakr-cli/trakr/history"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
)

// action is a tracking verb offered for the selected media.
type action int

const (
	watchAction action = iota + 1
	rateAction
	watchlistAction
	watchedAction
	collectAction
	commentAction
	episodesAction
	openAction
)

// actionItem is a single verb row in the action menu.
type actionItem struct {
	verb action
	name string
	hint string
}

// calendarEntry distinguishes calendar rows from plain episode rows in lists.
type calendarEntry struct {
	*trakt.Episode
}

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case *trakt.Episode:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
	default:
		return ""
	}
}

func kindColor(kind trakt.Kind) lipgloss.Color {
	switch kind {
	case trakt.KindMovie:
		return style.Blue
	case trakt.KindShow:
		return style.Green
	case trakt.KindEpisode:
		return style.Peach
	default:
		return style.Subtext
	}
}

// episodeCode renders the conventional SSxEE form without the show prefix.
func episodeCode(e *trakt.Episode) string {
	code := fmt.Sprintf("%dx%02d", e.Season, e.Number)
	if e.Title != "" {
		code += " " + e.Title
	}
	return code
}

// Title is the item's first display line.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *trakt.SearchResult:
		if media := e.Media(); media != nil {
			title = media.Label()
		} else {
			title = e.Type
		}
	case *calendarEntry:
		title = e.ShowTitle
	case *trakt.Episode:
		title = episodeCode(e)
	case *history.SavedScrobble:
		title = e.Label
	case *actionItem:
		title = e.name
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *trakt.SearchResult:
		media := e.Media()
		if media == nil {
			return
		}

		var parts []string
		parts = append(parts, lipgloss.NewStyle().Foreground(kindColor(media.Kind())).Render(string(media.Kind())))

		switch m := media.(type) {
		case *trakt.Movie:
			if m.Runtime > 0 {
				parts = append(parts, style.Faint(fmt.Sprintf("%d min", m.Runtime)))
			}
		case *trakt.Show:
			if m.Network != "" {
				parts = append(parts, style.Faint(m.Network))
			}
			if m.AiredEpisodes > 0 {
				parts = append(parts, style.Faint(fmt.Sprintf("%d eps", m.AiredEpisodes)))
			}
		case *trakt.Episode:
			if m.Rating > 0 {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(fmt.Sprintf("★ %.1f", m.Rating)))
			}
		}

		description = strings.Join(parts, " • ")
	case *calendarEntry:
		parts := []string{episodeCode(e.Episode)}
		if !e.AiredAt.IsZero() {
			parts = append(parts, style.Faint(e.AiredAt.Format("Mon, 02 Jan 15:04")))
		}
		description = strings.Join(parts, " • ")
	case *trakt.Episode:
		if !e.FirstAired.IsZero() {
			description = style.Faint(e.FirstAired.Format("02 Jan 2006"))
		}
	case *history.SavedScrobble:
		progress := lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("%.0f%% watched", e.Progress))
		if e.Progress >= trakt.CompletionThreshold {
			progress = lipgloss.NewStyle().Foreground(style.Green).Render("Watched")
		}
		description = progress
	case *actionItem:
		description = e.hint
	case string:
		description = ""
	}

	return
}

// FilterValue feeds the list's fuzzy filter.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *trakt.SearchResult:
		if media := e.Media(); media != nil {
			return media.Label()
		}
		return e.Type
	case *calendarEntry:
		return e.ShowTitle + " " + episodeCode(e.Episode)
	case *trakt.Episode:
		return episodeCode(e)
	case *history.SavedScrobble:
		return e.Label
	case *actionItem:
		return e.name
	case string:
		return e
	default:
		return ""
	}
}
