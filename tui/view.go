// Package tui implements the interactive full-screen interface.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case historyState:
		output = b.viewHistory()
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = b.viewResults()
	case detailState:
		output = b.viewDetail()
	case episodesState:
		output = b.viewEpisodes()
	case actionState:
		output = b.viewActions()
	case ratingState:
		output = b.viewRating()
	case commentState:
		output = b.viewComment()
	case watchState:
		output = b.viewWatch()
	case calendarState:
		output = b.viewCalendar()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.resultsC.View())
}

func (b *statefulBubble) viewEpisodes() string {
	return listExtraPaddingStyle.Render(b.episodesC.View())
}

func (b *statefulBubble) viewActions() string {
	return listExtraPaddingStyle.Render(b.actionC.View())
}

func (b *statefulBubble) viewCalendar() string {
	return listExtraPaddingStyle.Render(b.calendarC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab ↳ %s", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewDetail() string {
	return paddingStyle.Render(b.detailC.View() + "\n" + b.helpC.View(b.keymap))
}

func (b *statefulBubble) viewRating() string {
	lines := []string{
		style.Title("Rate"),
		"",
		style.Fg(color.Purple)(b.selectedMedia.Label()),
		"",
		b.fieldInputC.View(),
		"",
		style.Faint("(Enter to submit, Esc to cancel)"),
	}

	return b.renderLines(false, lines)
}

func (b *statefulBubble) viewComment() string {
	lines := []string{
		style.Title("Comment"),
		"",
		style.Fg(color.Purple)(b.selectedMedia.Label()),
		"",
		b.fieldInputC.View(),
		"",
		style.Faint("(Enter to post, Esc to cancel)"),
	}

	return b.renderLines(false, lines)
}

func (b *statefulBubble) viewWatch() string {
	var (
		label   string
		percent float64
	)

	if b.selectedMedia != nil {
		label = b.selectedMedia.Label()
	}
	if b.scrobbler != nil {
		percent = b.scrobbler.Progress()
	}

	statusLine := style.Faint(fmt.Sprintf("%.0f%% · Watching", percent))
	if !b.watchStarted {
		statusLine = b.spinnerC.View() + " Checking in with trakt.tv"
	} else if b.watchPaused {
		statusLine = style.Faint(fmt.Sprintf("%.0f%% · Paused", percent))
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Now Watching"),
			"",
			style.Truncate(b.width)(fmt.Sprintf(icon.Get(icon.Progress)+" %s", style.Fg(color.Purple)(label))),
			"",
			b.progressC.ViewAs(percent / 100),
			"",
			style.Truncate(b.width)(statusLine),
		},
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// renderDetail assembles the scrollable summary shown for the selected media:
// headline facts, overview and the community rating once it arrives.
func (b *statefulBubble) renderDetail() string {
	media := b.selectedMedia
	if media == nil {
		return ""
	}

	kindTag := style.Tag(style.Base, kindColor(media.Kind()))(string(media.Kind()))
	lines := []string{
		style.Bold(media.Label()) + " " + kindTag,
		"",
	}

	if facts := mediaFacts(media); len(facts) > 0 {
		lines = append(lines, style.Faint(strings.Join(facts, " • ")), "")
	}

	if overview := mediaOverview(media); overview != "" {
		lines = append(lines, wrap.String(overview, util.Min(b.width, 80)), "")
	}

	if stats, ok := b.detailRatings.Get(); ok {
		lines = append(lines, fmt.Sprintf(
			"%s %.1f (%s)",
			icon.Get(icon.Star),
			stats.Rating,
			util.Quantify(stats.Votes, "vote", "votes"),
		))

		if viper.GetBool(key.TUIShowDistribution) {
			if histogram := renderDistribution(stats.Distribution); histogram != "" {
				lines = append(lines, "", histogram)
			}
		}
	} else if ratingsPending(media) {
		lines = append(lines, style.Faint("Fetching ratings..."))
	}

	if url := trakt.WebURL(media); url != "" {
		lines = append(lines, "", style.Faint(icon.Get(icon.Link)+" "+url))
	}

	return strings.Join(lines, "\n")
}

// ratingsPending reports whether a rating fetch is still expected for the
// media. Rating summaries only exist for movies and shows.
func ratingsPending(media trakt.Media) bool {
	if !viper.GetBool(key.MetadataFetchRatings) {
		return false
	}
	return media.Kind() == trakt.KindMovie || media.Kind() == trakt.KindShow
}

func mediaFacts(media trakt.Media) []string {
	facts := make([]string, 0, 3)

	switch m := media.(type) {
	case *trakt.Movie:
		if m.Runtime > 0 {
			facts = append(facts, fmt.Sprintf("%d min", m.Runtime))
		}
		if m.Released != "" {
			facts = append(facts, "Released "+m.Released)
		}
		if m.Status != "" {
			facts = append(facts, util.Capitalize(m.Status))
		}
	case *trakt.Show:
		if m.Network != "" {
			facts = append(facts, m.Network)
		}
		if m.AiredEpisodes > 0 {
			facts = append(facts, util.Quantify(m.AiredEpisodes, "episode", "episodes"))
		}
		if m.Status != "" {
			facts = append(facts, util.Capitalize(m.Status))
		}
	case *trakt.Episode:
		if !m.FirstAired.IsZero() {
			facts = append(facts, "Aired "+m.FirstAired.Format("02 Jan 2006"))
		}
		if m.Rating > 0 {
			facts = append(facts, fmt.Sprintf("%s %.1f", icon.Get(icon.Star), m.Rating))
		}
	case *trakt.Person:
		if m.Birthday != "" {
			facts = append(facts, "Born "+m.Birthday)
		}
		if m.Birthplace != "" {
			facts = append(facts, m.Birthplace)
		}
	}

	return facts
}

func mediaOverview(media trakt.Media) string {
	switch m := media.(type) {
	case *trakt.Movie:
		return m.Overview
	case *trakt.Show:
		return m.Overview
	case *trakt.Episode:
		return m.Overview
	case *trakt.Person:
		return m.Biography
	}

	return ""
}

// renderDistribution draws a histogram of votes per score, highest score
// first, with bars scaled to the most voted score.
func renderDistribution(distribution map[string]int) string {
	const barWidth = 25

	top := 0
	for _, count := range distribution {
		top = util.Max(top, count)
	}
	if top == 0 {
		return ""
	}

	rows := make([]string, 0, 10)
	for score := 10; score >= 1; score-- {
		count := distribution[strconv.Itoa(score)]
		filled := count * barWidth / top
		bar := strings.Repeat("▇", filled)
		if filled == 0 && count > 0 {
			bar = "▏"
		}
		rows = append(rows, fmt.Sprintf("%2d %s %d", score, style.Fg(style.AccentColor)(bar), count))
	}

	return strings.Join(rows, "\n")
}
