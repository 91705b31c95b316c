// Package tui implements the interactive full-screen interface.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/history"
	"github.com/trakr-cli/trakr/internal/ui"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/open"
	"github.com/trakr-cli/trakr/query"
	"github.com/trakr-cli/trakr/trakt"
)

// wrapCursor moves the selection past either end of l around to the
// opposite end. Reports whether it consumed the move.
func wrapCursor(l *list.Model, up bool) bool {
	n := len(l.Items())
	if n == 0 {
		return false
	}
	if up && l.Index() == 0 {
		l.Select(n - 1)
		return true
	}
	if !up && l.Index() == n-1 {
		l.Select(0)
		return true
	}
	return false
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process ephemeral UI notifications (captures ui.NotificationMsg and ui.ClearNotificationMsg)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
	case syncQueuedMsg:
		return b, tea.Batch(cmd, ui.NotifySyncFailure())
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			if b.state == watchState {
				b.leaveWatch()
			}
			return b, tea.Quit
		}

		// Input guard: ignore non-priority keys during asynchronous operations.
		if b.busy && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.showHelp) && b.state != searchState && b.state != ratingState && b.state != commentState:
			b.helpC.ShowAll = !b.helpC.ShowAll
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if l := b.stateList(b.state); l != nil && l.FilterState() != list.Unfiltered {
				// Esc clears an active filter before it leaves the screen.
				*l, cmd = l.Update(msg)
				return b, cmd
			}

			switch b.state {
			case searchState:
				b.inputC.SetValue("")
			case ratingState, commentState:
				b.fieldInputC.Blur()
				b.fieldInputC.SetValue("")
			case watchState:
				b.leaveWatch()
				b.scrobbler = nil
			case detailState:
				b.detailRatings = mo.None[*trakt.RatingStats]()
			case episodesState:
				b.selectedEpisodes = make(map[*trakt.Episode]struct{})
			}

			if l := b.stateList(b.state); l != nil {
				l.ResetSelected()
				l.ResetFilter()
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case historyState:
		return b.updateHistory(msg)
	case searchState:
		return b.updateSearch(msg)
	case resultsState:
		return b.updateResults(msg)
	case detailState:
		return b.updateDetail(msg)
	case episodesState:
		return b.updateEpisodes(msg)
	case actionState:
		return b.updateAction(msg)
	case ratingState:
		return b.updateRating(msg)
	case commentState:
		return b.updateComment(msg)
	case watchState:
		return b.updateWatch(msg)
	case calendarState:
		return b.updateCalendar(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			} else {
				return b, tea.Quit
			}
		}
	case []*trakt.SearchResult:
		items := make([]list.Item, len(msg))
		for i, r := range msg {
			items[i] = &listItem{internal: r}
		}

		cmds = append(cmds, b.resultsC.SetItems(items))
		b.resultsC.ResetSelected()
		b.newState(resultsState)
		b.stopLoading()
	case []*trakt.Episode:
		items := make([]list.Item, len(msg))
		for i, e := range msg {
			items[i] = &listItem{internal: e}
		}

		b.selectedEpisodes = make(map[*trakt.Episode]struct{})
		cmds = append(cmds, b.episodesC.SetItems(items))
		b.episodesC.ResetSelected()
		b.newState(episodesState)
		b.stopLoading()
	case []*calendarEntry:
		items := make([]list.Item, len(msg))
		for i, e := range msg {
			items[i] = &listItem{internal: e}
		}

		cmds = append(cmds, b.calendarC.SetItems(items))
		b.calendarC.ResetSelected()
		b.newState(calendarState)
		b.stopLoading()
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if wrapCursor(&b.historyC, true) {
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if wrapCursor(&b.historyC, false) {
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.historyC.SelectedItem() != nil {
				record := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedScrobble)
				if url := trakt.WebURL(record.Media()); url != "" {
					if err := open.Run(url); err != nil {
						b.raiseError(err)
					}
				}
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.historyC.SelectedItem() != nil {
				record := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedScrobble)
				_ = history.Remove(record)
				reload, err := b.loadHistory()
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
				return b, reload
			}
		case bubblesKey.Matches(msg, b.keymap.calendar):
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadCalendar(), b.waitForCalendar(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.selectOne):
			if b.historyC.SelectedItem() != nil {
				record := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedScrobble)
				b.selectedMedia = record.Media()
				b.newState(watchState)
				return b, tea.Batch(b.startWatch(b.selectedMedia, record.Progress), b.spinnerC.Tick)
			}
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			b.startLoading()
			b.newState(loadingState)
			return b, tea.Batch(b.searchMedia(b.inputC.Value()), b.waitForResults(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	b.searchSuggestion = mo.None[string]()
	if viper.GetBool(key.SearchShowQuerySuggestions) && b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		}
	}

	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == 0 {
				b.resultsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == n-1 {
				b.resultsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.calendar):
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadCalendar(), b.waitForCalendar(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.resultsC.SelectedItem() != nil {
				result := b.resultsC.SelectedItem().(*listItem).internal.(*trakt.SearchResult)
				if media := result.Media(); media != nil {
					if url := trakt.WebURL(media); url != "" {
						if err := open.Start(url); err != nil {
							b.raiseError(err)
						}
					}
				}
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.selectOne):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			result := b.resultsC.SelectedItem().(*listItem).internal.(*trakt.SearchResult)
			media := result.Media()
			if media == nil {
				break
			}

			b.selectedMedia = media
			go query.Remember(media.Label(), 2)

			b.detailRatings = mo.None[*trakt.RatingStats]()
			b.newState(detailState)
			b.detailC.SetContent(b.renderDetail())
			b.detailC.GotoTop()
			return b, tea.Batch(b.fetchRatings(media), b.waitForRatings())
		}
	}

	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case ratingsMsg:
		b.detailRatings = msg.stats
		b.detailC.SetContent(b.renderDetail())
		return b, nil
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if url := trakt.WebURL(b.selectedMedia); url != "" {
				if err := open.Start(url); err != nil {
					b.raiseError(err)
				}
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.actionC.SetItems(b.actionItemsFor(b.selectedMedia))
			b.actionC.ResetSelected()
			b.newState(actionState)
			return b, nil
		}
	}

	b.detailC, cmd = b.detailC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateEpisodes(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if wrapCursor(&b.episodesC, true) {
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if wrapCursor(&b.episodesC, false) {
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.episodesC.SelectedItem() != nil {
				episode := b.episodesC.SelectedItem().(*listItem).internal.(*trakt.Episode)
				if url := trakt.WebURL(episode); url != "" {
					if err := open.Start(url); err != nil {
						b.raiseError(err)
					}
				}
			}
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			item := b.episodesC.SelectedItem().(*listItem)
			episode := item.internal.(*trakt.Episode)

			item.toggleMark()
			if item.marked {
				b.selectedEpisodes[episode] = struct{}{}
			} else {
				delete(b.selectedEpisodes, episode)
			}
		case bubblesKey.Matches(msg, b.keymap.selectAll):
			for _, item := range b.episodesC.Items() {
				item := item.(*listItem)
				item.marked = true
				b.selectedEpisodes[item.internal.(*trakt.Episode)] = struct{}{}
			}
		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			for _, item := range b.episodesC.Items() {
				item := item.(*listItem)
				item.marked = false
				delete(b.selectedEpisodes, item.internal.(*trakt.Episode))
			}
		case bubblesKey.Matches(msg, b.keymap.markWatched):
			targets := b.markTargets()
			if len(targets) == 0 {
				break
			}

			note := fmt.Sprintf("Marked %s as watched", targets[0].Label())
			if len(targets) > 1 {
				note = fmt.Sprintf("Marked %d episodes as watched", len(targets))
			}

			return b, b.runVerb(note, func() error {
				for _, episode := range targets {
					if err := trakt.AddToHistory(episode, time.Now()); err != nil {
						return err
					}
				}
				return nil
			})
		case bubblesKey.Matches(msg, b.keymap.watch):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			episode := b.episodesC.SelectedItem().(*listItem).internal.(*trakt.Episode)
			b.selectedMedia = episode
			b.newState(watchState)
			return b, tea.Batch(b.startWatch(episode, 0), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			episode := b.episodesC.SelectedItem().(*listItem).internal.(*trakt.Episode)
			b.selectedMedia = episode
			b.actionC.SetItems(b.actionItemsFor(episode))
			b.actionC.ResetSelected()
			b.newState(actionState)
			return b, nil
		}
	}

	b.episodesC, cmd = b.episodesC.Update(msg)
	return b, cmd
}

// markTargets resolves the episodes a bulk verb applies to: the multi-selection
// when one exists, the cursor row otherwise.
func (b *statefulBubble) markTargets() []*trakt.Episode {
	if len(b.selectedEpisodes) > 0 {
		targets := make([]*trakt.Episode, 0, len(b.selectedEpisodes))
		for episode := range b.selectedEpisodes {
			targets = append(targets, episode)
		}
		return targets
	}

	if b.episodesC.SelectedItem() == nil {
		return nil
	}
	return []*trakt.Episode{b.episodesC.SelectedItem().(*listItem).internal.(*trakt.Episode)}
}

func (b *statefulBubble) updateAction(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.actionC.Items()); n > 0 && b.actionC.Index() == 0 {
				b.actionC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.actionC.Items()); n > 0 && b.actionC.Index() == n-1 {
				b.actionC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.selectOne):
			if b.actionC.SelectedItem() == nil {
				break
			}
			selected := b.actionC.SelectedItem().(*listItem).internal.(*actionItem)
			media := b.selectedMedia

			switch selected.verb {
			case watchAction:
				b.newState(watchState)
				return b, tea.Batch(b.startWatch(media, 0), b.spinnerC.Tick)
			case episodesAction:
				show, ok := media.(*trakt.Show)
				if !ok {
					break
				}
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.fetchEpisodes(show), b.waitForEpisodes(), b.spinnerC.Tick)
			case rateAction:
				b.fieldInputC.Placeholder = "1-10"
				b.fieldInputC.CharLimit = 2
				b.fieldInputC.Prompt = "Rating: "
				b.fieldInputC.SetValue("")
				b.fieldInputC.Focus()
				b.newState(ratingState)
				return b, textinput.Blink
			case commentAction:
				b.fieldInputC.Placeholder = "Share your thoughts (5 words minimum)"
				b.fieldInputC.CharLimit = 500
				b.fieldInputC.Prompt = "Comment: "
				b.fieldInputC.SetValue("")
				b.fieldInputC.Focus()
				b.newState(commentState)
				return b, textinput.Blink
			case watchlistAction:
				return b, b.runVerb(fmt.Sprintf("Added %s to the watchlist", media.Label()), func() error {
					return trakt.AddToWatchlist(media)
				})
			case watchedAction:
				return b, b.runVerb(fmt.Sprintf("Marked %s as watched", media.Label()), func() error {
					return trakt.AddToHistory(media, time.Now())
				})
			case collectAction:
				return b, b.runVerb(fmt.Sprintf("Added %s to the collection", media.Label()), func() error {
					return trakt.AddToCollection(media, time.Now())
				})
			case openAction:
				if err := open.Start(trakt.WebURL(media)); err != nil {
					b.raiseError(err)
				}
			}
		}
	}

	b.actionC, cmd = b.actionC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateRating(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			rating, err := strconv.Atoi(b.fieldInputC.Value())
			if err != nil || rating < 1 || rating > 10 {
				return b, ui.Notify("Ratings run from 1 to 10")
			}

			media := b.selectedMedia
			b.fieldInputC.Blur()
			b.fieldInputC.SetValue("")
			b.previousState()

			return b, b.runVerb(fmt.Sprintf("Rated %s %d/10", media.Label(), rating), func() error {
				return trakt.Rate(media, rating, time.Time{})
			})
		}
	}

	b.fieldInputC, cmd = b.fieldInputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateComment(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			text := b.fieldInputC.Value()
			if len(strings.Fields(text)) < 5 {
				return b, ui.Notify("Comments need at least 5 words")
			}

			media := b.selectedMedia
			b.fieldInputC.Blur()
			b.fieldInputC.SetValue("")
			b.previousState()

			return b, b.runVerb("Comment posted", func() error {
				return trakt.Comment(media, text, false, false)
			})
		}
	}

	b.fieldInputC, cmd = b.fieldInputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scrobbleMsg:
		b.watchStarted = true
		if msg.note != "" {
			return b, ui.Notify(msg.note)
		}
		return b, nil
	case watchDoneMsg:
		label := b.selectedMedia.Label()
		b.scrobbler = nil
		b.previousState()
		return b, ui.Notify(fmt.Sprintf("Scrobbled %s", label))
	case tea.KeyMsg:
		if b.scrobbler == nil {
			break
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b, b.pauseOrResumeWatch()
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			return b, b.seekWatch(5)
		case bubblesKey.Matches(msg, b.keymap.seekBack):
			return b, b.seekWatch(-5)
		case bubblesKey.Matches(msg, b.keymap.finish):
			return b, b.finishWatch()
		case bubblesKey.Matches(msg, b.keymap.replay):
			return b, tea.Batch(b.startWatch(b.selectedMedia, 0), b.spinnerC.Tick)
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.calendarC.Items()); n > 0 && b.calendarC.Index() == 0 {
				b.calendarC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.calendarC.Items()); n > 0 && b.calendarC.Index() == n-1 {
				b.calendarC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.calendarC.SelectedItem() != nil {
				entry := b.calendarC.SelectedItem().(*listItem).internal.(*calendarEntry)
				if url := trakt.WebURL(entry.Episode); url != "" {
					if err := open.Start(url); err != nil {
						b.raiseError(err)
					}
				}
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.selectOne):
			if b.calendarC.SelectedItem() == nil {
				break
			}
			entry := b.calendarC.SelectedItem().(*listItem).internal.(*calendarEntry)
			b.selectedMedia = entry.Episode
			b.actionC.SetItems(b.actionItemsFor(entry.Episode))
			b.actionC.ResetSelected()
			b.newState(actionState)
			return b, nil
		}
	}

	b.calendarC, cmd = b.calendarC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, cmd
}
