// Package tui implements the interactive full-screen interface.
package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/history"
	appsync "github.com/trakr-cli/trakr/internal/sync"
	"github.com/trakr-cli/trakr/internal/ui"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/log"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

// ratingsMsg carries the community rating summary for the detail view.
type ratingsMsg struct {
	stats mo.Option[*trakt.RatingStats]
}

// syncQueuedMsg reports that a failed library write was queued for background replay.
type syncQueuedMsg struct{}

// scrobbleMsg reports a completed check-in transition.
type scrobbleMsg struct {
	note string
}

// watchDoneMsg reports that the active check-in was finished.
type watchDoneMsg struct{}

// searchKinds reads the configured search surface.
func searchKinds() []trakt.Kind {
	var kinds []trakt.Kind
	for _, name := range viper.GetStringSlice(key.SearchDefaultKinds) {
		kind, err := trakt.ParseKind(name)
		if err != nil {
			continue
		}
		kinds = append(kinds, kind)
	}

	return kinds
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].Label, entries[j].Label) < 0
	})

	var items []list.Item
	for _, e := range entries {
		items = append(items, &listItem{
			internal: e,
		})
	}

	return b.historyC.SetItems(items), nil
}

func (b *statefulBubble) searchMedia(query string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching for " + query)
		b.progressStatus = fmt.Sprintf("Searching for %s", style.Fg(color.Purple)(query))

		results, err := trakt.SearchResults(query, searchKinds()...)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		results = lo.Filter(results, func(r *trakt.SearchResult, _ int) bool {
			return r.Media() != nil
		})

		log.Infof("found %s", util.Quantify(len(results), "result", "results"))
		b.foundResultsChannel <- results
		return nil
	}
}

func (b *statefulBubble) waitForResults() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.foundResultsChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) fetchEpisodes(show *trakt.Show) tea.Cmd {
	return func() tea.Msg {
		log.Info("loading episodes of " + show.Title)
		b.progressStatus = fmt.Sprintf("Loading episodes of %s", style.Fg(color.Purple)(show.Title))

		seasons, err := show.LoadSeasons()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		var episodes []*trakt.Episode
		for _, season := range seasons {
			episodes = append(episodes, season.Episodes...)
		}

		sort.Slice(episodes, func(i, j int) bool {
			if episodes[i].Season != episodes[j].Season {
				return episodes[i].Season < episodes[j].Season
			}
			return episodes[i].Number < episodes[j].Number
		})

		log.Infof("found %s", util.Quantify(len(episodes), "episode", "episodes"))
		b.foundEpisodesChannel <- episodes
		return nil
	}
}

func (b *statefulBubble) waitForEpisodes() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.foundEpisodesChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) loadCalendar() tea.Cmd {
	return func() tea.Msg {
		span := trakt.Span{Days: viper.GetInt(key.CalendarDefaultDays)}

		fetch := trakt.ShowCalendar
		if viper.GetBool(key.CalendarPersonal) && trakt.Authenticated() {
			fetch = trakt.MyShowCalendar
		}

		log.Info("loading the upcoming episodes calendar")
		b.progressStatus = "Loading calendar"

		shows, err := fetch(span)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		// Calendar shows come pruned to the single airing episode each.
		var entries []*calendarEntry
		for _, show := range shows {
			for _, season := range show.Seasons {
				for _, episode := range season.Episodes {
					entries = append(entries, &calendarEntry{episode})
				}
			}
		}

		log.Infof("found %s", util.Quantify(len(entries), "airing", "airings"))
		b.calendarChannel <- entries
		return nil
	}
}

func (b *statefulBubble) waitForCalendar() tea.Cmd {
	return func() tea.Msg {
		select {
		case entries := <-b.calendarChannel:
			return entries
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) fetchRatings(media trakt.Media) tea.Cmd {
	return func() tea.Msg {
		b.ratingsChannel <- trakt.RatingSummary(media)
		return nil
	}
}

func (b *statefulBubble) waitForRatings() tea.Cmd {
	return func() tea.Msg {
		return ratingsMsg{stats: <-b.ratingsChannel}
	}
}

// runVerb executes a library write off the UI loop. Failed sync writes are
// queued for background replay instead of surfacing an error screen.
func (b *statefulBubble) runVerb(note string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			var syncErr *trakt.SyncError
			if errors.As(err, &syncErr) {
				label := "library write"
				if b.selectedMedia != nil {
					label = b.selectedMedia.Label()
				}

				if appsync.QueueFailure(label, syncErr.Path, syncErr.Body) == nil {
					log.Warn("queued failed write to " + syncErr.Path)
					return syncQueuedMsg{}
				}
			}

			log.Error(err)
			return err
		}

		return ui.NotificationMsg{Text: note}
	}
}

func (b *statefulBubble) startWatch(media trakt.Media, at float64) tea.Cmd {
	b.scrobbler = trakt.NewScrobbler(media, at)
	b.watchPaused = false
	b.watchStarted = false

	return func() tea.Msg {
		if err := b.scrobbler.Start(); err != nil {
			log.Error(err)
			return err
		}
		return scrobbleMsg{note: "Checked in"}
	}
}

func (b *statefulBubble) pauseOrResumeWatch() tea.Cmd {
	return func() tea.Msg {
		if b.watchPaused {
			if err := b.scrobbler.Start(); err != nil {
				return err
			}
			b.watchPaused = false
			return scrobbleMsg{note: "Resumed"}
		}

		if err := b.scrobbler.Pause(); err != nil {
			return err
		}
		b.watchPaused = true
		b.saveWatchProgress()
		return scrobbleMsg{note: "Paused"}
	}
}

func (b *statefulBubble) seekWatch(delta float64) tea.Cmd {
	return func() tea.Msg {
		p := util.Max(util.Min(b.scrobbler.Progress()+delta, 100), 0)
		if err := b.scrobbler.Update(p); err != nil {
			return err
		}
		b.watchPaused = false
		return scrobbleMsg{}
	}
}

func (b *statefulBubble) finishWatch() tea.Cmd {
	return func() tea.Msg {
		if err := b.scrobbler.Finish(); err != nil {
			log.Error(err)
			return err
		}

		util.Ignore(func() error { return history.Forget(b.selectedMedia) })
		return watchDoneMsg{}
	}
}

// leaveWatch pauses the active check-in in the background, preserving its
// progress for a later resume.
func (b *statefulBubble) leaveWatch() {
	scrobbler := b.scrobbler
	media := b.selectedMedia
	if scrobbler == nil || !b.watchStarted {
		return
	}

	go func() {
		_ = scrobbler.Pause()
		if viper.GetBool(key.ScrobbleSaveProgress) {
			_ = history.Save(media, scrobbler.Progress())
		}
	}()
}

func (b *statefulBubble) saveWatchProgress() {
	if viper.GetBool(key.ScrobbleSaveProgress) && b.selectedMedia != nil {
		_ = history.Save(b.selectedMedia, b.scrobbler.Progress())
	}
}
