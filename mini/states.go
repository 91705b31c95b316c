// Package mini implements a lightweight, minimalist interface for media search and tracking.
package mini

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/history"
	appsync "github.com/trakr-cli/trakr/internal/sync"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/query"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
	"golang.org/x/exp/slices"
)

type state int

const (
	mediaSearchState state = iota + 1
	mediaSelectState
	actionSelectState
	episodeSelectState
	watchState
	historySelectState
	quitState
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
)

func (a action) String() string {
	switch a {
	case watchAction:
		return "Watch"
	case rateAction:
		return "Rate"
	case watchlistAction:
		return "Add to watchlist"
	case watchedAction:
		return "Mark as watched"
	case collectAction:
		return "Add to collection"
	case commentAction:
		return "Comment"
	}

	return "Unknown"
}

// searchKinds reads the configured search surface, dropping people since no
// tracking verb applies to them here.
func searchKinds() []trakt.Kind {
	var kinds []trakt.Kind
	for _, name := range viper.GetStringSlice(key.SearchDefaultKinds) {
		kind, err := trakt.ParseKind(name)
		if err != nil || kind == trakt.KindPerson {
			continue
		}
		kinds = append(kinds, kind)
	}

	if len(kinds) == 0 {
		kinds = []trakt.Kind{trakt.KindMovie, trakt.KindShow, trakt.KindEpisode}
	}

	return kinds
}

func (m *mini) handleMediaSearchState() error {
	var searchLoop func() error
	title("Search Movies & Shows")

	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return s != ""
		})

		if err != nil {
			return err
		}

		query := in.value

		erase := progress("Searching Query..")
		results, err := trakt.SearchResults(query, searchKinds()...)
		if err != nil {
			erase()
			return err
		}

		results = lo.Filter(results, func(r *trakt.SearchResult, _ int) bool {
			return r.Media() != nil
		})
		max := lo.Min([]int{len(results), viper.GetInt(key.MiniSearchLimit)})
		m.cachedResults[query] = results[:max]
		erase()

		if len(m.cachedResults[query]) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		m.query = query
		m.newState(mediaSelectState)
		return err
	}

	return searchLoop()
}

func (m *mini) handleMediaSelectState() error {
	var err error
	title("Query Results >>")
	b, r, err := menu(m.cachedResults[m.query])
	if err != nil {
		return err
	}

	if quit.eq(b) {
		m.newState(quitState)
		return nil
	}

	m.selectedMedia = r.Media()
	go query.Remember(m.selectedMedia.Label(), 2)
	m.newState(actionSelectState)
	return err
}

func (m *mini) handleActionSelectState() error {
	media := m.selectedMedia

	actions := []action{watchAction, rateAction, watchlistAction, watchedAction, collectAction, commentAction}

	title(fmt.Sprintf("%s >>", media.Label()))
	b, a, err := menu(actions, back)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case back.eq(b):
		m.previousState()
		return nil
	}

	if a == watchAction {
		if media.Kind() == trakt.KindShow {
			m.newState(episodeSelectState)
			return nil
		}

		m.watchQueue = []trakt.Media{media}
		m.resumeProgress = 0
		m.newState(watchState)
		return nil
	}

	if err := m.runQuickAction(a, media); err != nil {
		var syncErr *trakt.SyncError
		if errors.As(err, &syncErr) {
			if appsync.QueueFailure(media.Label(), syncErr.Path, syncErr.Body) == nil {
				fail("Sync failed - queued for background replay")
				m.previousState()
				return nil
			}
		}

		return err
	}

	success(fmt.Sprintf("%s: %s", a, media.Label()))
	m.previousState()
	return nil
}

// runQuickAction performs the one-shot verbs, prompting for whatever extra
// input the verb needs.
func (m *mini) runQuickAction(a action, media trakt.Media) error {
	switch a {
	case rateAction:
		title("Rating (1-10)")
		in, err := getInput(func(s string) bool {
			n, err := strconv.Atoi(s)
			return err == nil && 1 <= n && n <= 10
		})
		if err != nil {
			return err
		}

		return trakt.Rate(media, lo.Must(strconv.Atoi(in.value)), time.Time{})
	case watchlistAction:
		return trakt.AddToWatchlist(media)
	case watchedAction:
		return trakt.AddToHistory(media, time.Now())
	case collectAction:
		return trakt.AddToCollection(media, time.Now())
	case commentAction:
		title("Comment (5 words minimum)")
		in, err := getInput(func(s string) bool {
			return len(strings.Fields(s)) >= 5
		})
		if err != nil {
			return err
		}

		return trakt.Comment(media, in.value, false, false)
	}

	return nil
}

func (m *mini) handleEpisodeSelectState() error {
	show, ok := m.selectedMedia.(*trakt.Show)
	if !ok {
		m.previousState()
		return nil
	}

	episodes, cached := m.cachedEpisodes[show.Label()]
	if !cached {
		erase := progress("Fetching Episodes..")
		seasons, err := show.LoadSeasons()
		erase()
		if err != nil {
			return err
		}

		for _, season := range seasons {
			episodes = append(episodes, season.Episodes...)
		}
		m.cachedEpisodes[show.Label()] = episodes
	}

	if len(episodes) == 0 {
		fail("No episodes found")
		m.previousState()
		return nil
	}

	title(fmt.Sprintf("To specify a range, use: start_number end_number (Episodes: 1-%d)", len(episodes)))
	oneEpisodeInput := regexp.MustCompile(`^\d+$`)
	rangeInput := regexp.MustCompile(`^\d+ \d+$`)
	in, err := getInput(func(s string) bool {
		var err error

		switch {
		case rangeInput.MatchString(s):
			var a, b int64
			{
				l := strings.Split(s, " ")
				a, err = strconv.ParseInt(l[0], 10, 16)
				if err != nil {
					return false
				}

				b, err = strconv.ParseInt(l[1], 10, 16)
				if err != nil {
					return false
				}
			}

			return a < b && 0 < a && int(a) < len(episodes) && int(b) <= len(episodes)
		case oneEpisodeInput.MatchString(s):
			var a int64
			a, err = strconv.ParseInt(s, 10, 16)
			if err != nil {
				return false
			}

			return 0 < a && int(a) <= len(episodes)
		default:
			return s == "q"
		}
	})

	if err != nil {
		return err
	}

	m.watchQueue = nil
	m.resumeProgress = 0

	switch {
	case rangeInput.MatchString(in.value):
		nums := strings.Split(in.value, " ")
		from := lo.Must(strconv.ParseInt(nums[0], 10, 16))
		to := lo.Must(strconv.ParseInt(nums[1], 10, 16))

		for i := from - 1; i < to; i++ {
			m.watchQueue = append(m.watchQueue, episodes[i])
		}
	case oneEpisodeInput.MatchString(in.value):
		num := lo.Must(strconv.ParseInt(in.value, 10, 16))
		m.watchQueue = append(m.watchQueue, episodes[num-1])
	case in.value == "q":
		m.newState(quitState)
		return nil
	}

	m.newState(watchState)

	return nil
}

func (m *mini) handleWatchState() error {
	type controls struct {
		next chan struct{}
		prev chan struct{}
		stop chan struct{}
		err  chan error
	}

	var watchLoop func(trakt.Media, float64, *controls, bool, bool)

	watchLoop = func(media trakt.Media, at float64, c *controls, hasPrev, hasNext bool) {
		util.ClearScreen()
		fmt.Printf("Checking in %s...\n", media.Label())

		scrobbler := trakt.NewScrobbler(media, at)
		if err := scrobbler.Start(); err != nil {
			c.err <- err
			return
		}

		title(fmt.Sprintf("Currently watching %s", media.Label()))

		var options []*bind
		if hasPrev {
			options = append(options, prev)
		}
		if hasNext {
			options = append(options, next)
		}

		options = append(options, finish, update, rewatch, back, search)

		b, _, err := menu([]fmt.Stringer{}, options...)
		if err != nil {
			c.err <- err
			return
		}

		switch b {
		case next, finish:
			if err := scrobbler.Finish(); err != nil {
				c.err <- err
				return
			}
			util.Ignore(func() error { return history.Forget(media) })

			if b == next {
				c.next <- struct{}{}
			} else {
				m.previousState()
				c.stop <- struct{}{}
			}
		case prev:
			m.leaveScrobble(scrobbler, media)
			c.prev <- struct{}{}
		case update:
			title("Progress (0-100)")
			in, err := getInput(func(s string) bool {
				p, err := strconv.ParseFloat(s, 64)
				return err == nil && 0 <= p && p <= 100
			})
			if err != nil {
				c.err <- err
				return
			}

			watchLoop(media, lo.Must(strconv.ParseFloat(in.value, 64)), c, hasPrev, hasNext)
		case rewatch:
			watchLoop(media, 0, c, hasPrev, hasNext)
		case back:
			m.leaveScrobble(scrobbler, media)
			m.previousState()
			c.stop <- struct{}{}
		case search:
			m.leaveScrobble(scrobbler, media)
			m.newState(mediaSearchState)
			c.stop <- struct{}{}
		case quit:
			m.leaveScrobble(scrobbler, media)
			m.newState(quitState)
			c.stop <- struct{}{}
		}
	}

	c := &controls{
		next: make(chan struct{}),
		prev: make(chan struct{}),
		stop: make(chan struct{}),
		err:  make(chan error),
	}

	var i int

	for {
		var (
			hasPrev = i > 0
			hasNext = i+1 < len(m.watchQueue)
		)

		at := m.resumeProgress
		m.resumeProgress = 0

		go watchLoop(m.watchQueue[i], at, c, hasPrev, hasNext)

		select {
		case <-c.next:
			i++
		case <-c.prev:
			i--
		case <-c.stop:
			return nil
		case err := <-c.err:
			return err
		}
	}
}

// leaveScrobble pauses the active check-in and preserves its progress so a
// later session can pick it back up.
func (m *mini) leaveScrobble(scrobbler *trakt.Scrobbler, media trakt.Media) {
	if err := scrobbler.Pause(); err != nil {
		fail(err.Error())
	}

	if viper.GetBool(key.ScrobbleSaveProgress) {
		util.Ignore(func() error { return history.Save(media, scrobbler.Progress()) })
	}
}

func (m *mini) handleHistorySelectState() error {
	h, err := history.Get()
	if err != nil {
		return err
	}

	saved := lo.Values(h)
	if len(saved) == 0 {
		fail("Nothing to continue")
		m.newState(mediaSearchState)
		return nil
	}

	slices.SortFunc(saved, func(a, b *history.SavedScrobble) int {
		return strings.Compare(a.Label, b.Label)
	})

	title("Continue Watching >>")
	b, record, err := menu(saved)
	if err != nil {
		return err
	}

	switch b {
	case quit:
		m.newState(quitState)
		return nil
	}

	media := record.Media()
	m.watchQueue = []trakt.Media{media}
	m.resumeProgress = record.Progress

	// Resuming an episode queues the rest of the show behind it.
	if episode, ok := media.(*trakt.Episode); ok && episode.ShowTitle != "" {
		erase := progress("Fetching Episodes..")
		m.watchQueue = append(m.watchQueue, m.episodesAfter(episode)...)
		erase()
	}

	m.newState(watchState)
	return nil
}

// episodesAfter looks the episode's show up and returns everything airing
// after it, in order. Lookup failures just leave the queue at one entry.
func (m *mini) episodesAfter(episode *trakt.Episode) []trakt.Media {
	show, err := trakt.FindShow(episode.ShowTitle)
	if err != nil {
		return nil
	}

	seasons, err := show.LoadSeasons()
	if err != nil {
		return nil
	}

	var rest []trakt.Media
	for _, season := range seasons {
		for _, e := range season.Episodes {
			if season.Number > episode.Season ||
				(season.Number == episode.Season && e.Number > episode.Number) {
				rest = append(rest, e)
			}
		}
	}

	return rest
}
