// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// Span is the date window a calendar covers. The zero value means the next
// seven days starting today.
type Span struct {
	Start time.Time
	Days  int
}

// orDefaults fills the default window for unset fields.
func (s Span) orDefaults() Span {
	if s.Start.IsZero() {
		s.Start = time.Now()
	}
	if s.Days <= 0 {
		s.Days = 7
	}
	return s
}

// path renders the date segment calendars append to their endpoint.
func (s Span) path(endpoint string) string {
	s = s.orDefaults()
	return fmt.Sprintf("%s/%s/%d", endpoint, s.Start.Format("2006-01-02"), s.Days)
}

// showEntry is the wire shape of one row of a TV calendar response.
type showEntry struct {
	FirstAired time.Time `json:"first_aired"`
	Episode    *Episode  `json:"episode"`
	Show       *Show     `json:"show"`
}

// movieEntry is the wire shape of one row of a movie calendar response.
type movieEntry struct {
	Released string `json:"released"`
	Movie    *Movie `json:"movie"`
}

// showCalendar fetches a TV calendar endpoint and assembles its rows.
func showCalendar(endpoint string, span Span, personal bool) ([]*Show, error) {
	if personal {
		if err := requireAuth(); err != nil {
			return nil, err
		}
	}

	var entries []showEntry
	if err := get(span.path(endpoint), nil, &entries); err != nil {
		return nil, err
	}

	return buildShows(entries)
}

// buildShows turns raw calendar rows into shows pruned down to the single
// airing each row describes. A row whose episode's season is absent from the
// show's season listing is dropped. The result is sorted by airing time, rows
// that tie keep their response order.
func buildShows(entries []showEntry) ([]*Show, error) {
	shows := make([]*Show, 0, len(entries))

	for _, entry := range entries {
		if entry.Show == nil || entry.Episode == nil {
			continue
		}

		show, episode := entry.Show, entry.Episode
		episode.AiredAt = entry.FirstAired
		episode.ShowTitle = show.Title

		seasons, err := show.LoadSeasons()
		if err != nil {
			return nil, err
		}

		var matched bool
		for _, season := range seasons {
			if season.Number != episode.Season {
				continue
			}

			// Copy before pruning: the season cache hands out shared records.
			pruned := *season
			pruned.Episodes = []*Episode{episode}
			show.Seasons = []*Season{&pruned}
			matched = true
			break
		}

		if matched {
			shows = append(shows, show)
		}
	}

	slices.SortStableFunc(shows, func(a, b *Show) int {
		return a.Seasons[0].Episodes[0].AiredAt.Compare(b.Seasons[0].Episodes[0].AiredAt)
	})

	return shows, nil
}

// movieCalendar fetches a movie calendar endpoint and assembles its rows.
func movieCalendar(endpoint string, span Span, personal bool) ([]*Movie, error) {
	if personal {
		if err := requireAuth(); err != nil {
			return nil, err
		}
	}

	var entries []movieEntry
	if err := get(span.path(endpoint), nil, &entries); err != nil {
		return nil, err
	}

	return buildMovies(entries), nil
}

// buildMovies keeps every row, stamping the row-level release date onto the
// movie. The result is sorted by release date, ties keep their response order.
func buildMovies(entries []movieEntry) []*Movie {
	movies := make([]*Movie, 0, len(entries))

	for _, entry := range entries {
		movie := entry.Movie
		if movie == nil {
			movie = &Movie{}
		}
		movie.Released = entry.Released
		movies = append(movies, movie)
	}

	slices.SortStableFunc(movies, func(a, b *Movie) int {
		return strings.Compare(a.Released, b.Released)
	})

	return movies
}

// ShowCalendar returns every show airing inside the window.
func ShowCalendar(span Span) ([]*Show, error) {
	return showCalendar("calendars/all/shows", span, false)
}

// MyShowCalendar returns the shows the logged-in user watches airing inside the window.
func MyShowCalendar(span Span) ([]*Show, error) {
	return showCalendar("calendars/my/shows", span, true)
}

// PremiereCalendar returns brand new shows premiering inside the window.
func PremiereCalendar(span Span) ([]*Show, error) {
	return showCalendar("calendars/all/shows/new", span, false)
}

// MyPremiereCalendar returns brand new shows the logged-in user watches premiering inside the window.
func MyPremiereCalendar(span Span) ([]*Show, error) {
	return showCalendar("calendars/my/shows/new", span, true)
}

// SeasonPremiereCalendar returns season premieres airing inside the window.
func SeasonPremiereCalendar(span Span) ([]*Show, error) {
	return showCalendar("calendars/all/shows/premieres", span, false)
}

// MySeasonPremiereCalendar returns season premieres the logged-in user watches airing inside the window.
func MySeasonPremiereCalendar(span Span) ([]*Show, error) {
	return showCalendar("calendars/my/shows/premieres", span, true)
}

// MovieCalendar returns every movie released inside the window.
func MovieCalendar(span Span) ([]*Movie, error) {
	return movieCalendar("calendars/all/movies", span, false)
}

// MyMovieCalendar returns the movies on the logged-in user's lists released inside the window.
func MyMovieCalendar(span Span) ([]*Movie, error) {
	return movieCalendar("calendars/my/movies", span, true)
}

// DVDCalendar returns every movie with a disc release inside the window.
func DVDCalendar(span Span) ([]*Movie, error) {
	return movieCalendar("calendars/all/dvd", span, false)
}

// MyDVDCalendar returns the movies on the logged-in user's lists with a disc release inside the window.
func MyDVDCalendar(span Span) ([]*Movie, error) {
	return movieCalendar("calendars/my/dvd", span, true)
}
