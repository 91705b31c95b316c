package history

import (
	"fmt"
	"time"

	"github.com/trakr-cli/trakr/trakt"
)

// SavedScrobble represents a single in-progress playback entry preserved in the
// user's local history, enough to rebuild the media and resume the scrobble.
type SavedScrobble struct {
	Kind      trakt.Kind `json:"kind"`
	Label     string     `json:"label"`
	Title     string     `json:"title"`
	Year      int        `json:"year,omitempty"`
	ShowTitle string     `json:"show_title,omitempty"`
	Season    int        `json:"season,omitempty"`
	Number    int        `json:"number,omitempty"`
	IDs       trakt.IDs  `json:"ids"`
	Progress  float64    `json:"progress"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *SavedScrobble) encode() string {
	return fmt.Sprintf("%s (%s)", s.Label, s.Kind)
}

func (s *SavedScrobble) String() string {
	return fmt.Sprintf("%s : %.0f%%", s.Label, s.Progress)
}

// Media rebuilds the entity the record was saved from.
func (s *SavedScrobble) Media() trakt.Media {
	switch s.Kind {
	case trakt.KindEpisode:
		return &trakt.Episode{
			Season:    s.Season,
			Number:    s.Number,
			Title:     s.Title,
			IDs:       s.IDs,
			ShowTitle: s.ShowTitle,
		}
	case trakt.KindShow:
		return &trakt.Show{Title: s.Title, Year: s.Year, IDs: s.IDs}
	default:
		return &trakt.Movie{Title: s.Title, Year: s.Year, IDs: s.IDs}
	}
}

func newSavedScrobble(media trakt.Media) *SavedScrobble {
	record := &SavedScrobble{
		Kind:  media.Kind(),
		Label: media.Label(),
	}

	switch m := media.(type) {
	case *trakt.Movie:
		record.Title = m.Title
		record.Year = m.Year
		record.IDs = m.IDs
	case *trakt.Episode:
		record.Title = m.Title
		record.Season = m.Season
		record.Number = m.Number
		record.ShowTitle = m.ShowTitle
		record.IDs = m.IDs
	case *trakt.Show:
		record.Title = m.Title
		record.Year = m.Year
		record.IDs = m.IDs
	}

	return record
}
