// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"net/url"
	"strconv"
	"time"
)

// listedMedia is embedded by library entries that carry one entity arm.
type listedMedia struct {
	Movie   *Movie   `json:"movie,omitempty"`
	Show    *Show    `json:"show,omitempty"`
	Episode *Episode `json:"episode,omitempty"`
}

// Media returns the populated entity of the entry, in the same priority order
// search rows use. Episode entries absorb the sibling show's title.
func (l *listedMedia) Media() Media {
	switch {
	case l.Episode != nil:
		if l.Show != nil && l.Episode.ShowTitle == "" {
			l.Episode.ShowTitle = l.Show.Title
		}
		return l.Episode
	case l.Movie != nil:
		return l.Movie
	case l.Show != nil:
		return l.Show
	}
	return nil
}

// WatchlistEntry is one item of the user's watchlist.
type WatchlistEntry struct {
	Rank     int       `json:"rank"`
	ListedAt time.Time `json:"listed_at"`
	Type     string    `json:"type"`
	listedMedia
}

// HistoryEntry is one watch event from the user's history.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	WatchedAt time.Time `json:"watched_at"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	listedMedia
}

// RatingEntry is one rated item from the user's library.
type RatingEntry struct {
	RatedAt time.Time `json:"rated_at"`
	Rating  int       `json:"rating"`
	Type    string    `json:"type"`
	listedMedia
}

// CollectionEntry is one collected item from the user's library. Movie rows
// carry collected_at, show rows last_collected_at.
type CollectionEntry struct {
	CollectedAt     time.Time `json:"collected_at"`
	LastCollectedAt time.Time `json:"last_collected_at"`
	listedMedia
}

// When returns whichever collection timestamp the row carries.
func (e *CollectionEntry) When() time.Time {
	if !e.CollectedAt.IsZero() {
		return e.CollectedAt
	}
	return e.LastCollectedAt
}

// listPath appends the kind segment for narrowed library reads.
func listPath(base string, kind Kind) string {
	if kind == KindAny {
		return base
	}
	return base + "/" + kind.plural()
}

// Watchlist returns the user's watchlist, optionally narrowed to one kind.
// Reads bypass the response cache so fresh writes show up immediately.
func Watchlist(kind Kind) ([]*WatchlistEntry, error) {
	if err := requireAuth(); err != nil {
		return nil, err
	}

	var entries []*WatchlistEntry
	if err := getFresh(listPath("sync/watchlist", kind), nil, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// History returns the user's most recent watch events, newest first. A limit
// of zero serves the API's default page size.
func History(kind Kind, limit int) ([]*HistoryEntry, error) {
	if err := requireAuth(); err != nil {
		return nil, err
	}

	var q url.Values
	if limit > 0 {
		q = url.Values{}
		q.Set("limit", strconv.Itoa(limit))
	}

	var entries []*HistoryEntry
	if err := getFresh(listPath("sync/history", kind), q, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Collection returns the user's collected movies or shows. The endpoint
// serves one kind per request, so an unconstrained read fetches movies and
// shows and concatenates them.
func Collection(kind Kind) ([]*CollectionEntry, error) {
	if err := requireAuth(); err != nil {
		return nil, err
	}

	kinds := []Kind{kind}
	if kind == KindAny {
		kinds = []Kind{KindMovie, KindShow}
	}

	var entries []*CollectionEntry
	for _, k := range kinds {
		var page []*CollectionEntry
		if err := getFresh("sync/collection/"+k.plural(), nil, &page); err != nil {
			return nil, err
		}
		entries = append(entries, page...)
	}

	return entries, nil
}

// PersonalRatings returns everything the user has rated, optionally narrowed
// to one kind.
func PersonalRatings(kind Kind) ([]*RatingEntry, error) {
	if err := requireAuth(); err != nil {
		return nil, err
	}

	var entries []*RatingEntry
	if err := getFresh(listPath("sync/ratings", kind), nil, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
