// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"encoding/json"
	"time"
)

// reviewThreshold is the comment length beyond which the API only accepts reviews.
const reviewThreshold = 200

// SyncError wraps a failed write together with the exact request it attempted,
// so the offline queue can capture and replay it verbatim later.
type SyncError struct {
	Path string
	Body json.RawMessage
	Err  error
}

func (e *SyncError) Error() string { return e.Err.Error() }

func (e *SyncError) Unwrap() error { return e.Err }

// syncPost submits a library write, wrapping failures with the marshaled
// payload for deferred replay.
func syncPost(path string, body map[string]any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	if err := post(path, json.RawMessage(raw), nil); err != nil {
		return &SyncError{Path: path, Body: raw, Err: err}
	}

	return nil
}

// pluralBody wraps a payload entry in the plural container sync endpoints
// expect, e.g. {"movies": [entry]}.
func pluralBody(media Media, entry map[string]any) map[string]any {
	return map[string]any{media.Kind().plural(): []any{entry}}
}

// Comment posts a comment on a movie, show or episode. Comments longer than
// 200 characters are automatically promoted to reviews, matching the API's
// acceptance rule.
func Comment(media Media, text string, spoiler, review bool) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if !review && len(text) > reviewThreshold {
		review = true
	}

	body := map[string]any{
		"comment": text,
		"spoiler": spoiler,
		"review":  review,
	}
	for k, v := range media.container() {
		body[k] = v
	}

	return post("comments", body, nil)
}

// Rate submits a rating from 1 to 10. A zero ratedAt means now.
func Rate(media Media, rating int, ratedAt time.Time) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if rating < 1 || rating > 10 {
		return ErrInvalidRating
	}
	if ratedAt.IsZero() {
		ratedAt = time.Now()
	}

	entry := map[string]any{
		"ids":      media.ids(),
		"rating":   rating,
		"rated_at": ratedAt.UTC().Format(time.RFC3339),
	}

	return syncPost("sync/ratings", pluralBody(media, entry))
}

// AddToHistory marks media as watched. A zero watchedAt means now.
func AddToHistory(media Media, watchedAt time.Time) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if watchedAt.IsZero() {
		watchedAt = time.Now()
	}

	entry := map[string]any{
		"ids":        media.ids(),
		"watched_at": watchedAt.UTC().Format(time.RFC3339),
	}

	return syncPost("sync/history", pluralBody(media, entry))
}

// RemoveFromHistory removes every watch of media from the user's history.
func RemoveFromHistory(media Media) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return syncPost("sync/history/remove", pluralBody(media, map[string]any{"ids": media.ids()}))
}

// AddToWatchlist puts media on the user's watchlist.
func AddToWatchlist(media Media) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return syncPost("sync/watchlist", pluralBody(media, map[string]any{"ids": media.ids()}))
}

// RemoveFromWatchlist takes media off the user's watchlist.
func RemoveFromWatchlist(media Media) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return syncPost("sync/watchlist/remove", pluralBody(media, map[string]any{"ids": media.ids()}))
}

// AddToCollection records media as owned. A zero collectedAt means now.
func AddToCollection(media Media, collectedAt time.Time) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	entry := map[string]any{
		"ids":          media.ids(),
		"collected_at": collectedAt.UTC().Format(time.RFC3339),
	}

	return syncPost("sync/collection", pluralBody(media, entry))
}

// RemoveFromCollection removes media from the user's collection.
func RemoveFromCollection(media Media) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return syncPost("sync/collection/remove", pluralBody(media, map[string]any{"ids": media.ids()}))
}
