// Package history tracks and persists in-progress playback state, so a paused
// scrobble can be resumed or finished in a later session.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/where"
)

// cacher is the disk-backed store of saved scrobble records.
var cacher = gache.New[map[string]*SavedScrobble](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of in-progress playback records from the persistent store.
func Get() (map[string]*SavedScrobble, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedScrobble), nil
	}
	return cached, nil
}

// Save persists the playback progress of a movie or episode to the history registry.
func Save(media trakt.Media, progress float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedScrobble(media)

	// Keep the maximum observed progress to prevent regressions on re-watch.
	if existing, exists := saved[record.encode()]; exists {
		if progress < existing.Progress {
			progress = existing.Progress
		}
	}
	record.Progress = progress
	record.UpdatedAt = time.Now()

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Latest returns the most recently updated record, if any exist.
func Latest() (*SavedScrobble, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	var latest *SavedScrobble
	for _, record := range saved {
		if latest == nil || record.UpdatedAt.After(latest.UpdatedAt) {
			latest = record
		}
	}

	return latest, nil
}

// Forget drops the saved record for the given media, if one exists.
func Forget(media trakt.Media) error {
	return Remove(newSavedScrobble(media))
}

// Remove permanently deletes a playback record from the history registry.
// Finishing a scrobble removes its record here.
func Remove(record *SavedScrobble) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}
