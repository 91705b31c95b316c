// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"github.com/trakr-cli/trakr/constant"
)

// CompletionThreshold is the progress percentage at which playback counts as
// fully watched. Finish promotes anything below it to 100 before stopping.
const CompletionThreshold = 80.0

// Scrobbler reports playback progress for a movie or episode. It is a small
// state machine driven by the caller: Start when playback begins or resumes,
// Pause when it pauses, Stop or Finish when it ends. Creating a Scrobbler
// performs no request.
type Scrobbler struct {
	media    Media
	progress float64
	version  string
	date     string
}

// NewScrobbler returns a scrobbler for media positioned at the given progress
// percentage.
func NewScrobbler(media Media, progress float64) *Scrobbler {
	return &Scrobbler{
		media:    media,
		progress: progress,
		version:  constant.Version,
		date:     constant.BuildDate,
	}
}

// WithApp overrides the media center version and build date reported alongside
// each scrobble.
func (s *Scrobbler) WithApp(version, date string) *Scrobbler {
	s.version = version
	s.date = date
	return s
}

// Progress returns the current playback percentage.
func (s *Scrobbler) Progress() float64 {
	return s.progress
}

// Start reports that playback began or resumed.
func (s *Scrobbler) Start() error {
	return s.send("scrobble/start")
}

// Pause reports that playback paused at the current progress.
func (s *Scrobbler) Pause() error {
	return s.send("scrobble/pause")
}

// Stop reports that playback stopped at the current progress. The API counts
// the item as watched when progress is high enough.
func (s *Scrobbler) Stop() error {
	return s.send("scrobble/stop")
}

// Update moves playback to a new progress percentage and reports it as watching.
func (s *Scrobbler) Update(progress float64) error {
	s.progress = progress
	return s.Start()
}

// Finish closes the scrobble, promoting progress below the completion
// threshold to 100 first: a deliberate finish counts as fully watched even
// when playback was cut short.
func (s *Scrobbler) Finish() error {
	if s.progress < CompletionThreshold {
		s.progress = 100
	}
	return s.Stop()
}

func (s *Scrobbler) send(path string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	body := map[string]any{
		"progress":    s.progress,
		"app_version": s.version,
		"app_date":    s.date,
	}
	for k, v := range s.media.container() {
		body[k] = v
	}

	return post(path, body, nil)
}

// Session runs fn inside a guarded scrobble: Start fires on entry and Finish
// on every exit path, so an error or panic in fn still closes the scrobble.
func Session(media Media, progress float64, fn func(*Scrobbler) error) (err error) {
	scrobbler := NewScrobbler(media, progress)
	if err := scrobbler.Start(); err != nil {
		return err
	}

	defer func() {
		if finishErr := scrobbler.Finish(); finishErr != nil && err == nil {
			err = finishErr
		}
	}()

	return fn(scrobbler)
}
