package trakt

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// scrobbleRecorder keeps every scrobble call in arrival order.
type scrobbleRecorder struct {
	paths      []string
	progresses []float64
	bodies     []map[string]any
}

func (s *scrobbleRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)
	s.paths = append(s.paths, r.URL.Path)
	s.bodies = append(s.bodies, body)

	progress, _ := body["progress"].(float64)
	s.progresses = append(s.progresses, progress)

	w.WriteHeader(http.StatusCreated)
}

func TestScrobblerLifecycle(t *testing.T) {
	Convey("Scrobbler lifecycle", t, func() {
		recorder := &scrobbleRecorder{}

		withServer(recorder, func() {
			scrobbler := NewScrobbler(testEpisode(), 10)

			Convey("Creating a scrobbler performs no request", func() {
				So(recorder.paths, ShouldBeEmpty)
				So(scrobbler.Progress(), ShouldEqual, 10)
			})

			Convey("Start, pause and stop hit their endpoints with the media attached", func() {
				So(scrobbler.Start(), ShouldBeNil)
				So(scrobbler.Pause(), ShouldBeNil)
				So(scrobbler.Stop(), ShouldBeNil)

				So(recorder.paths, ShouldResemble, []string{"/scrobble/start", "/scrobble/pause", "/scrobble/stop"})
				So(recorder.bodies[0]["episode"], ShouldNotBeNil)
				So(recorder.bodies[0]["show"], ShouldNotBeNil)
			})

			Convey("Update moves progress and reports watching", func() {
				So(scrobbler.Update(42.5), ShouldBeNil)

				So(recorder.paths, ShouldResemble, []string{"/scrobble/start"})
				So(recorder.progresses[0], ShouldEqual, 42.5)
				So(scrobbler.Progress(), ShouldEqual, 42.5)
			})
		})
	})
}

func TestScrobblerFinish(t *testing.T) {
	Convey("Finish promotes short playback to fully watched", t, func() {
		cases := []struct {
			progress float64
			reported float64
		}{
			{progress: 50, reported: 100},
			{progress: 79.9, reported: 100},
			{progress: 80, reported: 80},
			{progress: 85, reported: 85},
		}

		for _, c := range cases {
			Convey(fmt.Sprintf("Finishing at %v%% reports %v%%", c.progress, c.reported), func() {
				recorder := &scrobbleRecorder{}

				withServer(recorder, func() {
					scrobbler := NewScrobbler(testMovie(), c.progress)
					So(scrobbler.Finish(), ShouldBeNil)
				})

				So(recorder.paths, ShouldResemble, []string{"/scrobble/stop"})
				So(recorder.progresses[0], ShouldEqual, c.reported)
			})
		}
	})
}

func TestScrobblerApp(t *testing.T) {
	Convey("WithApp overrides the reported media center build", t, func() {
		recorder := &scrobbleRecorder{}

		withServer(recorder, func() {
			scrobbler := NewScrobbler(testMovie(), 5).WithApp("9.9.9", "2026-08-01")
			So(scrobbler.Start(), ShouldBeNil)
		})

		So(recorder.bodies[0]["app_version"], ShouldEqual, "9.9.9")
		So(recorder.bodies[0]["app_date"], ShouldEqual, "2026-08-01")
	})
}

func TestSession(t *testing.T) {
	Convey("Session guards a scrobble around fn", t, func() {
		Convey("Start fires on entry and Finish on exit", func() {
			recorder := &scrobbleRecorder{}

			withServer(recorder, func() {
				err := Session(testMovie(), 20, func(s *Scrobbler) error {
					return s.Update(64)
				})
				So(err, ShouldBeNil)
			})

			So(recorder.paths, ShouldResemble, []string{"/scrobble/start", "/scrobble/start", "/scrobble/stop"})

			Convey("An early exit still counts as fully watched", func() {
				So(recorder.progresses[2], ShouldEqual, 100)
			})
		})

		Convey("Finish still fires when fn fails, keeping fn's error", func() {
			recorder := &scrobbleRecorder{}
			boom := errors.New("playback interrupted")

			withServer(recorder, func() {
				err := Session(testMovie(), 20, func(s *Scrobbler) error {
					return boom
				})
				So(err, ShouldEqual, boom)
			})

			So(recorder.paths, ShouldResemble, []string{"/scrobble/start", "/scrobble/stop"})
		})
	})
}

func TestScrobblerRequiresAuth(t *testing.T) {
	Convey("Scrobbling fails before any request without a session", t, func() {
		recorder := &scrobbleRecorder{}

		withoutTokens(func() {
			withServer(recorder, func() {
				scrobbler := NewScrobbler(testMovie(), 30)
				So(scrobbler.Start(), ShouldEqual, ErrNotAuthenticated)
			})
		})

		So(recorder.paths, ShouldBeEmpty)
	})
}
