package trakt

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWatchlist(t *testing.T) {
	Convey("Watchlist reads", t, func() {
		var path string

		mux := http.NewServeMux()
		mux.HandleFunc("/sync/watchlist/", func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			fmt.Fprint(w, `[
				{"rank": 1, "type": "show", "show": {"title": "Severance", "ids": {"slug": "severance"}}}
			]`)
		})

		withServer(mux, func() {
			entries, err := Watchlist(KindShow)
			So(err, ShouldBeNil)

			So(path, ShouldEqual, "/sync/watchlist/shows")
			So(len(entries), ShouldEqual, 1)
			So(entries[0].Media().Label(), ShouldEqual, "Severance")
		})
	})
}

func TestHistoryRead(t *testing.T) {
	Convey("History reads", t, func() {
		var limit string

		mux := http.NewServeMux()
		mux.HandleFunc("/sync/history", func(w http.ResponseWriter, r *http.Request) {
			limit = r.URL.Query().Get("limit")
			fmt.Fprint(w, `[
				{
					"id": 9001, "watched_at": "2026-02-02T22:00:00.000Z", "action": "scrobble", "type": "episode",
					"episode": {"season": 1, "number": 4, "title": "The You You Are", "ids": {"trakt": 14}},
					"show": {"title": "Severance", "ids": {"slug": "severance"}}
				}
			]`)
		})

		withServer(mux, func() {
			entries, err := History(KindAny, 5)
			So(err, ShouldBeNil)

			So(limit, ShouldEqual, "5")
			So(len(entries), ShouldEqual, 1)
			So(entries[0].Action, ShouldEqual, "scrobble")

			Convey("Episode entries absorb the sibling show's title", func() {
				episode, ok := entries[0].Media().(*Episode)
				So(ok, ShouldBeTrue)
				So(episode.ShowTitle, ShouldEqual, "Severance")
			})
		})
	})
}

func TestPersonalRatings(t *testing.T) {
	Convey("Personal rating reads", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/sync/ratings/movies", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"rated_at": "2026-01-15T20:30:00.000Z", "rating": 9, "type": "movie", "movie": {"title": "Heat", "ids": {"slug": "heat-1995"}}}
			]`)
		})

		withServer(mux, func() {
			entries, err := PersonalRatings(KindMovie)
			So(err, ShouldBeNil)

			So(len(entries), ShouldEqual, 1)
			So(entries[0].Rating, ShouldEqual, 9)
			So(entries[0].Media().Kind(), ShouldEqual, KindMovie)
		})
	})
}

func TestCollection(t *testing.T) {
	Convey("Collection reads", t, func() {
		var paths []string

		mux := http.NewServeMux()
		mux.HandleFunc("/sync/collection/movies", func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			fmt.Fprint(w, `[
				{"collected_at": "2026-03-01T18:00:00.000Z", "movie": {"title": "Heat", "ids": {"slug": "heat-1995"}}}
			]`)
		})
		mux.HandleFunc("/sync/collection/shows", func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			fmt.Fprint(w, `[
				{"last_collected_at": "2026-04-10T21:00:00.000Z", "show": {"title": "Severance", "ids": {"slug": "severance"}}}
			]`)
		})

		withServer(mux, func() {
			Convey("An unconstrained read fans out to movies and shows", func() {
				entries, err := Collection(KindAny)
				So(err, ShouldBeNil)

				So(paths, ShouldResemble, []string{"/sync/collection/movies", "/sync/collection/shows"})
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Media().Kind(), ShouldEqual, KindMovie)
				So(entries[1].Media().Kind(), ShouldEqual, KindShow)

				Convey("When picks whichever timestamp the row carries", func() {
					So(entries[0].When().Day(), ShouldEqual, 1)
					So(entries[1].When().Day(), ShouldEqual, 10)
				})
			})

			Convey("A narrowed read touches one endpoint", func() {
				entries, err := Collection(KindShow)
				So(err, ShouldBeNil)

				So(paths, ShouldResemble, []string{"/sync/collection/shows"})
				So(len(entries), ShouldEqual, 1)
			})
		})
	})
}

func TestLibraryReadsRequireAuth(t *testing.T) {
	Convey("Library reads fail before any request without a session", t, func() {
		hits := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			fmt.Fprint(w, "[]")
		})

		withoutTokens(func() {
			withServer(handler, func() {
				_, err := Watchlist(KindAny)
				So(err, ShouldEqual, ErrNotAuthenticated)

				_, err = History(KindAny, 0)
				So(err, ShouldEqual, ErrNotAuthenticated)

				_, err = PersonalRatings(KindAny)
				So(err, ShouldEqual, ErrNotAuthenticated)
			})
		})

		So(hits, ShouldEqual, 0)
	})
}
