package trakt

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// calendarFixture serves a TV calendar with four rows: two airing on the same
// instant (tie), one later, and one whose season is missing from the listing.
func calendarFixture() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/calendars/all/shows/2026-03-01/3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{
				"first_aired": "2026-03-02T01:00:00.000Z",
				"episode": {"season": 2, "number": 3, "title": "Gray Matter", "ids": {"trakt": 203}},
				"show": {"title": "Alpha", "year": 2024, "ids": {"trakt": 1, "slug": "alpha"}}
			},
			{
				"first_aired": "2026-03-01T02:00:00.000Z",
				"episode": {"season": 9, "number": 1, "title": "Phantom", "ids": {"trakt": 901}},
				"show": {"title": "Bravo", "year": 2020, "ids": {"trakt": 2, "slug": "bravo"}}
			},
			{
				"first_aired": "2026-03-01T01:00:00.000Z",
				"episode": {"season": 1, "number": 2, "title": "Second Steps", "ids": {"trakt": 102}},
				"show": {"title": "Charlie", "year": 2025, "ids": {"trakt": 3, "slug": "charlie"}}
			},
			{
				"first_aired": "2026-03-01T01:00:00.000Z",
				"episode": {"season": 1, "number": 5, "title": "Fifth", "ids": {"trakt": 105}},
				"show": {"title": "Delta", "year": 2025, "ids": {"trakt": 4, "slug": "delta"}}
			}
		]`)
	})

	mux.HandleFunc("/shows/alpha/seasons", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"number": 1, "ids": {"trakt": 11}, "episodes": [{"season": 1, "number": 1, "title": "Pilot"}]},
			{"number": 2, "ids": {"trakt": 12}, "episodes": [{"season": 2, "number": 1, "title": "Return"}]}
		]`)
	})
	mux.HandleFunc("/shows/bravo/seasons", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 1, "ids": {"trakt": 21}}]`)
	})
	mux.HandleFunc("/shows/charlie/seasons", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 1, "ids": {"trakt": 31}}]`)
	})
	mux.HandleFunc("/shows/delta/seasons", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 1, "ids": {"trakt": 41}}]`)
	})

	return mux
}

func TestShowCalendar(t *testing.T) {
	Convey("Show calendar assembly", t, func() {
		span := Span{Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Days: 3}

		withServer(calendarFixture(), func() {
			shows, err := ShowCalendar(span)
			So(err, ShouldBeNil)

			Convey("Rows whose season is missing from the listing are dropped", func() {
				So(len(shows), ShouldEqual, 3)
				for _, show := range shows {
					So(show.Title, ShouldNotEqual, "Bravo")
				}
			})

			Convey("Every kept show holds exactly one season with exactly one episode", func() {
				for _, show := range shows {
					So(len(show.Seasons), ShouldEqual, 1)
					So(len(show.Seasons[0].Episodes), ShouldEqual, 1)
				}
			})

			Convey("Shows sort by airing time, ties keep response order", func() {
				So(shows[0].Title, ShouldEqual, "Charlie")
				So(shows[1].Title, ShouldEqual, "Delta")
				So(shows[2].Title, ShouldEqual, "Alpha")
			})

			Convey("The pruned season is the episode's season", func() {
				alpha := shows[2]
				So(alpha.Seasons[0].Number, ShouldEqual, 2)

				episode := alpha.Seasons[0].Episodes[0]
				So(episode.Number, ShouldEqual, 3)
				So(episode.Title, ShouldEqual, "Gray Matter")
				So(episode.ShowTitle, ShouldEqual, "Alpha")
				So(episode.AiredAt.Equal(time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})
	})
}

func TestShowCalendarDefaults(t *testing.T) {
	Convey("The zero span means seven days starting today", t, func() {
		mux := http.NewServeMux()
		path := fmt.Sprintf("/calendars/all/shows/%s/7", time.Now().Format("2006-01-02"))
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "[]")
		})

		withServer(mux, func() {
			shows, err := ShowCalendar(Span{})
			So(err, ShouldBeNil)
			So(shows, ShouldBeEmpty)
		})
	})
}

func TestMovieCalendar(t *testing.T) {
	Convey("Movie calendar assembly", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/calendars/all/movies/2026-03-01/7", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"released": "2026-03-05", "movie": {"title": "Late Arrival", "year": 2026, "ids": {"trakt": 51}}},
				{"released": "2026-03-01", "movie": {"title": "Opening Night", "year": 2026, "ids": {"trakt": 52}}},
				{"released": "2026-03-02"}
			]`)
		})

		span := Span{Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Days: 7}

		withServer(mux, func() {
			movies, err := MovieCalendar(span)
			So(err, ShouldBeNil)

			Convey("Every row is kept, even without a movie fragment", func() {
				So(len(movies), ShouldEqual, 3)
			})

			Convey("Movies sort by the row's release date", func() {
				So(movies[0].Title, ShouldEqual, "Opening Night")
				So(movies[1].Title, ShouldBeEmpty)
				So(movies[2].Title, ShouldEqual, "Late Arrival")
			})

			Convey("The row release date is stamped onto each movie", func() {
				So(movies[0].Released, ShouldEqual, "2026-03-01")
				So(movies[1].Released, ShouldEqual, "2026-03-02")
				So(movies[2].Released, ShouldEqual, "2026-03-05")
			})
		})
	})
}

func TestPersonalCalendarsRequireAuth(t *testing.T) {
	Convey("Personal calendars fail before any request without a session", t, func() {
		hits := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			fmt.Fprint(w, "[]")
		})

		withoutTokens(func() {
			withServer(handler, func() {
				_, err := MyShowCalendar(Span{})
				So(err, ShouldEqual, ErrNotAuthenticated)

				_, err = MyMovieCalendar(Span{})
				So(err, ShouldEqual, ErrNotAuthenticated)
			})
		})

		So(hits, ShouldEqual, 0)
	})
}
