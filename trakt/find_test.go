package trakt

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFindShow(t *testing.T) {
	Convey("FindShow resolves free text to the closest show", t, func() {
		searches := 0

		mux := http.NewServeMux()
		mux.HandleFunc("/search/show", func(w http.ResponseWriter, r *http.Request) {
			searches++
			switch r.URL.Query().Get("query") {
			case "braking bad":
				fmt.Fprint(w, `[
					{"type": "show", "score": 50, "show": {"title": "Breaking Bad", "ids": {"slug": "breaking-bad"}}},
					{"type": "show", "score": 40, "show": {"title": "The Walking Dead", "ids": {"slug": "the-walking-dead"}}}
				]`)
			default:
				fmt.Fprint(w, "[]")
			}
		})

		withServer(mux, func() {
			show, err := FindShow("Braking Bad")
			So(err, ShouldBeNil)

			Convey("The levenshtein-closest candidate wins", func() {
				So(show.Title, ShouldEqual, "Breaking Bad")
			})

			Convey("The second lookup serves the saved binding without searching", func() {
				before := searches

				again, err := FindShow("Braking Bad")
				So(err, ShouldBeNil)
				So(again.Title, ShouldEqual, "Breaking Bad")
				So(searches, ShouldEqual, before)
			})
		})
	})
}

func TestFindShowShortensQuery(t *testing.T) {
	Convey("FindShow drops trailing words until results appear", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/show", func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("query") {
			case "the wire":
				fmt.Fprint(w, `[{"type": "show", "score": 99, "show": {"title": "The Wire", "ids": {"slug": "the-wire"}}}]`)
			default:
				fmt.Fprint(w, "[]")
			}
		})

		withServer(mux, func() {
			show, err := FindShow("The Wire Complete Edition")
			So(err, ShouldBeNil)
			So(show.Title, ShouldEqual, "The Wire")

			Convey("The original phrasing is bound to the resolved show", func() {
				bound := relationCacher.Get(showRelationKey("the wire complete edition"))
				So(bound.IsPresent(), ShouldBeTrue)
				So(bound.MustGet(), ShouldEqual, "the-wire")
			})
		})
	})
}

func TestFindShowGivesUp(t *testing.T) {
	Convey("FindShow stops once shortening is exhausted", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/show", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "[]")
		})

		withServer(mux, func() {
			_, err := FindShow("utterly unknown broadcast artifact")
			So(err, ShouldNotBeNil)

			Convey("The dead end is remembered as a negative binding", func() {
				_, err := FindShow("utterly unknown broadcast artifact")
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestFindMovie(t *testing.T) {
	Convey("FindMovie resolves free text to the closest movie", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"type": "movie", "score": 80, "movie": {"title": "Heat", "year": 1995, "ids": {"slug": "heat-1995"}}},
				{"type": "movie", "score": 70, "movie": {"title": "Dead Heat", "year": 1988, "ids": {"slug": "dead-heat-1988"}}}
			]`)
		})

		withServer(mux, func() {
			movie, err := FindMovie("Heat")
			So(err, ShouldBeNil)
			So(movie.Title, ShouldEqual, "Heat")
			So(movie.Year, ShouldEqual, 1995)
		})
	})
}
