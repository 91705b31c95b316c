package trakt

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSearchResults(t *testing.T) {
	Convey("Free-text search", t, func() {
		var path, query string

		mux := http.NewServeMux()
		mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			query = r.URL.Query().Get("query")
			fmt.Fprint(w, `[
				{"type": "movie", "score": 120.5, "movie": {"title": "Heat", "year": 1995, "ids": {"slug": "heat-1995"}}},
				{"type": "show", "score": 90.1, "show": {"title": "Heat Wave", "year": 2021, "ids": {"slug": "heat-wave"}}},
				{
					"type": "episode", "score": 40.0,
					"episode": {"season": 3, "number": 7, "title": "Heatstroke", "ids": {"trakt": 37}},
					"show": {"title": "Emergency Line", "ids": {"slug": "emergency-line"}}
				},
				{"type": "person", "score": 25.0, "person": {"name": "Heather Grant", "ids": {"slug": "heather-grant"}}},
				{"type": "list", "score": 10.0}
			]`)
		})

		withServer(mux, func() {
			results, err := SearchResults("heat wave")
			So(err, ShouldBeNil)

			Convey("Omitting kinds searches every kind at once", func() {
				So(path, ShouldEqual, "/search/movie,show,episode,person")
				So(query, ShouldEqual, "heat wave")
			})

			Convey("Every response row is kept", func() {
				So(len(results), ShouldEqual, 5)
			})

			Convey("The type discriminant picks the populated arm", func() {
				So(results[0].Movie.Title, ShouldEqual, "Heat")
				So(results[1].Show.Title, ShouldEqual, "Heat Wave")
				So(results[2].Episode.Title, ShouldEqual, "Heatstroke")
				So(results[3].Person.Name, ShouldEqual, "Heather Grant")
			})

			Convey("Episode rows absorb the sibling show's title", func() {
				So(results[2].Episode.ShowTitle, ShouldEqual, "Emergency Line")
				So(results[2].Show, ShouldBeNil)
			})

			Convey("Unrecognized discriminants keep their tag with no entity", func() {
				So(results[4].Type, ShouldEqual, "list")
				So(results[4].Media(), ShouldBeNil)
			})
		})

		withServer(mux, func() {
			_, err := SearchResults("heat wave", KindMovie, KindShow)
			So(err, ShouldBeNil)

			Convey("Requested kinds narrow the path", func() {
				So(path, ShouldEqual, "/search/movie,show")
			})
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Search unwraps rows, keeping positions aligned", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"type": "movie", "score": 1, "movie": {"title": "First", "ids": {"slug": "first"}}},
				{"type": "list", "score": 1},
				{"type": "show", "score": 1, "show": {"title": "Third", "ids": {"slug": "third"}}}
			]`)
		})

		withServer(mux, func() {
			media, err := Search("alignment probe")
			So(err, ShouldBeNil)
			So(len(media), ShouldEqual, 3)

			So(media[0].Label(), ShouldEqual, "First")
			So(media[1], ShouldBeNil)
			So(media[2].Label(), ShouldEqual, "Third")
		})
	})
}

func TestSearchByID(t *testing.T) {
	Convey("Id lookup", t, func() {
		Convey("An unknown id type is rejected before any request", func() {
			hits := 0
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
				fmt.Fprint(w, "[]")
			})

			withServer(handler, func() {
				_, err := SearchByID("tt0903747", "imbd")

				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrInvalidIDType), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `did you mean "imdb"`)
			})

			So(hits, ShouldEqual, 0)
		})

		Convey("Key presence decides each row's entity", func() {
			var id, idType string

			mux := http.NewServeMux()
			mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
				id = r.URL.Query().Get("id")
				idType = r.URL.Query().Get("id_type")
				fmt.Fprint(w, `[
					{
						"episode": {"season": 1, "number": 1, "title": "Pilot", "ids": {"trakt": 11}},
						"show": {"title": "Wrapped Around", "ids": {"slug": "wrapped-around"}}
					},
					{"movie": {"title": "Standalone", "ids": {"slug": "standalone"}}},
					{}
				]`)
			})

			withServer(mux, func() {
				media, err := SearchByID("tt0903747", IDTypeIMDB)
				So(err, ShouldBeNil)

				So(id, ShouldEqual, "tt0903747")
				So(idType, ShouldEqual, "imdb")

				Convey("Rows with no recognizable entity are skipped", func() {
					So(len(media), ShouldEqual, 2)
				})

				Convey("An episode outranks its sibling show", func() {
					episode, ok := media[0].(*Episode)
					So(ok, ShouldBeTrue)
					So(episode.ShowTitle, ShouldEqual, "Wrapped Around")
				})

				Convey("Single-arm rows resolve directly", func() {
					So(media[1].Kind(), ShouldEqual, KindMovie)
					So(media[1].Label(), ShouldEqual, "Standalone")
				})
			})
		})
	})
}
