package trakt

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/key"
)

func TestRatingSummary(t *testing.T) {
	Convey("RatingSummary", t, func() {
		viper.Set(key.MetadataFetchRatings, true)
		defer viper.Set(key.MetadataFetchRatings, false)

		Convey("Serves the community summary for a show", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/shows/the-wire/ratings", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"rating": 9.3, "votes": 12045, "distribution": {"10": 7000, "9": 3000}}`)
			})

			withServer(mux, func() {
				stats := RatingSummary(&Show{Title: "The Wire", IDs: IDs{Slug: "the-wire"}})

				So(stats.IsPresent(), ShouldBeTrue)
				So(stats.MustGet().Rating, ShouldAlmostEqual, 9.3)
				So(stats.MustGet().Votes, ShouldEqual, 12045)
				So(stats.MustGet().Distribution["10"], ShouldEqual, 7000)
			})
		})

		Convey("Failures degrade to an absent value", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})

			withServer(handler, func() {
				stats := RatingSummary(&Movie{Title: "Cursed", IDs: IDs{Slug: "cursed-lookup"}})
				So(stats.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Unsupported kinds never leave the process", func() {
			hits := 0
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
			})

			withServer(handler, func() {
				stats := RatingSummary(&Person{Name: "Idris Elba", IDs: IDs{Slug: "idris-elba"}})
				So(stats.IsAbsent(), ShouldBeTrue)
			})

			So(hits, ShouldEqual, 0)
		})

		Convey("Disabled metadata fetching short-circuits", func() {
			viper.Set(key.MetadataFetchRatings, false)
			defer viper.Set(key.MetadataFetchRatings, true)

			hits := 0
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
			})

			withServer(handler, func() {
				stats := RatingSummary(&Show{Title: "Anything", IDs: IDs{Slug: "anything"}})
				So(stats.IsAbsent(), ShouldBeTrue)
			})

			So(hits, ShouldEqual, 0)
		})
	})
}
