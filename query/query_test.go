package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		q1 := "severance"
		q2 := "succession"

		Convey("When remembering queries", func() {
			err := Remember(q1, 1)
			So(err, ShouldBeNil)
			err = Remember(q2, 10) // Higher weight
			So(err, ShouldBeNil)

			Convey("Then suggestions should be sorted by hits", func() {
				// Drop the in-memory layer to force a read from the persisted registry.
				memo = make(map[string][]*record)

				s := SuggestMany("suc")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, "succession")
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  SEVERANCE  "), ShouldEqual, "severance")
			})

			Convey("Suggest returns the top suggestion only", func() {
				memo = make(map[string][]*record)

				top := Suggest("suc")
				So(top.IsPresent(), ShouldBeTrue)
				So(top.MustGet(), ShouldEqual, "succession")
			})
		})

		Convey("When suggestions are disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("sev"), ShouldBeEmpty)
		})
	})
}
