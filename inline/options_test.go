package inline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/trakr-cli/trakr/trakt"
)

func sampleEpisodes() []*trakt.Episode {
	return []*trakt.Episode{
		{Season: 1, Number: 1, Title: "Pilot"},
		{Season: 1, Number: 2, Title: "Cat's in the Bag..."},
		{Season: 2, Number: 13, Title: "Face Off"},
		{Season: 3, Number: 7, Title: "One Minute"},
	}
}

func sampleResults() []*trakt.SearchResult {
	return []*trakt.SearchResult{
		{Type: "show", Show: &trakt.Show{Title: "Breaking Bad", Year: 2008}},
		{Type: "show", Show: &trakt.Show{Title: "Breaking In", Year: 2011}},
	}
}

func TestParseEpisodesFilter(t *testing.T) {
	Convey("Episode filter parsing", t, func() {
		Convey("Coordinates select by season and number", func() {
			filter, err := ParseEpisodesFilter("2x13")
			So(err, ShouldBeNil)

			episodes, err := filter(sampleEpisodes())
			So(err, ShouldBeNil)
			So(len(episodes), ShouldEqual, 1)
			So(episodes[0].Title, ShouldEqual, "Face Off")
		})

		Convey("Ranges keep list positions", func() {
			filter, err := ParseEpisodesFilter("1-2")
			So(err, ShouldBeNil)

			episodes, err := filter(sampleEpisodes())
			So(err, ShouldBeNil)
			So(len(episodes), ShouldEqual, 2)
			So(episodes[0].Number, ShouldEqual, 2)
		})

		Convey("Substrings match titles case-insensitively", func() {
			filter, err := ParseEpisodesFilter("@face@")
			So(err, ShouldBeNil)

			episodes, err := filter(sampleEpisodes())
			So(err, ShouldBeNil)
			So(len(episodes), ShouldEqual, 1)
			So(episodes[0].Title, ShouldEqual, "Face Off")
		})

		Convey("First and last take the list edges", func() {
			first, _ := ParseEpisodesFilter("first")
			episodes, _ := first(sampleEpisodes())
			So(episodes[0].Title, ShouldEqual, "Pilot")

			last, _ := ParseEpisodesFilter("last")
			episodes, _ = last(sampleEpisodes())
			So(episodes[0].Title, ShouldEqual, "One Minute")
		})

		Convey("Gibberish is rejected", func() {
			_, err := ParseEpisodesFilter("every other one")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseMediaPicker(t *testing.T) {
	Convey("Media picker parsing", t, func() {
		Convey("First picks the top result", func() {
			picker, err := ParseMediaPicker("first", "")
			So(err, ShouldBeNil)

			choice := picker(sampleResults())
			So(choice.Show.Title, ShouldEqual, "Breaking Bad")
		})

		Convey("Exact matches the display label", func() {
			picker, err := ParseMediaPicker("exact", "Breaking In (2011)")
			So(err, ShouldBeNil)

			choice := picker(sampleResults())
			So(choice, ShouldNotBeNil)
			So(choice.Show.Title, ShouldEqual, "Breaking In")
		})

		Convey("Index clamps to the list tail", func() {
			picker, err := ParseMediaPicker("index", "99")
			So(err, ShouldBeNil)

			choice := picker(sampleResults())
			So(choice.Show.Title, ShouldEqual, "Breaking In")
		})

		Convey("Unknown picker kinds are rejected", func() {
			_, err := ParseMediaPicker("random", "")
			So(err, ShouldNotBeNil)
		})
	})
}
