package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/trakt"
)

func init() {
	filesystem.SetMemMapFs()
}

func sampleEpisode() *trakt.Episode {
	return &trakt.Episode{
		Season:    2,
		Number:    13,
		Title:     "Face Off",
		IDs:       trakt.IDs{Trakt: 213},
		ShowTitle: "Breaking Bad",
	}
}

func TestHistory(t *testing.T) {
	Convey("Playback history", t, func() {
		Convey("Saving a scrobble makes it retrievable", func() {
			So(Save(sampleEpisode(), 35), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)

			record, exists := saved["Breaking Bad 2x13 Face Off (episode)"]
			So(exists, ShouldBeTrue)
			So(record.Progress, ShouldEqual, 35)
			So(record.Kind, ShouldEqual, trakt.KindEpisode)
		})

		Convey("Progress never regresses on re-save", func() {
			So(Save(sampleEpisode(), 60), ShouldBeNil)
			So(Save(sampleEpisode(), 20), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)

			record := saved["Breaking Bad 2x13 Face Off (episode)"]
			So(record, ShouldNotBeNil)
			So(record.Progress, ShouldEqual, 60)
		})

		Convey("The saved record rebuilds its media", func() {
			So(Save(sampleEpisode(), 50), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)

			media := saved["Breaking Bad 2x13 Face Off (episode)"].Media()
			episode, ok := media.(*trakt.Episode)
			So(ok, ShouldBeTrue)
			So(episode.Season, ShouldEqual, 2)
			So(episode.Number, ShouldEqual, 13)
			So(episode.ShowTitle, ShouldEqual, "Breaking Bad")
		})

		Convey("Latest returns the most recently saved record", func() {
			So(Save(&trakt.Movie{Title: "Alien", Year: 1979, IDs: trakt.IDs{Slug: "alien-1979"}}, 30), ShouldBeNil)
			So(Save(sampleEpisode(), 55), ShouldBeNil)

			latest, err := Latest()
			So(err, ShouldBeNil)
			So(latest, ShouldNotBeNil)
			So(latest.Kind, ShouldEqual, trakt.KindEpisode)
		})

		Convey("Removing a record deletes it", func() {
			movie := &trakt.Movie{Title: "Heat", Year: 1995, IDs: trakt.IDs{Slug: "heat-1995"}}
			So(Save(movie, 45), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)

			record, exists := saved["Heat (1995) (movie)"]
			So(exists, ShouldBeTrue)

			So(Remove(record), ShouldBeNil)

			saved, err = Get()
			So(err, ShouldBeNil)
			_, exists = saved["Heat (1995) (movie)"]
			So(exists, ShouldBeFalse)
		})
	})
}
