package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/where"
)

func init() {
	filesystem.SetMemMapFs()
}

type payload struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

func entryPath(key string) string {
	return filepath.Join(where.Cache(), "responses", key)
}

func expire(key string) error {
	stale := time.Now().Add(-TTL - time.Minute)
	return filesystem.API().Chtimes(entryPath(key), stale, stale)
}

func TestGenerateKey(t *testing.T) {
	Convey("Given a request path and encoded query", t, func() {
		key := GenerateKey("calendars/all/shows/2026-08-23/7", "extended=full")

		Convey("The key is stable", func() {
			So(GenerateKey("calendars/all/shows/2026-08-23/7", "extended=full"), ShouldEqual, key)
		})

		Convey("A different query yields a different key", func() {
			So(GenerateKey("calendars/all/shows/2026-08-23/7", ""), ShouldNotEqual, key)
		})
	})
}

func TestReadWrite(t *testing.T) {
	Convey("Given a cached response", t, func() {
		key := GenerateKey("shows/breaking-bad/seasons", "extended=episodes")
		So(Write(key, payload{Title: "Breaking Bad", Year: 2008}), ShouldBeNil)

		Convey("Read should restore it", func() {
			var out payload
			So(Read(key, &out), ShouldBeTrue)
			So(out.Title, ShouldEqual, "Breaking Bad")
			So(out.Year, ShouldEqual, 2008)
		})

		Convey("Read should miss on an unknown key", func() {
			var out payload
			So(Read(GenerateKey("movies/heat", ""), &out), ShouldBeFalse)
		})

		Convey("Read should miss once the entry ages past the TTL", func() {
			So(expire(key), ShouldBeNil)

			var out payload
			So(Read(key, &out), ShouldBeFalse)
		})
	})
}

func TestCollectGarbage(t *testing.T) {
	Convey("Given fresh and expired entries", t, func() {
		fresh := GenerateKey("calendars/all/movies/2026-08-23/7", "")
		stale := GenerateKey("calendars/all/dvd/2026-08-23/7", "")
		So(Write(fresh, payload{}), ShouldBeNil)
		So(Write(stale, payload{}), ShouldBeNil)
		So(expire(stale), ShouldBeNil)

		collectGarbage()

		Convey("Only the expired entry should be removed", func() {
			So(lo.Must(afero.Exists(filesystem.API(), entryPath(fresh))), ShouldBeTrue)
			So(lo.Must(afero.Exists(filesystem.API(), entryPath(stale))), ShouldBeFalse)
		})
	})
}
