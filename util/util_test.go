package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/trakr-cli/trakr/filesystem"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(3, "episode", "episodes"), ShouldEqual, "3 episodes")
		So(Quantify(0, "vote", "votes"), ShouldEqual, "0 votes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("returning series"), ShouldEqual, "Returning series")
		So(Capitalize("élite"), ShouldEqual, "Élite")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate("The Walking Dead", 8), ShouldEqual, "The Wal…")
		So(Truncate("short", 10), ShouldEqual, "short")
		So(Truncate("君の名は", 3), ShouldEqual, "君の…")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?i)s(?P<season>\d+)\s*e(?P<number>\d+)`)

		Convey("Named groups map onto their matches", func() {
			groups := ReGroups(re, "S02E13")
			So(groups["season"], ShouldEqual, "02")
			So(groups["number"], ShouldEqual, "13")
		})

		Convey("A non-matching string yields an empty map", func() {
			So(ReGroups(re, "finale"), ShouldBeEmpty)
		})
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(3, 7), ShouldEqual, 7)
		So(Min(3, 7), ShouldEqual, 3)
		So(Max(42.0, 0.0), ShouldEqual, 42.0)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)

		Convey("Popping an empty stack yields the zero value", func() {
			So(s.Pop(), ShouldEqual, 0)
			So(s.Len(), ShouldEqual, 0)
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("Removes a single file", func() {
			So(fs.MkdirAll("/tmp/trakr", 0755), ShouldBeNil)
			f, err := fs.Create("/tmp/trakr/queue.jsonl")
			So(err, ShouldBeNil)
			_ = f.Close()

			So(Delete("/tmp/trakr/queue.jsonl"), ShouldBeNil)
			_, err = fs.Stat("/tmp/trakr/queue.jsonl")
			So(err, ShouldNotBeNil)
		})

		Convey("Removes a directory tree", func() {
			So(fs.MkdirAll("/tmp/trakr/cache/responses", 0755), ShouldBeNil)
			So(Delete("/tmp/trakr/cache"), ShouldBeNil)
			_, err := fs.Stat("/tmp/trakr/cache")
			So(err, ShouldNotBeNil)
		})

		Convey("Reports a missing path", func() {
			So(Delete("/tmp/trakr/nope"), ShouldNotBeNil)
		})
	})
}
