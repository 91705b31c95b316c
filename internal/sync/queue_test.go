package sync

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQueue(t *testing.T) {
	Convey("Offline write queue", t, func() {
		_ = filesystem.API().Remove(where.Queue())

		Convey("An empty queue reads back empty", func() {
			writes, err := Pending()
			So(err, ShouldBeNil)
			So(writes, ShouldBeEmpty)
		})

		Convey("Queued writes append and read back in order", func() {
			So(QueueFailure("Heat (1995)", "sync/history", json.RawMessage(`{"movies":[{"ids":{"slug":"heat-1995"}}]}`)), ShouldBeNil)
			So(QueueFailure("Severance", "sync/watchlist", json.RawMessage(`{"shows":[{"ids":{"slug":"severance"}}]}`)), ShouldBeNil)

			writes, err := Pending()
			So(err, ShouldBeNil)
			So(len(writes), ShouldEqual, 2)

			So(writes[0].Label, ShouldEqual, "Heat (1995)")
			So(writes[0].Path, ShouldEqual, "sync/history")
			So(string(writes[0].Payload), ShouldContainSubstring, "heat-1995")

			So(writes[1].Path, ShouldEqual, "sync/watchlist")
			So(writes[1].Timestamp, ShouldBeGreaterThan, 0)
		})

		Convey("A corrupt line is skipped, not fatal", func() {
			So(QueueFailure("Heat (1995)", "sync/history", json.RawMessage(`{"movies":[]}`)), ShouldBeNil)

			writes := decodeWrites([]byte(`{"timestamp":1,"label":"ok","path":"sync/history","payload":{}}` + "\n" + `{broken`))
			So(len(writes), ShouldEqual, 1)
			So(writes[0].Label, ShouldEqual, "ok")
		})
	})
}
