package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackends(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("SetOsFs selects the real disk", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("SetMemMapFs selects a volatile filesystem", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")

			Convey("which starts empty on every swap", func() {
				So(afero.WriteFile(API(), "/marker", []byte("x"), 0644), ShouldBeNil)
				SetMemMapFs()
				_, err := API().Stat("/marker")
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("GacheFs writes through the active backend", t, func() {
		SetMemMapFs()

		So(GacheFs{}.MkdirAll("/cache", 0755), ShouldBeNil)

		f, err := GacheFs{}.OpenFile("/cache/data.json", os.O_CREATE|os.O_WRONLY, 0644)
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		exists, err := API().Exists("/cache/data.json")
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)
	})
}
