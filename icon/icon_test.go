package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/key"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		Convey("Each look renders something", func() {
			for _, variant := range AvailableVariants() {
				Convey("look="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					So(Get(Calendar), ShouldNotBeEmpty)
				})
			}
		})

		Convey("The configured look is honored", func() {
			viper.Set(key.IconsVariant, "plain")
			So(Get(Success), ShouldEqual, "OK")
			So(Get(Fail), ShouldEqual, "X")
		})

		Convey("An unknown look falls back to plain", func() {
			viper.Set(key.IconsVariant, "no-such-look")
			So(Get(Progress), ShouldEqual, "...")
		})
	})
}
