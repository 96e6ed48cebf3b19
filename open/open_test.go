package open

import (
	"testing"

	"github.com/hlsplay/hlsplay/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a directory to open", t, func() {
		const dir = "/home/user/Videos/hlsplay"

		Convey("Linux should use xdg-open", func() {
			cmd, err := Command(constant.Linux, dir)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", dir})
		})

		Convey("macOS should use open", func() {
			cmd, err := Command(constant.Darwin, dir)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", dir})
		})

		Convey("Windows should go through the URL protocol handler", func() {
			cmd, err := Command(constant.Windows, dir)
			So(err, ShouldBeNil)
			So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", dir})
		})

		Convey("Other systems should be rejected", func() {
			_, err := Command("plan9", dir)
			So(err, ShouldBeError, "unsupported OS: plan9")
		})
	})
}
