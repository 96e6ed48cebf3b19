package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			So(filepath.Dir(path), ShouldEqual, Config())
		})

		Convey("History() lives in the config directory", func() {
			So(History(), ShouldEqual, filepath.Join(Config(), "history.json"))
		})

		Convey("Recordings()", func() {
			Convey("Honors recording.dir", func() {
				viper.Set(key.RecordingDir, "/custom/recordings")
				Reset(func() { viper.Set(key.RecordingDir, "") })

				So(Recordings(), ShouldEqual, "/custom/recordings")
				So(lo.Must(filesystem.API().IsDir("/custom/recordings")), ShouldBeTrue)
			})

			Convey("Falls back to a default directory", func() {
				viper.Set(key.RecordingDir, "")
				path := Recordings()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		})

		Convey("Config() honors the override variable", func() {
			So(os.Setenv(EnvConfigPath, "/tmp/hlsplay-test-config"), ShouldBeNil)
			Reset(func() { _ = os.Unsetenv(EnvConfigPath) })

			So(Config(), ShouldEqual, "/tmp/hlsplay-test-config")
		})
	})
}
