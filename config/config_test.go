package config

import (
	"testing"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlayerVolume), ShouldEqual, 100)
			So(viper.GetString(key.PlayerBinary), ShouldEqual, "mpv")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("cache.max_back_bytes"), ShouldEqual, "cache_max_back_bytes")
		})

		Convey("Field env names carry the application prefix", func() {
			field := Default[key.NetworkTimeout]
			So(field.Env(), ShouldEqual, "HLSPLAY_NETWORK_TIMEOUT")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		_ = Setup()
		Reset(func() {
			for name, field := range Default {
				viper.Set(name, field.Value)
			}
		})

		Convey("It is valid", func() {
			So(Validate(), ShouldBeNil)
		})

		Convey("An out of range volume is rejected", func() {
			viper.Set(key.PlayerVolume, 140)
			So(Validate(), ShouldNotBeNil)
			So(Validate().Error(), ShouldContainSubstring, key.PlayerVolume)
		})

		Convey("A zero network timeout is rejected", func() {
			viper.Set(key.NetworkTimeout, 0)
			So(Validate(), ShouldNotBeNil)
		})

		Convey("An unknown icon variant is rejected", func() {
			viper.Set(key.IconsVariant, "ascii")
			So(Validate().Error(), ShouldContainSubstring, key.IconsVariant)
		})

		Convey("A negative cache size is rejected", func() {
			viper.Set(key.CacheMaxBytes, -1)
			So(Validate(), ShouldNotBeNil)
		})
	})
}
