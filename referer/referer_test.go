package referer

import (
	"testing"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.TUIRefererSuggestions, true)
}

func TestReferer(t *testing.T) {
	Convey("Given remembered referers", t, func() {
		So(cacher.Set(nil), ShouldBeNil)

		So(Remember("https://tv.example.com/"), ShouldBeNil)
		So(Remember("  https://live.example.org/  "), ShouldBeNil)
		So(Remember("https://live.example.org/"), ShouldBeNil)
		So(Remember("   "), ShouldBeNil)

		Convey("All of them should be suggested, most used first", func() {
			So(SuggestMany(""), ShouldResemble, []string{
				"https://live.example.org/",
				"https://tv.example.com/",
			})
		})

		Convey("Suggestions should be fuzzily filtered", func() {
			So(SuggestMany("EXAMPLE.COM"), ShouldResemble, []string{"https://tv.example.com/"})
			So(Suggest("liveorg").MustGet(), ShouldEqual, "https://live.example.org/")
			So(Suggest("nothing here").IsAbsent(), ShouldBeTrue)
		})

		Convey("Nothing should be suggested when disabled", func() {
			viper.Set(key.TUIRefererSuggestions, false)
			defer viper.Set(key.TUIRefererSuggestions, true)

			So(SuggestMany(""), ShouldBeEmpty)
		})
	})
}
