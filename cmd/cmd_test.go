package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCommandTree(t *testing.T) {
	Convey("Given the command tree on an in-memory filesystem", t, func() {
		t.Setenv(where.EnvConfigPath, "/hlsplay-test")
		viper.Set(key.RecordingDir, "/hlsplay-recordings")

		var buf bytes.Buffer
		Reset(func() {
			rootCmd.SetArgs(nil)
			historyListCmd.SetOut(os.Stdout)
			whereCmd.SetOut(os.Stdout)
			viper.Set(key.RecordingDir, "")
		})

		Convey("No subcommand reuses a shorthand of a persistent flag", func() {
			var walk func(c *cobra.Command)
			walk = func(c *cobra.Command) {
				c.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
					if f.Shorthand != "" {
						So(rootCmd.PersistentFlags().ShorthandLookup(f.Shorthand), ShouldBeNil)
					}
				})
				for _, child := range c.Commands() {
					walk(child)
				}
			}
			walk(rootCmd)
		})

		Convey("history list prints an empty history", func() {
			historyListCmd.SetOut(&buf)
			rootCmd.SetArgs([]string{"history", "list"})

			So(rootCmd.Execute(), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "History is empty")
		})

		Convey("where prints the recordings directory", func() {
			whereCmd.SetOut(&buf)
			rootCmd.SetArgs([]string{"where", "-R"})

			So(rootCmd.Execute(), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "/hlsplay-recordings")
		})
	})
}

func TestParseIndices(t *testing.T) {
	Convey("Given rm arguments", t, func() {
		Convey("Valid indices should come back unique and highest first", func() {
			indices, err := parseIndices([]string{"1", "4", "1", "0"}, 5)
			So(err, ShouldBeNil)
			So(indices, ShouldResemble, []int{4, 1, 0})
		})

		Convey("A non-number should be rejected", func() {
			_, err := parseIndices([]string{"one"}, 5)
			So(err, ShouldBeError, "invalid index: one")
		})

		Convey("An index past the end should be rejected", func() {
			_, err := parseIndices([]string{"5"}, 5)
			So(err, ShouldBeError, "index 5 out of range, history has 5 entries")
		})

		Convey("A negative index should be rejected", func() {
			_, err := parseIndices([]string{"-1"}, 1)
			So(err, ShouldBeError, "index -1 out of range, history has 1 entry")
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("Given config values", t, func() {
		Convey("Integers should be parsed for integer keys", func() {
			v, err := parseValue(key.PlayerVolume, []string{"70"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 70)

			_, err = parseValue(key.PlayerVolume, []string{"loud"})
			So(err, ShouldBeError, "invalid integer value: loud")
		})

		Convey("Booleans should be parsed for boolean keys", func() {
			v, err := parseValue(key.HistorySave, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			_, err = parseValue(key.HistorySave, []string{"maybe"})
			So(err, ShouldNotBeNil)
		})

		Convey("Strings should be taken as is", func() {
			v, err := parseValue(key.PlayerUserAgent, []string{"Firefox"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "Firefox")
		})

		Convey("A missing value should be an error", func() {
			_, err := parseValue(key.PlayerUserAgent, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestConfigKey(t *testing.T) {
	Convey("Given a command with a key flag", t, func() {
		cmd := &cobra.Command{}
		cmd.Flags().StringP("key", "k", "", "")

		Convey("The argument should win", func() {
			k, err := configKey(cmd, []string{key.PlayerVolume})
			So(err, ShouldBeNil)
			So(k, ShouldEqual, key.PlayerVolume)
		})

		Convey("The flag should be used without arguments", func() {
			So(cmd.Flags().Set("key", key.PlayerSeekStep), ShouldBeNil)
			k, err := configKey(cmd, nil)
			So(err, ShouldBeNil)
			So(k, ShouldEqual, key.PlayerSeekStep)
		})

		Convey("No key at all should be an error", func() {
			_, err := configKey(cmd, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("A typo should suggest the closest key", func() {
			_, err := configKey(cmd, []string{"player.volum"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.PlayerVolume)
		})
	})
}

func TestEnvVariables(t *testing.T) {
	Convey("The env listing should name every exposed key", t, func() {
		names := envVariables()
		So(names, ShouldContain, "HLSPLAY_PLAYER_VOLUME")
		So(names, ShouldContain, "HLSPLAY_NETWORK_TLS_FINGERPRINT")
		So(names, ShouldContain, where.EnvConfigPath)
	})
}

func TestPrintEntries(t *testing.T) {
	Convey("Given two matches", t, func() {
		var buf bytes.Buffer
		printEntries(&buf, []history.Match{
			{Index: 0, Entry: history.Entry{URL: "https://a.example.com/a.m3u8", Name: "Alpha", LastPosition: 61}},
			{Index: 3, Entry: history.Entry{URL: "https://b.example.com/b.m3u8", Name: "https://b.example.com/b.m3u8"}},
		})

		out := buf.String()
		So(out, ShouldContainSubstring, "[0]")
		So(out, ShouldContainSubstring, "Alpha")
		So(out, ShouldContainSubstring, "00:01:01")
		So(out, ShouldContainSubstring, "https://a.example.com/a.m3u8")
		So(out, ShouldContainSubstring, "[3]")
		So(out, ShouldContainSubstring, "not started")
	})
}
