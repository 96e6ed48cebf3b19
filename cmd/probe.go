package cmd

import (
	"context"
	"fmt"

	"github.com/hlsplay/hlsplay/color"
	"github.com/hlsplay/hlsplay/icon"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/network"
	"github.com/hlsplay/hlsplay/session"
	"github.com/hlsplay/hlsplay/style"
	"github.com/hlsplay/hlsplay/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:     "probe [url]",
	Short:   "Check that a stream answers without playing it",
	Long:    "Send the same HEAD request hlsplay sends before playback, with the configured Referer and User-Agent.",
	Args:    cobra.ExactArgs(1),
	Example: "  hlsplay probe -r https://site.example.com/ https://cdn.example.com/live/index.m3u8",
	Run: func(cmd *cobra.Command, args []string) {
		req := session.LoadRequest{
			URL:       args[0],
			Referer:   viper.GetString(key.PlayerReferer),
			UserAgent: viper.GetString(key.PlayerUserAgent),
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), style.Faint(req.URL)))
		err := network.Probe(ctx, req.URL, req.Headers())
		erase()
		handleErr(err)

		fmt.Printf("%s %s is reachable\n", style.Fg(color.Green)(icon.Get(icon.Success)), req.URL)
	},
}
