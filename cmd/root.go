// Package cmd implements the command-line interface for hlsplay.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hlsplay/hlsplay/color"
	"github.com/hlsplay/hlsplay/constant"
	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/icon"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/log"
	"github.com/hlsplay/hlsplay/session"
	"github.com/hlsplay/hlsplay/style"
	"github.com/hlsplay/hlsplay/tui"
	"github.com/hlsplay/hlsplay/version"
	"github.com/hlsplay/hlsplay/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember opened streams and their playback positions")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("referer", "r", "", "Referer header sent with the stream requests")
	lo.Must0(viper.BindPFlag(key.PlayerReferer, rootCmd.PersistentFlags().Lookup("referer")))

	rootCmd.PersistentFlags().StringP("user-agent", "u", "", "User-Agent preset (Chrome, Firefox, Safari, Edge) or a literal value")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("user-agent", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(constant.UserAgents), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerUserAgent, rootCmd.PersistentFlags().Lookup("user-agent")))

	rootCmd.Flags().StringP("name", "n", "", "Display name stored in the history")
	rootCmd.Flags().BoolP("continue", "c", false, "Resume playback of the most recent history entry")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd opens the player TUI.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [url]",
	Short: "A terminal player for HLS streams",
	Long: constant.Logo + "\n" +
		style.New().Italic(true).Foreground(color.Cyan).Render("    - A terminal player for HLS streams"),
	Args: cobra.MaximumNArgs(1),
	Example: "  " + constant.App + " https://example.com/live/index.m3u8\n" +
		"  " + constant.App + " --continue",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Name:      lo.Must(cmd.Flags().GetString("name")),
			Referer:   viper.GetString(key.PlayerReferer),
			UserAgent: viper.GetString(key.PlayerUserAgent),
			Continue:  lo.Must(cmd.Flags().GetBool("continue")),
		}
		if len(args) > 0 {
			options.URL = args[0]
		}

		sess, err := session.Open(history.Open(where.History()))
		handleErr(err)

		err = tui.Run(sess, &options)
		if closeErr := sess.Close(); closeErr != nil {
			log.Warnf("close session: %v", closeErr)
		}
		handleErr(err)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiBlue + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
