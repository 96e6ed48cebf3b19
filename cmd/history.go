package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hlsplay/hlsplay/color"
	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/icon"
	"github.com/hlsplay/hlsplay/style"
	"github.com/hlsplay/hlsplay/util"
	"github.com/hlsplay/hlsplay/where"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the stream history",
}

// printEntries writes one numbered block per entry. Indices are the ones rm accepts.
func printEntries(w io.Writer, matches []history.Match) {
	for i, match := range matches {
		entry := match.Entry

		position := style.Faint("not started")
		if entry.LastPosition > 0 {
			position = style.Fg(color.Yellow)(util.FormatTime(entry.LastPosition))
		}

		_, _ = fmt.Fprintf(w, "%s %s %s\n", style.Fg(color.Purple)(fmt.Sprintf("[%d]", match.Index)), style.Bold(entry.Title()), position)
		if entry.Name != entry.URL {
			_, _ = fmt.Fprintf(w, "    %s\n", style.Faint(entry.URL))
		}
		if t, ok := entry.Time(); ok {
			_, _ = fmt.Fprintf(w, "    %s\n", style.Faint(t.Format("2006-01-02 15:04")))
		}

		if i < len(matches)-1 {
			_, _ = fmt.Fprintln(w)
		}
	}
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().BoolP("json", "j", false, "Print the raw entries as JSON")
	historyListCmd.SetOut(os.Stdout)
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List remembered streams, newest first",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		store := history.Open(where.History())

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(store.Entries()))
			return
		}

		if store.Len() == 0 {
			cmd.Println(style.Faint("History is empty"))
			return
		}

		printEntries(cmd.OutOrStdout(), store.Search(""))
	},
}

func init() {
	historyCmd.AddCommand(historySearchCmd)
	historySearchCmd.SetOut(os.Stdout)
}

var historySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy search streams by name or url",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		matches := history.Open(where.History()).Search(args[0])
		if len(matches) == 0 {
			handleErr(fmt.Errorf("nothing matches %q", args[0]))
		}

		printEntries(cmd.OutOrStdout(), matches)
	},
}

// parseIndices validates the rm arguments against n entries and returns them highest first, so
// deleting in order keeps the remaining indices valid.
func parseIndices(args []string, n int) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		index, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", arg)
		}
		if index < 0 || index >= n {
			return nil, fmt.Errorf("index %d out of range, history has %s", index, util.Quantify(n, "entry", "entries"))
		}
		indices = append(indices, index)
	}

	indices = lo.Uniq(indices)
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	return indices, nil
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:     "rm [index...]",
	Short:   "Remove entries by their index in the list",
	Aliases: []string{"remove"},
	Args:    cobra.MinimumNArgs(1),
	Example: "  hlsplay history rm 0 3",
	Run: func(cmd *cobra.Command, args []string) {
		store := history.Open(where.History())

		indices, err := parseIndices(args, store.Len())
		handleErr(err)

		entries := store.Entries()
		for _, index := range indices {
			store.DeleteAt(index)
			fmt.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), entries[index].Title())
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every stream and position",
	Run: func(cmd *cobra.Command, args []string) {
		store := history.Open(where.History())
		if store.Len() == 0 {
			fmt.Println(style.Faint("History is already empty"))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Remove %s from the history?", util.Quantify(store.Len(), "entry", "entries")),
				Default: false,
			}

			var response bool
			err := survey.AskOne(&confirm, &response)
			if errors.Is(err, io.EOF) {
				err = errors.New("confirmation required, pass --yes to skip it")
			}
			handleErr(err)

			if !response {
				return
			}
		}

		store.Clear()
		fmt.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	historyCmd.AddCommand(historySchemaCmd)
}

var historySchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the history file",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(reflector.Reflect([]history.Entry{})))
	},
}
