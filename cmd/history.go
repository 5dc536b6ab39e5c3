package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/history"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	historyCmd.Flags().StringSliceP("series", "s", []string{}, "Only show these series")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists every episode downloaded so far.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List downloaded episodes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := history.Sorted()
		handleErr(err)

		if series := lo.Must(cmd.Flags().GetStringSlice("series")); len(series) > 0 {
			records = lo.Filter(records, func(r *history.Record, _ int) bool {
				return lo.Contains(series, r.Series)
			})
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Printf("%s Nothing downloaded yet\n", icon.Get(icon.Mark))
			return
		}

		var series string
		for _, r := range records {
			if r.Series != series {
				if series != "" {
					cmd.Println()
				}
				series = r.Series
				cmd.Printf("%s %s\n", icon.Get(icon.Podcast), style.Bold(series))
			}

			cmd.Printf(
				"  %s  %s %s\n",
				style.Faint(r.Published.Format(podcast.DateLayout)),
				r.Title,
				style.Faint(fmt.Sprintf("(%s)", util.HumanBytes(r.Size))),
			)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

// historyRemoveCmd forgets single downloads so the selection screen no longer marks them.
var historyRemoveCmd = &cobra.Command{
	Use:     "remove [file name]",
	Aliases: []string{"rm"},
	Short:   "Forget the download of an episode by its file name",
	Args:    cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		saved, err := history.Get()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return lo.Keys(saved), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		for _, name := range args {
			record, ok := saved[name]
			if !ok {
				handleErr(fmt.Errorf("%s is not in the history", name))
			}

			handleErr(history.Remove(record))
			fmt.Printf("%s forgot %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(record.String()))
		}
	},
}
