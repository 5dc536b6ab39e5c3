package cmd

import (
	"fmt"

	"github.com/podfetch/podfetch/history"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/internal/cache"
	"github.com/podfetch/podfetch/util"
	"github.com/podfetch/podfetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// clearTarget is something the clear command can wipe.
type clearTarget struct {
	name  string
	flag  string
	short string
	clear func() error
}

var clearTargets = []clearTarget{
	{"discovery cache", "cache", "c", cache.Clear},
	{"download history", "history", "s", history.Clear},
	{"temporary files", "temp", "t", func() error { return util.Delete(where.Temp()) }},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		clearCmd.Flags().BoolP(target.flag, target.short, false, "clear the "+target.name)
	}
}

// clearCmd wipes cached and recorded data. The catalog and the state file are never touched.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the discovery cache, the download history or temporary files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			eraser := util.PrintErasable(fmt.Sprintf("%s Clearing the %s...", icon.Get(icon.Progress), target.name))
			err := target.clear()
			eraser()
			handleErr(err)

			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}
