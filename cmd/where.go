package cmd

import (
	"os"

	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// wherePath is a location podfetch reads or writes.
type wherePath struct {
	name string
	flag string
	path func() string
}

var wherePaths = []wherePath{
	{"Config directory", "config", where.Config},
	{"Catalog", "catalog", where.Catalog},
	{"State file", "state", where.State},
	{"Download history", "history", where.History},
	{"Discovery cache", "cache", where.Episodes},
	{"Logs", "logs", where.Logs},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, p := range wherePaths {
		whereCmd.Flags().Bool(p.flag, false, "Print only the "+p.name+" path")
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(p wherePath, _ int) string {
		return p.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints the paths of the files and directories podfetch uses.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths of the catalog, the state file and the other files podfetch uses",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if p, ok := lo.Find(wherePaths, func(p wherePath) bool {
			return lo.Must(cmd.Flags().GetBool(p.flag))
		}); ok {
			cmd.Println(p.path())
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, p := range wherePaths {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", heading(p.name), style.Fg(color.Yellow)("--"+p.flag))
			cmd.Println(p.path())
		}
	},
}
