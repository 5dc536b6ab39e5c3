package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/state"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stateCmd)
}

// stateCmd serves as the parent command for the watermark file.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage the watermark, the download directory and the quality flag",
}

// addStateFlags registers the flags that edit a state file.
func addStateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("since", "d", "", "Watermark date (YYYY-MM-DD)")
	cmd.Flags().StringP("path", "p", "", "Directory episodes are downloaded to")
	cmd.Flags().BoolP("high-quality", "Q", false, "Download high quality files")
}

// applyStateFlags copies the changed flags of cmd onto s.
func applyStateFlags(cmd *cobra.Command, s *state.State) error {
	if cmd.Flags().Changed("since") {
		date, err := podcast.Date(lo.Must(cmd.Flags().GetString("since")))
		if err != nil {
			return fmt.Errorf("%w: --since: %s", podcast.ErrConfig, err)
		}
		s.LastDownload = date
	}

	if cmd.Flags().Changed("path") {
		s.Dir = lo.Must(cmd.Flags().GetString("path"))
	}

	if cmd.Flags().Changed("high-quality") {
		s.HighQuality = lo.Must(cmd.Flags().GetBool("high-quality"))
	}

	return nil
}

func printState(cmd *cobra.Command, s *state.State) {
	cmd.Printf("%s %s\n", style.Faint("last download"), style.Bold(s.LastDownload.Format(podcast.DateLayout)))
	cmd.Printf("%s          %s\n", style.Faint("path"), style.Bold(lo.Ternary(s.Dir != "", s.Dir, ".")))
	cmd.Printf("%s       %s\n", style.Faint("quality"), style.Bold(s.Quality().String()))
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateShowCmd.Flags().BoolP("raw", "r", false, "Print the file as it is stored")
	stateShowCmd.SetOut(os.Stdout)
}

// stateShowCmd prints the current state file.
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the watermark, the download directory and the quality flag",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := state.Load(where.State())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("raw")) {
			cmd.Print(s.String())
			return
		}

		printState(cmd, s)
	},
}

func init() {
	stateCmd.AddCommand(stateInitCmd)
	addStateFlags(stateInitCmd)
	stateInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing state file")
	stateInitCmd.SetOut(os.Stdout)
}

// stateInitCmd creates the state file, starting a week ago by default.
var stateInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the state file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := where.State()
		if lo.Must(filesystem.API().Exists(path)) && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(errors.New("state file already exists, use --force to overwrite it"))
		}

		s := state.Default()
		handleErr(applyStateFlags(cmd, s))
		handleErr(state.Save(path, s))

		cmd.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
		printState(cmd, s)
	},
}

func init() {
	stateCmd.AddCommand(stateSetCmd)
	addStateFlags(stateSetCmd)
	stateSetCmd.SetOut(os.Stdout)
}

// stateSetCmd edits single values of the state file.
var stateSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the watermark, the download directory or the quality flag",
	Args:  cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("since") && !cmd.Flags().Changed("path") && !cmd.Flags().Changed("high-quality") {
			handleErr(errors.New("at least one of --since, --path or --high-quality must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		s, err := state.Load(where.State())
		handleErr(err)

		handleErr(applyStateFlags(cmd, s))
		handleErr(state.Save(where.State(), s))

		cmd.Printf("%s updated %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), where.State())
		printState(cmd, s)
	},
}
