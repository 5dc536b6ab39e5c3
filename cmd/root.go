// Package cmd implements the command-line interface for podfetch.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/key"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/util"
	"github.com/podfetch/podfetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record completed downloads in the download history")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().IntP("workers", "w", 4, "Number of series checked at once")
	lo.Must0(viper.BindPFlag(key.DiscoverWorkers, rootCmd.PersistentFlags().Lookup("workers")))

	rootCmd.PersistentFlags().Bool("fail-fast", false, "Stop at the first series that cannot be checked")
	lo.Must0(viper.BindPFlag(key.DiscoverFailFast, rootCmd.PersistentFlags().Lookup("fail-fast")))

	addDiscoveryFlags(rootCmd)
	addSelectionFlags(rootCmd)

	// Temporary files of an interrupted run are never reused.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd discovers new episodes, asks which ones to keep and downloads them.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Discover and download new episodes of your subscribed podcasts",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Discover and download new episodes of your subscribed podcasts"),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(fetch(cmd))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
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

const connectionHint = "Error occurred. Please check your internet connection and try again."

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)

	msg := strings.Trim(err.Error(), " \n")
	switch kind := podcast.Kind(err); {
	case errors.Is(kind, podcast.ErrFetch), errors.Is(kind, podcast.ErrWrite):
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), connectionHint)
		_, _ = fmt.Fprintf(os.Stderr, "%s\n", style.Faint(msg))
	default:
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), msg)
	}

	os.Exit(1)
}
