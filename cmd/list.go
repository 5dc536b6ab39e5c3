package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/inline"
	"github.com/podfetch/podfetch/network"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	addDiscoveryFlags(listCmd)

	listCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	listCmd.Flags().StringP("file", "f", "", "Write the output to this file instead of stdout")
	listCmd.SetOut(os.Stdout)
}

// listCmd runs discovery without downloading anything.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List new episodes without downloading them",
	Long: `Check every subscribed series for episodes published since the watermark and print them.

Episodes are numbered from 1 across all series. The same numbers are accepted by
the --episodes flag of the root command, so a listing can be followed by

  podfetch --episodes 1,3-5

Discovered episodes are cached for discover.cache_ttl minutes, so the second
command does not fetch the landing pages again.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s, err := newSession(cmd)
		handleErr(err)

		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			file   = lo.Must(cmd.Flags().GetString("file"))
			writer io.Writer
		)

		if file != "" {
			f, err := filesystem.API().Create(file)
			handleErr(err)
			defer f.Close()
			writer = f
		} else {
			writer = cmd.OutOrStdout()
		}

		result := discoverWithProgress(ctx, network.NewFetcher(), s, asJson && file == "")
		handleErr(result.Err)

		handleErr(inline.Write(result, &inline.Options{
			Out:       writer,
			Json:      asJson,
			Watermark: s.watermark,
			Quality:   s.quality,
		}))
	},
}

func init() {
	listCmd.AddCommand(listSchemaCmd)
}

// listSchemaCmd prints the JSON Schema of the list output.
var listSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the list --json output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		schema, err := inline.Schema()
		handleErr(err)

		_, err = cmd.OutOrStdout().Write(append(schema, '\n'))
		handleErr(err)
	},
}
