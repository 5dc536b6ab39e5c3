package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/podfetch/podfetch/catalog"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/network"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/scrape"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/util"
	"github.com/podfetch/podfetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// loadCatalog reads the catalog, treating a missing file as an empty one.
func loadCatalog() ([]podcast.Series, error) {
	if !lo.Must(filesystem.API().Exists(where.Catalog())) {
		return nil, nil
	}
	return catalog.Load(where.Catalog())
}

func completionSeriesNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	subs, err := loadCatalog()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return lo.Map(subs, func(s podcast.Series, _ int) string {
		return s.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogCmd serves as the parent command for managing subscriptions.
var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"subs"},
	Short:   "Manage the subscribed series",
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().BoolP("urls", "u", false, "Show the landing page of every series")
	catalogListCmd.SetOut(os.Stdout)
}

// catalogListCmd prints the subscribed series in catalog order.
var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the subscribed series",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		subs, err := loadCatalog()
		handleErr(err)

		if len(subs) == 0 {
			cmd.Printf("%s No subscriptions in %s\n", icon.Get(icon.Mark), where.Catalog())
			return
		}

		urls := lo.Must(cmd.Flags().GetBool("urls"))
		for i, s := range subs {
			cmd.Printf("%s %s\n", style.Faint(fmt.Sprintf("%3d.", i+1)), style.Bold(s.Name))
			if urls {
				cmd.Printf("     %s %s\n", icon.Get(icon.Link), style.Fg(color.Blue)(s.URL))
			}
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogAddCmd)
	catalogAddCmd.Flags().StringP("name", "n", "", "Name of the series, the page title is used when omitted")
}

// catalogAddCmd subscribes to a series by its landing page.
var catalogAddCmd = &cobra.Command{
	Use:     "add [url]",
	Short:   "Subscribe to a series by the url of its episodes page",
	Args:    cobra.ExactArgs(1),
	Example: "  podfetch catalog add https://www.bbc.co.uk/programmes/b006qykl/episodes/downloads",
	Run: func(cmd *cobra.Command, args []string) {
		url := strings.TrimSpace(args[0])
		name := lo.Must(cmd.Flags().GetString("name"))

		if name == "" {
			eraser := util.PrintErasable(fmt.Sprintf("%s Fetching %s", icon.Get(icon.Progress), url))
			page, err := network.Page(context.Background(), network.NewFetcher(), url)
			eraser()
			handleErr(err)

			doc, err := scrape.Parse(page)
			handleErr(err)

			name = strings.NewReplacer(",", "", "\n", " ").Replace(doc.Title())
			if name == "" {
				handleErr(fmt.Errorf("%w: %s has no title, pass --name", podcast.ErrParse, url))
			}
		}

		subs, err := loadCatalog()
		handleErr(err)

		subs, err = catalog.Add(subs, podcast.Series{Name: name, URL: url})
		handleErr(err)
		handleErr(catalog.Save(where.Catalog(), subs))

		fmt.Printf(
			"%s subscribed to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(name),
		)
	},
}

func init() {
	catalogCmd.AddCommand(catalogRemoveCmd)
}

// catalogRemoveCmd unsubscribes from a series by name.
var catalogRemoveCmd = &cobra.Command{
	Use:               "remove [name]",
	Aliases:           []string{"rm"},
	Short:             "Unsubscribe from a series",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSeriesNames,
	Run: func(cmd *cobra.Command, args []string) {
		subs, err := loadCatalog()
		handleErr(err)

		subs, err = catalog.Remove(subs, args[0])
		handleErr(err)
		handleErr(catalog.Save(where.Catalog(), subs))

		fmt.Printf(
			"%s unsubscribed from %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(args[0]),
		)
	},
}
