package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/discover"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/network"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/scrape"
	"github.com/podfetch/podfetch/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

// scrapeCmd groups the landing page diagnostics.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Diagnose how landing pages are read",
}

func init() {
	scrapeCmd.AddCommand(scrapeInspectCmd)
	scrapeInspectCmd.Flags().StringP("since", "d", "", "Only pair episodes published on or after this date (YYYY-MM-DD)")
	scrapeInspectCmd.Flags().BoolP("high-quality", "Q", false, "Pair the high quality links")
	scrapeInspectCmd.Flags().BoolP("embedded", "E", false, "Prefer the media links embedded in the structured data")
	scrapeInspectCmd.SetOut(os.Stdout)
}

// scrapeInspectCmd shows what podfetch sees on a landing page.
var scrapeInspectCmd = &cobra.Command{
	Use:   "inspect [url or file]",
	Short: "Show the links, structured data and paired episodes of a landing page",
	Args:  cobra.ExactArgs(1),
	Example: "  podfetch scrape inspect https://www.bbc.co.uk/programmes/b006qykl/episodes/downloads\n" +
		"  podfetch scrape inspect ./saved-page.html",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			target = args[0]
			page   string
			err    error
		)

		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			page, err = network.Page(context.Background(), network.NewFetcher(), target)
		} else {
			var data []byte
			data, err = filesystem.API().ReadFile(target)
			page = string(data)
		}
		handleErr(err)

		var watermark time.Time
		if since := lo.Must(cmd.Flags().GetString("since")); since != "" {
			watermark, err = podcast.Date(since)
			handleErr(err)
		}

		quality := podcast.ParseQuality(lo.Must(cmd.Flags().GetBool("high-quality")))
		heading := style.New().Bold(true).Foreground(color.HiPurple).Render

		doc, err := scrape.Parse(page)
		handleErr(err)

		cmd.Println(heading("Page"))
		cmd.Printf("  title            %s\n", doc.Title())
		cmd.Printf("  ld+json blocks   %d\n", len(doc.StructuredData()))
		cmd.Printf("  standard links   %d\n", scrape.CountLinks(page, podcast.Standard))
		cmd.Printf("  high links       %d\n", scrape.CountLinks(page, podcast.High))
		cmd.Println()

		series := podcast.Series{Name: lo.Ternary(doc.Title() != "", doc.Title(), "Series"), URL: target}
		descriptors, mismatch, err := discover.FromPage(series, page, discover.Options{
			Watermark:      watermark,
			Quality:        quality,
			PreferEmbedded: lo.Must(cmd.Flags().GetBool("embedded")),
		})
		if err != nil {
			cmd.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), err)
			return
		}

		if mismatch != nil {
			cmd.Printf(
				"%s %d links but %d episodes, only the first %d are paired\n\n",
				style.Fg(color.Yellow)(icon.Get(icon.Warn)),
				mismatch.Links,
				mismatch.Episodes,
				min(mismatch.Links, mismatch.Episodes),
			)
		}

		cmd.Println(heading(fmt.Sprintf("Episodes (%s quality)", quality)))
		if len(descriptors) == 0 {
			cmd.Println(style.Faint("  none"))
			return
		}

		for i, d := range descriptors {
			cmd.Printf("  %3d. %s  %s\n", i+1, style.Faint(d.Published.Format(podcast.DateLayout)), d.Title)
			cmd.Printf("       %s\n", d.FileName)
			cmd.Printf("       %s %s\n", icon.Get(icon.Link), style.Fg(color.Blue)(d.SourceURL))
		}
	},
}
