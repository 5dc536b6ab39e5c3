package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/reflow/truncate"
	"github.com/podfetch/podfetch/catalog"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/discover"
	"github.com/podfetch/podfetch/download"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/inline"
	"github.com/podfetch/podfetch/internal/cache"
	"github.com/podfetch/podfetch/key"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/mini"
	"github.com/podfetch/podfetch/network"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/state"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/tui"
	"github.com/podfetch/podfetch/util"
	"github.com/podfetch/podfetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addDiscoveryFlags registers the flags shared by every command that runs discovery.
func addDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("series", "s", []string{}, "Only check series whose name fuzzy matches one of these")
	cmd.Flags().StringP("since", "d", "", "Override the watermark for this run (YYYY-MM-DD)")
	cmd.Flags().BoolP("high-quality", "Q", false, "Use high quality links for this run")
	cmd.Flags().Bool("standard-quality", false, "Use standard quality links for this run")
	cmd.MarkFlagsMutuallyExclusive("high-quality", "standard-quality")
	cmd.Flags().BoolP("refresh", "r", false, "Ignore cached discovery results")

	lo.Must0(cmd.RegisterFlagCompletionFunc("series", completionSeriesNames))
}

// addSelectionFlags registers the flags of commands that select and download episodes.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Download every new episode without asking")
	cmd.Flags().BoolP("mini", "m", false, "Ask with a simple prompt instead of the full screen list")
	cmd.Flags().StringP("episodes", "e", "", "Select episodes by expression (all, none, first, last, N, N-M, @text@)")
	cmd.MarkFlagsMutuallyExclusive("yes", "mini", "episodes")
	cmd.Flags().StringP("output", "o", "", "Download into this directory for this run")
	cmd.Flags().Bool("keep-watermark", false, "Do not move the watermark after downloading")
}

// session is the input of one discovery run.
type session struct {
	state     *state.State
	series    []podcast.Series
	watermark time.Time
	quality   podcast.Quality
}

// newSession loads the catalog and the state file and applies the one-run overrides.
func newSession(cmd *cobra.Command) (*session, error) {
	if !lo.Must(filesystem.API().Exists(where.State())) {
		return nil, fmt.Errorf(
			"%w: no state file at %s\nrun %s to create it",
			podcast.ErrConfig, where.State(), style.Fg(color.Yellow)(constant.App+" state init"),
		)
	}

	if !lo.Must(filesystem.API().Exists(where.Catalog())) {
		return nil, fmt.Errorf(
			"%w: no catalog at %s\nrun %s to subscribe to a series",
			podcast.ErrConfig, where.Catalog(), style.Fg(color.Yellow)(constant.App+" catalog add"),
		)
	}

	st, err := state.Load(where.State())
	if err != nil {
		return nil, err
	}

	subs, err := catalog.Load(where.Catalog())
	if err != nil {
		return nil, err
	}

	s := &session{
		state:     st,
		series:    subs,
		watermark: st.LastDownload,
		quality:   st.Quality(),
	}

	if queries := lo.Must(cmd.Flags().GetStringSlice("series")); len(queries) > 0 {
		s.series = catalog.Filter(subs, queries)
		if len(s.series) == 0 {
			return nil, fmt.Errorf("%w: no series matches %s", podcast.ErrConfig, strings.Join(queries, ", "))
		}
	}

	if since := lo.Must(cmd.Flags().GetString("since")); since != "" {
		s.watermark, err = podcast.Date(since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since: %s", podcast.ErrConfig, err)
		}
	}

	if lo.Must(cmd.Flags().GetBool("refresh")) {
		if err := cache.Clear(); err != nil {
			log.Warnf("clearing the discovery cache: %s", err)
		}
	}

	switch {
	case lo.Must(cmd.Flags().GetBool("high-quality")):
		s.quality = podcast.High
	case lo.Must(cmd.Flags().GetBool("standard-quality")):
		s.quality = podcast.Standard
	}

	return s, nil
}

func (s *session) options() discover.Options {
	return discover.Options{
		Watermark:      s.watermark,
		Quality:        s.quality,
		Workers:        viper.GetInt(key.DiscoverWorkers),
		FailFast:       viper.GetBool(key.DiscoverFailFast),
		PreferEmbedded: viper.GetBool(key.DiscoverPreferEmbedded),
		CacheTTL:       time.Duration(viper.GetInt(key.DiscoverCacheTTL)) * time.Minute,
	}
}

// discoverWithProgress runs discovery while printing how many series are done.
func discoverWithProgress(ctx context.Context, fetcher network.Fetcher, s *session, quiet bool) *discover.Result {
	opts := s.options()

	if !quiet {
		var (
			mu     sync.Mutex
			done   int
			eraser = func() {}
		)

		show := func() {
			eraser()
			eraser = util.PrintErasable(fmt.Sprintf(
				"%s Checking series %d/%d",
				icon.Get(icon.Progress),
				done,
				len(s.series),
			))
		}

		show()
		opts.OnSeries = func(r *discover.SeriesResult) {
			mu.Lock()
			defer mu.Unlock()
			done++
			show()
		}
		defer func() { eraser() }()
	}

	return discover.Run(ctx, fetcher, s.series, opts)
}

// warn prints every failed and mismatched series of a discovery result.
func warn(result *discover.Result) {
	for _, r := range result.Failed() {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), r.Series.Name, r.Err)
	}

	for _, r := range result.Mismatched() {
		fmt.Fprintf(
			os.Stderr,
			"%s %s: %d links but %d episodes on the page, only the first %d were paired\n",
			style.Fg(color.Yellow)(icon.Get(icon.Warn)),
			r.Series.Name,
			r.Mismatch.Links,
			r.Mismatch.Episodes,
			min(r.Mismatch.Links, r.Mismatch.Episodes),
		)
	}
}

// selectEpisodes turns the selection flags of cmd into one flag per descriptor.
func selectEpisodes(cmd *cobra.Command, descriptors []*podcast.Descriptor) ([]bool, error) {
	switch {
	case lo.Must(cmd.Flags().GetBool("yes")):
		return lo.Map(descriptors, func(*podcast.Descriptor, int) bool { return true }), nil
	case cmd.Flags().Changed("episodes"):
		selector, err := inline.ParseSelector(lo.Must(cmd.Flags().GetString("episodes")))
		if err != nil {
			return nil, err
		}
		return selector(descriptors), nil
	case lo.Must(cmd.Flags().GetBool("mini")):
		return mini.Select(descriptors)
	default:
		return tui.Select(descriptors)
	}
}

// downloadWithProgress runs the download executor with a progress bar on stdout.
func downloadWithProgress(ctx context.Context, fetcher network.Fetcher, descriptors []*podcast.Descriptor, selection []bool, dir string) (*download.Report, error) {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	eraser := func() {}

	opts := download.Options{
		Dir:       dir,
		Tag:       viper.GetBool(key.DownloadTag),
		RateLimit: viper.GetInt(key.DownloadRateLimit) * 1024,
		Cleanup:   viper.GetBool(key.DownloadCleanupPartial),
		Record:    viper.GetBool(key.HistorySave),
		Progress: func(done, total int, d *podcast.Descriptor, fraction float64) {
			eraser()

			var shown string
			if fraction < 0 {
				shown = style.Faint("downloading")
			} else {
				shown = bar.ViewAs(fraction)
			}

			eraser = util.PrintErasable(fmt.Sprintf(
				"%s [%d/%d] %s %s",
				icon.Get(icon.Download),
				done+1,
				total,
				shown,
				truncate.StringWithTail(d.Title, 40, "..."),
			))
		},
	}

	report, err := download.Run(ctx, fetcher, descriptors, selection, opts)
	eraser()
	return report, err
}

// fetch is the default command: discover, select, download, advance the watermark.
func fetch(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	fetcher := network.NewFetcher()
	result := discoverWithProgress(ctx, fetcher, s, false)
	if result.Err != nil {
		return result.Err
	}
	warn(result)

	descriptors := result.Descriptors()
	if len(descriptors) == 0 {
		fmt.Printf("%s No new episodes since %s\n", icon.Get(icon.Mark), s.watermark.Format(podcast.DateLayout))
		return nil
	}

	selection, err := selectEpisodes(cmd, descriptors)
	if errors.Is(err, tui.ErrCancelled) || errors.Is(err, mini.ErrCancelled) {
		fmt.Printf("%s Nothing downloaded\n", icon.Get(icon.Mark))
		return nil
	}
	if err != nil {
		return err
	}

	dir := s.state.Dir
	if cmd.Flags().Changed("output") {
		dir = lo.Must(cmd.Flags().GetString("output"))
	}

	report, err := downloadWithProgress(ctx, fetcher, descriptors, selection, dir)
	if report != nil {
		var size int64
		for _, item := range report.Completed {
			size += item.Size
		}

		if len(report.Completed) > 0 {
			fmt.Printf(
				"%s Downloaded %s (%s)\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				util.Quantify(len(report.Completed), "episode", "episodes"),
				util.HumanBytes(size),
			)
		}
	}
	if err != nil {
		return err
	}

	// A partial run must not hide the episodes of the series it skipped.
	partial := len(result.Failed()) > 0 || cmd.Flags().Changed("series")
	if partial || !report.Complete() || lo.Must(cmd.Flags().GetBool("keep-watermark")) {
		log.Infof("watermark kept at %s", s.state.LastDownload.Format(podcast.DateLayout))
		return nil
	}

	next := s.state.Advance(time.Now())
	if err := state.Save(where.State(), next); err != nil {
		return err
	}

	log.Infof("watermark advanced to %s", next.LastDownload.Format(podcast.DateLayout))
	return nil
}
