// Package inline implements the non-interactive mode: printing discoveries and selecting episodes by expression.
package inline

import (
	"fmt"
	"os"

	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/discover"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/util"
)

// Write prints a discovery result. Episodes are numbered from 1 across all series,
// matching the indices accepted by ParseSelector.
func Write(result *discover.Result, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.Json {
		return writeJson(options.Out, result, options)
	}

	out := options.Out
	n := 0
	for _, s := range result.Series {
		fmt.Fprintf(out, "%s %s\n", icon.Get(icon.Podcast), style.Bold(s.Series.Name))

		if s.Err != nil {
			fmt.Fprintf(out, "  %s %s\n", icon.Get(icon.Fail), s.Err)
			continue
		}

		if s.Mismatch != nil {
			fmt.Fprintf(out, "  %s %d links but %d episodes on the page, only the first %d were paired\n",
				icon.Get(icon.Warn), s.Mismatch.Links, s.Mismatch.Episodes, min(s.Mismatch.Links, s.Mismatch.Episodes))
		}

		if len(s.Descriptors) == 0 {
			fmt.Fprintf(out, "  %s\n", style.Faint("no new episodes"))
			continue
		}

		for _, d := range s.Descriptors {
			n++
			fmt.Fprintf(out, "  %3d. %s  %s\n", n, style.Faint(d.Published.Format(podcast.DateLayout)), d.Title)
		}
	}

	fmt.Fprintf(out, "\n%s since %s (%s quality)\n",
		style.Fg(color.Purple)(util.Quantify(n, "new episode", "new episodes")),
		options.Watermark.Format(podcast.DateLayout),
		options.Quality,
	)
	return nil
}
