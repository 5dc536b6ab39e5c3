// Package discover runs the per-series pipeline: fetch the landing page, extract, reconcile.
package discover

import (
	"context"
	"fmt"
	"time"

	"github.com/podfetch/podfetch/internal/cache"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/network"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/reconcile"
	"github.com/podfetch/podfetch/scrape"
	"golang.org/x/sync/errgroup"
)

// Options configures a discovery run. It is passed by value and never mutated.
type Options struct {
	// Watermark drops episodes published before it.
	Watermark time.Time
	Quality   podcast.Quality

	// Workers bounds how many series are processed at once. Values below 1 mean 1.
	Workers int

	// FailFast cancels the remaining series after the first failure.
	FailFast bool

	// PreferEmbedded uses the media links of the structured data when every record has one.
	PreferEmbedded bool

	// CacheTTL reuses a series' descriptors for this long. 0 disables the cache.
	CacheTTL time.Duration

	// OnSeries is called after each series completes. It may be called concurrently.
	OnSeries func(r *SeriesResult)
}

// SeriesResult is the outcome of one series.
type SeriesResult struct {
	Series      podcast.Series        `json:"series"`
	Descriptors []*podcast.Descriptor `json:"episodes"`
	Mismatch    *reconcile.Mismatch   `json:"mismatch,omitempty"`
	Err         error                 `json:"-"`
	Cached      bool                  `json:"-"`
}

// Result holds one SeriesResult per subscription, in catalog order.
type Result struct {
	Series []*SeriesResult

	// Err is the failure that stopped a FailFast run.
	Err error
}

// Descriptors flattens every successful series' descriptors in catalog order.
func (r *Result) Descriptors() []*podcast.Descriptor {
	var out []*podcast.Descriptor
	for _, s := range r.Series {
		if s.Err == nil {
			out = append(out, s.Descriptors...)
		}
	}
	return out
}

// Failed returns the series that could not be processed.
func (r *Result) Failed() []*SeriesResult {
	var out []*SeriesResult
	for _, s := range r.Series {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// Mismatched returns the series whose link and episode counts differed.
func (r *Result) Mismatched() []*SeriesResult {
	var out []*SeriesResult
	for _, s := range r.Series {
		if s.Mismatch != nil {
			out = append(out, s)
		}
	}
	return out
}

// Run processes every subscription. A failing series does not affect the others
// unless FailFast is set.
func Run(ctx context.Context, fetcher network.Fetcher, subs []podcast.Series, opts Options) *Result {
	result := &Result{Series: make([]*SeriesResult, len(subs))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	for i, s := range subs {
		result.Series[i] = &SeriesResult{Series: s}

		g.Go(func() error {
			sr := result.Series[i]
			if err := gctx.Err(); err != nil {
				sr.Err = fmt.Errorf("%w: %s: %v", podcast.ErrFetch, s.Name, err)
				return nil
			}

			sr.Descriptors, sr.Mismatch, sr.Cached, sr.Err = series(gctx, fetcher, s, opts)
			if sr.Err != nil {
				log.Errorf("series %q: %s", s.Name, sr.Err)
			} else if sr.Mismatch != nil {
				log.Warnf("series %q: %d links but %d episodes, only the first %d are used",
					s.Name, sr.Mismatch.Links, sr.Mismatch.Episodes, min(sr.Mismatch.Links, sr.Mismatch.Episodes))
			}

			if opts.OnSeries != nil {
				opts.OnSeries(sr)
			}

			if sr.Err != nil && opts.FailFast {
				return sr.Err
			}
			return nil
		})
	}

	result.Err = g.Wait()
	return result
}

// cached is what the disk cache keeps per series.
type cached struct {
	Descriptors []*podcast.Descriptor `json:"descriptors"`
	Mismatch    *reconcile.Mismatch   `json:"mismatch,omitempty"`
}

func series(ctx context.Context, fetcher network.Fetcher, s podcast.Series, opts Options) ([]*podcast.Descriptor, *reconcile.Mismatch, bool, error) {
	cacheKey := cache.GenerateKey(s.Name, s.URL, opts.Quality.String(), opts.Watermark.Format(podcast.DateLayout), fmt.Sprint(opts.PreferEmbedded))
	if opts.CacheTTL > 0 {
		var entry cached
		if cache.Read(cacheKey, &entry, opts.CacheTTL) {
			log.Debugf("series %q served from cache", s.Name)
			return entry.Descriptors, entry.Mismatch, true, nil
		}
	}

	page, err := network.Page(ctx, fetcher, s.URL)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", s.Name, err)
	}

	descriptors, mismatch, err := FromPage(s, page, opts)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", s.Name, err)
	}

	if opts.CacheTTL > 0 {
		if err := cache.Write(cacheKey, cached{Descriptors: descriptors, Mismatch: mismatch}); err != nil {
			log.Warnf("caching series %q: %s", s.Name, err)
		}
	}

	return descriptors, mismatch, false, nil
}

// FromPage extracts and reconciles the episodes of s from an already fetched landing page.
func FromPage(s podcast.Series, page string, opts Options) ([]*podcast.Descriptor, *reconcile.Mismatch, error) {
	metas, err := scrape.ExtractEpisodes(page)
	if err != nil {
		return nil, nil, err
	}

	links := scrape.ExtractLinks(page, opts.Quality)
	if opts.PreferEmbedded {
		if embedded, ok := reconcile.EmbeddedLinks(metas); ok {
			links = embedded
		}
	}

	log.Infof("series %q: %d links, %d episodes", s.Name, len(links), len(metas))
	return reconcile.Reconcile(s, links, metas, opts.Watermark), reconcile.Check(links, metas), nil
}
