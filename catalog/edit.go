package catalog

import (
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/podfetch/podfetch/podcast"
	"github.com/samber/lo"
)

// Add appends s. A series whose landing page is already subscribed is rejected.
func Add(series []podcast.Series, s podcast.Series) ([]podcast.Series, error) {
	if s.Name == "" || s.URL == "" {
		return nil, fmt.Errorf("%w: series needs a name and a url", podcast.ErrConfig)
	}
	if strings.ContainsAny(s.Name, ",\n") {
		return nil, fmt.Errorf("%w: series name %q must not contain commas or line breaks", podcast.ErrConfig, s.Name)
	}

	if existing, ok := lo.Find(series, func(item podcast.Series) bool {
		return item.URL == s.URL
	}); ok {
		return nil, fmt.Errorf("%w: %s is already subscribed as %q", podcast.ErrConfig, s.URL, existing.Name)
	}

	return append(series, s), nil
}

// Remove drops every series named name, ignoring case.
// When nothing matches the error suggests the closest name.
func Remove(series []podcast.Series, name string) ([]podcast.Series, error) {
	kept := lo.Reject(series, func(item podcast.Series, _ int) bool {
		return strings.EqualFold(item.Name, name)
	})

	if len(kept) == len(series) {
		if len(series) == 0 {
			return nil, fmt.Errorf("%w: the catalog is empty", podcast.ErrConfig)
		}
		closest := lo.MinBy(series, func(a, b podcast.Series) bool {
			return levenshtein.Distance(name, a.Name) < levenshtein.Distance(name, b.Name)
		})
		return nil, fmt.Errorf("%w: no series named %q, did you mean %q?", podcast.ErrConfig, name, closest.Name)
	}

	return kept, nil
}

// Filter keeps the series whose name fuzzily matches any of queries, in catalog order.
// No queries keeps everything.
func Filter(series []podcast.Series, queries []string) []podcast.Series {
	if len(queries) == 0 {
		return series
	}

	return lo.Filter(series, func(item podcast.Series, _ int) bool {
		return lo.SomeBy(queries, func(q string) bool {
			return fuzzy.MatchNormalizedFold(q, item.Name)
		})
	})
}
