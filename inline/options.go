// Package inline implements the non-interactive mode: printing discoveries and selecting episodes by expression.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/podfetch/podfetch/podcast"
	"github.com/samber/lo"
)

// Selector marks the descriptors an expression refers to.
type Selector func([]*podcast.Descriptor) []bool

// Options configures how a discovery result is printed.
type Options struct {
	Out       io.Writer
	Json      bool
	Watermark time.Time
	Quality   podcast.Quality
}

// ParseSelector parses a comma separated list of terms; the union of their matches is selected.
//
//	all        every episode
//	none       no episode
//	first      the first episode
//	last       the last episode
//	N          the Nth episode, counting from 1
//	N-M        episodes N to M inclusive
//	@text@     episodes whose series or title contains text, ignoring case
func ParseSelector(description string) (Selector, error) {
	terms := strings.Split(description, ",")
	matchers := make([]func(i, n int, d *podcast.Descriptor) bool, 0, len(terms))

	for _, term := range terms {
		m, err := parseTerm(strings.TrimSpace(term))
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}

	return func(descriptors []*podcast.Descriptor) []bool {
		n := len(descriptors)
		return lo.Map(descriptors, func(d *podcast.Descriptor, i int) bool {
			return lo.SomeBy(matchers, func(m func(int, int, *podcast.Descriptor) bool) bool {
				return m(i, n, d)
			})
		})
	}, nil
}

func parseTerm(term string) (func(i, n int, d *podcast.Descriptor) bool, error) {
	switch term {
	case "all":
		return func(int, int, *podcast.Descriptor) bool { return true }, nil
	case "none":
		return func(int, int, *podcast.Descriptor) bool { return false }, nil
	case "first":
		return func(i, _ int, _ *podcast.Descriptor) bool { return i == 0 }, nil
	case "last":
		return func(i, n int, _ *podcast.Descriptor) bool { return i == n-1 }, nil
	}

	// Substring: "@text@"
	if len(term) >= 2 && strings.HasPrefix(term, "@") && strings.HasSuffix(term, "@") {
		sub := strings.ToLower(term[1 : len(term)-1])
		return func(_, _ int, d *podcast.Descriptor) bool {
			return strings.Contains(strings.ToLower(d.Series), sub) || strings.Contains(strings.ToLower(d.Title), sub)
		}, nil
	}

	// Range: "1-5"
	if from, to, ok := strings.Cut(term, "-"); ok {
		a, err1 := strconv.ParseUint(from, 10, 16)
		b, err2 := strconv.ParseUint(to, 10, 16)
		if err1 != nil || err2 != nil || a == 0 || b < a {
			return nil, fmt.Errorf("invalid range: %q", term)
		}
		return func(i, _ int, _ *podcast.Descriptor) bool {
			return uint64(i+1) >= a && uint64(i+1) <= b
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(term, 10, 16); err == nil && idx > 0 {
		return func(i, _ int, _ *podcast.Descriptor) bool { return uint64(i+1) == idx }, nil
	}

	return nil, fmt.Errorf("invalid episode selector: %q", term)
}
