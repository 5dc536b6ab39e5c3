// Package scrape extracts download links and structured episode data from landing pages.
package scrape

import (
	"strings"

	"github.com/podfetch/podfetch/podcast"
)

// ExtractLinks returns every download link of quality q found in page, in order of appearance.
// A link runs from the quality marker up to the next double quote and is given an "http:" scheme.
// A page without markers yields an empty slice.
func ExtractLinks(page string, q podcast.Quality) []string {
	marker := q.Marker()
	fragments := strings.Split(page, marker)

	links := make([]string, 0, len(fragments)-1)
	for _, fragment := range fragments[1:] {
		tail, _, _ := strings.Cut(fragment, `"`)
		links = append(links, "http:"+marker+tail)
	}

	return links
}

// CountLinks returns the number of links of quality q in page.
func CountLinks(page string, q podcast.Quality) int {
	return strings.Count(page, q.Marker())
}
