// Package reconcile pairs scraped download links with structured episode records.
package reconcile

import (
	"time"

	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/util"
)

// Mismatch describes a landing page whose link and episode counts differ.
type Mismatch struct {
	Links    int `json:"links"`
	Episodes int `json:"episodes"`
}

// Check reports a Mismatch when the counts differ, nil otherwise.
func Check(links []string, metas []*podcast.Episode) *Mismatch {
	if len(links) == len(metas) {
		return nil
	}
	return &Mismatch{Links: len(links), Episodes: len(metas)}
}

// Reconcile pairs links[i] with metas[i] over the shorter of the two lists,
// drops episodes published before watermark and names the local files.
// Page order is preserved.
func Reconcile(series podcast.Series, links []string, metas []*podcast.Episode, watermark time.Time) []*podcast.Descriptor {
	n := min(len(links), len(metas))

	descriptors := make([]*podcast.Descriptor, 0, n)
	for i := 0; i < n; i++ {
		meta := metas[i]
		if meta.Published.Before(watermark) {
			continue
		}

		descriptors = append(descriptors, &podcast.Descriptor{
			Series:      series.Name,
			Published:   meta.Published,
			Title:       meta.Name,
			SourceURL:   links[i],
			FileName:    FileName(series, meta),
			Description: meta.Description,
			PageURL:     series.URL,
		})
	}

	return descriptors
}

// FileName builds "<compact series>-<YYYYMMDD>-<title>.mp3" stripped of forbidden characters.
func FileName(series podcast.Series, meta *podcast.Episode) string {
	return util.SanitizeFilename(series.Compact() + "-" + meta.Published.Format("20060102") + "-" + meta.Name + ".mp3")
}

// EmbeddedLinks returns the media links carried by the episode records themselves.
// ok is false unless every record carries one.
func EmbeddedLinks(metas []*podcast.Episode) (links []string, ok bool) {
	links = make([]string, 0, len(metas))
	for _, meta := range metas {
		url, present := meta.MediaURL.Get()
		if !present {
			return nil, false
		}
		links = append(links, url)
	}
	return links, len(links) > 0
}
