package scrape

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/podfetch/podfetch/podcast"
	"github.com/samber/mo"
)

// ldJSONTag opens the structured data blocks of a landing page.
const ldJSONTag = `<script type="application/ld+json">`

// record is one element of the hasPart array.
type record struct {
	Name            string `json:"name"`
	DatePublished   string `json:"datePublished"`
	Description     string `json:"description"`
	ContentURL      string `json:"contentUrl"`
	AssociatedMedia *media `json:"associatedMedia"`
	Audio           *media `json:"audio"`
}

type media struct {
	ContentURL string `json:"contentUrl"`
}

// mediaURL returns the first embedded download link, if any.
func (r *record) mediaURL() mo.Option[string] {
	for _, m := range []*media{r.AssociatedMedia, r.Audio, {ContentURL: r.ContentURL}} {
		if m != nil && m.ContentURL != "" {
			return mo.Some(m.ContentURL)
		}
	}
	return mo.None[string]()
}

// ExtractEpisodes reads the episode records of the last structured data block in page.
// The block's JSON is expected on the line following its opening tag.
// Every failure wraps podcast.ErrParse.
func ExtractEpisodes(page string) ([]*podcast.Episode, error) {
	idx := strings.LastIndex(page, ldJSONTag)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no structured data block", podcast.ErrParse)
	}

	lines := strings.Split(page[idx+len(ldJSONTag):], "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: structured data block has no payload line", podcast.ErrParse)
	}

	var payload struct {
		HasPart *json.RawMessage `json:"hasPart"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(lines[1])), &payload); err != nil {
		return nil, fmt.Errorf("%w: structured data: %v", podcast.ErrParse, err)
	}
	if payload.HasPart == nil {
		return nil, fmt.Errorf("%w: structured data has no hasPart", podcast.ErrParse)
	}

	var records []record
	if err := json.Unmarshal(*payload.HasPart, &records); err != nil {
		return nil, fmt.Errorf("%w: hasPart: %v", podcast.ErrParse, err)
	}

	episodes := make([]*podcast.Episode, 0, len(records))
	for i, r := range records {
		published, err := podcast.Date(r.DatePublished)
		if err != nil {
			return nil, fmt.Errorf("%w: hasPart[%d]: bad datePublished %q", podcast.ErrParse, i, r.DatePublished)
		}

		episodes = append(episodes, &podcast.Episode{
			Name:        r.Name,
			Published:   published,
			Description: r.Description,
			MediaURL:    r.mediaURL(),
		})
	}

	return episodes, nil
}
