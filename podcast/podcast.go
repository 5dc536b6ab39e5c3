// Package podcast defines the records shared by discovery, selection and download.
package podcast

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/samber/mo"
)

// DateLayout is the layout of dates in structured episode data and in the state file.
const DateLayout = "2006-01-02"

// Series is a subscription: a display name and the landing page listing its episodes.
type Series struct {
	Name string `json:"name" jsonschema:"description=Display name of the series"`
	URL  string `json:"url" jsonschema:"description=Landing page listing the episodes"`
}

// Compact returns the series name with all whitespace removed.
func (s Series) Compact() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s.Name)
}

// Episode is one record of a landing page's structured data.
type Episode struct {
	Name        string
	Published   time.Time
	Description string
	MediaURL    mo.Option[string]
}

// Descriptor is a downloadable episode produced by reconciliation.
type Descriptor struct {
	Series      string    `json:"series" jsonschema:"description=Series display name"`
	Published   time.Time `json:"published" jsonschema:"description=Publication date (UTC midnight)"`
	Title       string    `json:"title" jsonschema:"description=Episode title"`
	SourceURL   string    `json:"source_url" jsonschema:"description=Media download link"`
	FileName    string    `json:"file_name" jsonschema:"description=Sanitized local file name"`
	Description string    `json:"description,omitempty" jsonschema:"description=Episode synopsis"`
	PageURL     string    `json:"page_url,omitempty" jsonschema:"description=Landing page of the series"`
}

// Path joins the file name onto dir. An empty dir means the working directory.
func (d *Descriptor) Path(dir string) string {
	if dir == "" {
		return d.FileName
	}
	return filepath.Join(dir, d.FileName)
}

// Date parses a YYYY-MM-DD string into a UTC midnight time.
func Date(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local date at UTC midnight.
func Today() time.Time {
	return Day(time.Now())
}
