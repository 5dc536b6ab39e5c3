package history

import (
	"fmt"
	"time"

	"github.com/podfetch/podfetch/podcast"
)

// Record is a completed download preserved in the history file.
type Record struct {
	Series       string    `json:"series"`
	Title        string    `json:"title"`
	Published    time.Time `json:"published"`
	FileName     string    `json:"file_name"`
	Path         string    `json:"path"`
	SourceURL    string    `json:"source_url"`
	Size         int64     `json:"size"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Key identifies the episode a record belongs to.
func (r *Record) Key() string {
	return r.FileName
}

func (r *Record) String() string {
	return fmt.Sprintf("%s : %s (%s)", r.Series, r.Title, r.Published.Format(podcast.DateLayout))
}

func newRecord(d *podcast.Descriptor, path string, size int64) *Record {
	return &Record{
		Series:       d.Series,
		Title:        d.Title,
		Published:    d.Published,
		FileName:     d.FileName,
		Path:         path,
		SourceURL:    d.SourceURL,
		Size:         size,
		DownloadedAt: time.Now(),
	}
}
