// Package state persists the watermark, the output directory and the quality flag.
//
// The file holds exactly three "key = value" lines in a fixed order:
//
//	last_download = 2024-01-31
//	path = /home/me/podcasts
//	high_quality = True
package state

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/podcast"
)

const (
	keyLastDownload = "last_download"
	keyPath         = "path"
	keyHighQuality  = "high_quality"
)

// State is the content of the state file.
type State struct {
	LastDownload time.Time
	Dir          string
	HighQuality  bool
}

// Quality returns the link quality selected by the high_quality flag.
func (s *State) Quality() podcast.Quality {
	return podcast.ParseQuality(s.HighQuality)
}

// Advance returns a copy of s with the watermark moved to now.
func (s *State) Advance(now time.Time) *State {
	next := *s
	next.LastDownload = podcast.Day(now)
	return &next
}

// Default is the state used when no file exists yet: everything from the last week, in the working directory.
func Default() *State {
	return &State{LastDownload: podcast.Today().AddDate(0, 0, -7)}
}

// Load reads the state file at path. A missing file, a missing line, a bad date
// or a bad boolean wraps podcast.ErrConfig.
func Load(path string) (*State, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: state file %s does not exist", podcast.ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: open state: %v", podcast.ErrConfig, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	values := make([]string, 0, 3)
	for _, want := range []string{keyLastDownload, keyPath, keyHighQuality} {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: state file is missing the %s line", podcast.ErrConfig, want)
		}

		// Values may contain "=" themselves, only the first one separates.
		name, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || strings.TrimSpace(name) != want {
			return nil, fmt.Errorf("%w: expected %s line, got %q", podcast.ErrConfig, want, scanner.Text())
		}
		values = append(values, strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read state: %v", podcast.ErrConfig, err)
	}

	last, err := podcast.Date(values[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", podcast.ErrConfig, keyLastDownload, err)
	}

	high, err := strconv.ParseBool(values[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q is not a boolean", podcast.ErrConfig, keyHighQuality, values[2])
	}

	return &State{
		LastDownload: last,
		Dir:          values[1],
		HighQuality:  high,
	}, nil
}

// Save writes s to path in the canonical layout.
func Save(path string, s *State) error {
	fsys := filesystem.API()
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("%w: %v", podcast.ErrConfig, err)
		}
	}

	if err := fsys.WriteFile(path, []byte(s.String()), 0644); err != nil {
		return fmt.Errorf("%w: write state: %v", podcast.ErrConfig, err)
	}
	return nil
}

// String renders the canonical file content.
func (s *State) String() string {
	return fmt.Sprintf(
		"%s = %s\n%s = %s\n%s = %s\n",
		keyLastDownload, s.LastDownload.Format(podcast.DateLayout),
		keyPath, s.Dir,
		keyHighQuality, formatBool(s.HighQuality),
	)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
