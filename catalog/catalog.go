// Package catalog reads and writes the subscription list.
//
// The file starts with a header row followed by one "name, url" row per series.
// A row is split at its first comma, so names never contain one and quotes are
// kept as they are.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/podcast"
)

// Header is the first row written by Save.
const Header = "name, url"

// Load reads the catalog at path. Row order is preserved and blank lines are skipped.
// A missing file or a malformed row wraps podcast.ErrConfig.
func Load(path string) ([]podcast.Series, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: catalog %s does not exist", podcast.ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: open catalog: %v", podcast.ErrConfig, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses catalog rows from r.
func Read(r io.Reader) ([]podcast.Series, error) {
	scanner := bufio.NewScanner(r)

	// header
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: catalog header: %v", podcast.ErrConfig, err)
		}
		return []podcast.Series{}, nil
	}

	series := make([]podcast.Series, 0)
	for line := 2; scanner.Scan(); line++ {
		row := strings.TrimSpace(scanner.Text())
		if row == "" {
			continue
		}

		name, url, ok := strings.Cut(row, ",")
		if !ok {
			return nil, fmt.Errorf("%w: catalog line %d: expected \"name, url\"", podcast.ErrConfig, line)
		}

		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if name == "" || url == "" {
			return nil, fmt.Errorf("%w: catalog line %d: empty name or url", podcast.ErrConfig, line)
		}

		series = append(series, podcast.Series{Name: name, URL: url})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: catalog: %v", podcast.ErrConfig, err)
	}

	return series, nil
}

// Save writes the header and one row per series, replacing the file at path.
func Save(path string, series []podcast.Series) error {
	fsys := filesystem.API()
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("%w: %v", podcast.ErrConfig, err)
		}
	}

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, s := range series {
		b.WriteString(s.Name)
		b.WriteString(", ")
		b.WriteString(s.URL)
		b.WriteString("\n")
	}

	if err := fsys.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("%w: write catalog: %v", podcast.ErrConfig, err)
	}
	return nil
}
