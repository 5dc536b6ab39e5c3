// Package download streams selected episodes to disk.
package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/history"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/network"
	"github.com/podfetch/podfetch/podcast"
)

const chunkSize = 32 * 1024

// Options configures a download run.
type Options struct {
	// Dir is the output directory. Empty means the working directory.
	Dir string

	// Tag writes an ID3v2 tag in front of streams that do not start with one.
	Tag bool

	// RateLimit caps the bandwidth in bytes per second. 0 means unlimited.
	RateLimit int

	// Cleanup removes the partially written file of a failed download.
	Cleanup bool

	// Record saves each completed download to the history file.
	Record bool

	// Progress is called after every chunk. done counts finished downloads,
	// fraction is in [0, 1] for the current one, or -1 when its size is unknown.
	Progress func(done, total int, d *podcast.Descriptor, fraction float64)
}

// Item is a completed download.
type Item struct {
	Descriptor *podcast.Descriptor
	Path       string
	Size       int64
}

// Report summarises a run.
type Report struct {
	Selected  int
	Completed []*Item

	// Failed is the descriptor whose failure stopped the run.
	Failed *podcast.Descriptor
}

// Complete reports whether every selected episode was downloaded.
func (r *Report) Complete() bool {
	return r.Failed == nil && len(r.Completed) == r.Selected
}

// Run downloads every descriptor whose selection flag is set, one at a time and in order.
// The first failure stops the run: fetch problems wrap podcast.ErrFetch and
// filesystem problems wrap podcast.ErrWrite.
func Run(ctx context.Context, fetcher network.Fetcher, descriptors []*podcast.Descriptor, selection []bool, opts Options) (*Report, error) {
	if len(selection) != len(descriptors) {
		return nil, fmt.Errorf("%w: %d selection flags for %d episodes", podcast.ErrConfig, len(selection), len(descriptors))
	}

	report := &Report{}
	for _, selected := range selection {
		if selected {
			report.Selected++
		}
	}

	for i, d := range descriptors {
		if !selection[i] {
			continue
		}

		done := len(report.Completed)
		progress := func(fraction float64) {
			if opts.Progress != nil {
				opts.Progress(done, report.Selected, d, fraction)
			}
		}

		path := d.Path(opts.Dir)
		log.Infof("downloading %s to %s", d.SourceURL, path)

		size, err := one(ctx, fetcher, d, path, opts, progress)
		if err != nil {
			log.Errorf("download of %q failed: %s", d.Title, err)
			report.Failed = d
			return report, err
		}

		if opts.Record {
			if err := history.Save(d, path, size); err != nil {
				log.Warnf("recording %q in history: %s", d.Title, err)
			}
		}

		report.Completed = append(report.Completed, &Item{Descriptor: d, Path: path, Size: size})
	}

	return report, nil
}

// one downloads a single descriptor to path and returns the number of bytes written.
func one(ctx context.Context, fetcher network.Fetcher, d *podcast.Descriptor, path string, opts Options, progress func(float64)) (int64, error) {
	fsys := filesystem.API()

	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, os.ModePerm); err != nil {
			return 0, fmt.Errorf("%w: %v", podcast.ErrWrite, err)
		}
	}

	body, total, err := fetcher.Fetch(ctx, d.SourceURL)
	if err != nil {
		return 0, asKind(err, podcast.ErrFetch)
	}
	defer body.Close()

	file, err := fsys.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", podcast.ErrWrite, err)
	}

	written, err := stream(ctx, file, body, total, d, opts, progress)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %v", podcast.ErrWrite, closeErr)
	}

	if err != nil {
		if opts.Cleanup {
			if rmErr := fsys.Remove(path); rmErr != nil {
				log.Warnf("removing partial file %s: %s", path, rmErr)
			}
		}
		return written, err
	}

	return written, nil
}

// stream copies body into out, optionally tagging and throttling it.
func stream(ctx context.Context, out io.Writer, body io.Reader, total int64, d *podcast.Descriptor, opts Options, progress func(float64)) (int64, error) {
	var in io.Reader = body
	if opts.RateLimit > 0 {
		in = newLimitedReader(ctx, in, opts.RateLimit)
	}

	buffered := bufio.NewReaderSize(in, chunkSize)

	var written int64
	if opts.Tag {
		head, err := buffered.Peek(len(id3Magic))
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: %v", podcast.ErrFetch, err)
		}

		if !hasTag(head) {
			n, err := writeTag(out, d)
			if err != nil {
				return 0, fmt.Errorf("%w: tag: %v", podcast.ErrWrite, err)
			}
			written += n
		}
	}

	var received int64
	report := func() {
		if total > 0 {
			progress(min(float64(received)/float64(total), 1))
		} else {
			progress(-1)
		}
	}

	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w: %v", podcast.ErrFetch, err)
		}

		n, readErr := buffered.Read(buf)
		if n > 0 {
			m, err := out.Write(buf[:n])
			written += int64(m)
			if err != nil {
				return written, fmt.Errorf("%w: %v", podcast.ErrWrite, err)
			}
			received += int64(n)
			report()
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return written, asKind(readErr, podcast.ErrFetch)
		}
	}

	if total <= 0 {
		progress(1)
	}

	return written, nil
}

// asKind wraps err with kind unless it already carries a failure kind.
func asKind(err, kind error) error {
	if podcast.Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}
