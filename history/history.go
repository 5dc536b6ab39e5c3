// Package history tracks and persists completed episode downloads.
package history

import (
	"sort"

	"github.com/metafates/gache"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/where"
)

// cacher provides a disk-backed registry of download records keyed by file name.
var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: filesystem.Store{},
	},
)

// Get returns every download record from the persistent store.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Sorted returns the records ordered by series, then by publication date.
func Sorted() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(saved))
	for _, r := range saved {
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Series != records[j].Series {
			return records[i].Series < records[j].Series
		}
		return records[i].Published.Before(records[j].Published)
	})
	return records, nil
}

// Save records a completed download of d written to path.
// Downloading the same episode again replaces its record.
func Save(d *podcast.Descriptor, path string, size int64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newRecord(d, path, size)
	saved[record.Key()] = record

	return cacher.Set(saved)
}

// Contains reports whether d has been downloaded before.
func Contains(saved map[string]*Record, d *podcast.Descriptor) bool {
	_, ok := saved[d.FileName]
	return ok
}

// Remove permanently deletes a record from the history registry.
func Remove(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.Key())
	return cacher.Set(saved)
}

// Clear deletes every record.
func Clear() error {
	return cacher.Set(make(map[string]*Record))
}
