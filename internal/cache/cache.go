// Package cache provides filesystem-based caching of discovered episode lists.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/where"
)

// MaxAge is the age after which CollectGarbage removes an entry regardless of its TTL.
const MaxAge = 7 * 24 * time.Hour

// GenerateKey derives a deterministic SHA-256 identifier from the given parts.
func GenerateKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes a cached object into target when the entry exists and is younger than ttl.
func Read(key string, target any, ttl time.Duration) bool {
	path := filepath.Join(where.Episodes(), key)
	fsys := filesystem.API()

	info, err := fsys.Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return false
	}

	f, err := fsys.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		log.Warnf("discarding corrupt cache entry %s: %s", key, err)
		return false
	}
	return true
}

// Write persists a serializable object, swapping a temporary file into place.
func Write(key string, data any) error {
	path := filepath.Join(where.Episodes(), key)
	tmpPath := path + ".tmp"
	fsys := filesystem.API()

	f, err := fsys.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return fsys.Rename(tmpPath, path)
}

// CollectGarbage removes entries older than MaxAge in the background.
func CollectGarbage() {
	go func() {
		fsys := filesystem.API()
		_ = fsys.Walk(where.Episodes(), func(path string, info fs.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > MaxAge {
				_ = fsys.Remove(path)
			}
			return nil
		})
	}()
}

// Clear removes every cache entry.
func Clear() error {
	return filesystem.API().RemoveAll(where.Episodes())
}
