// Package filesystem routes every file access through a swappable afero backend.
//
// Commands run on the OS filesystem; tests install an in-memory or read-only
// backend so nothing touches the disk.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the OS filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs installs an empty in-memory filesystem.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}

// Use installs an arbitrary backend, e.g. a read-only view in tests.
func Use(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// Store lets file-backed stores such as gache write through the active backend.
// It resolves the backend on every call, so swapping it later is honoured.
type Store struct{}

func (Store) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (Store) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
