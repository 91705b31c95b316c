// Package filesystem routes every disk access through a swappable afero backend.
package filesystem

import (
	"io"
	"os"
)

// GacheFs exposes the active backend through the narrow interface the gache
// library persists its caches with, so cached state follows backend swaps.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
