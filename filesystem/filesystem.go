// Package filesystem routes every disk access through a swappable afero backend.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs points the backend at the real disk.
func SetOsFs() {
	backend.Fs = afero.NewOsFs()
}

// SetMemMapFs points the backend at a fresh in-memory filesystem. Tests use
// this so nothing they write survives the process.
func SetMemMapFs() {
	backend.Fs = afero.NewMemMapFs()
}
