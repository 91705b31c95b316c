// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError describes a non-2xx response from the Trakt API.
type APIError struct {
	Status int
	Path   string
}

func (e *APIError) Error() string {
	text := http.StatusText(e.Status)
	if text == "" {
		text = "unknown status"
	}
	return fmt.Sprintf("trakt: %s responded %d %s", e.Path, e.Status, text)
}

// IsStatus reports whether err wraps an APIError carrying the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

var (
	// ErrNotAuthenticated is returned before any request is made when an
	// operation needs a user session and no token is stored.
	ErrNotAuthenticated = errors.New(`not logged in, run "trakr auth login" first`)

	// ErrInvalidRating rejects ratings outside the 1 to 10 scale.
	ErrInvalidRating = errors.New("rating must be between 1 and 10")

	// ErrInvalidIDType rejects lookup id types outside the accepted set.
	ErrInvalidIDType = errors.New("unknown id type")

	// Terminal device authentication states.
	ErrDeviceInvalid = errors.New("device code was not recognized")
	ErrDeviceUsed    = errors.New("device code was already approved")
	ErrDeviceExpired = errors.New("device code expired, restart authentication")
	ErrDeviceDenied  = errors.New("authentication request was denied")
)
