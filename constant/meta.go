// Package constant holds fixed application identifiers and build metadata.
package constant

const (
	// Trakr is the canonical application identifier used for filesystem paths and CLI branding.
	Trakr = "trakr"

	// Version is the semantic version stamped into releases.
	Version = "0.1.0"

	// BuildDate is the release date of Version, reported to scrobble endpoints as the app date.
	BuildDate = "2026-08-10"

	// UserAgent identifies the client on every request to the Trakt API.
	UserAgent = Trakr + "/" + Version
)

// Build metadata, injected at release time through ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
