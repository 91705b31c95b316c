// Package key names every configuration setting in one place.
package key

// DefinedFieldsCount is the number of settings the configuration schema defines.
const DefinedFieldsCount = 19

// Trakt API Credentials - these keys identify the registered Trakt application used for every request.
const (
	TraktClientID     = "trakt.client_id"
	TraktClientSecret = "trakt.client_secret"
)

// Calendar Defaults - these keys govern the date window used when none is given.
const (
	CalendarDefaultDays = "calendar.default_days"
	CalendarPersonal    = "calendar.personal"
)

// Metadata Configuration - these keys govern the retrieval of optional enrichment data.
const (
	MetadataFetchRatings = "metadata.fetch_ratings"
)

// Scrobble Tracking - these keys configure the persistence of playback progress.
const (
	ScrobbleSaveProgress = "scrobble.save_progress"
)

// Search - these keys tune query handling and suggestions.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchDefaultKinds         = "search.default_kinds"
)

// Minimalist (Mini) Mode - these keys adjust the reduced prompt-driven interface.
const (
	MiniSearchLimit = "mini.search_limit"
)

// Iconography - these keys select how UI symbols render.
const (
	IconsVariant = "icons.variant"
)

// Response Caching - these keys control the on-disk cache for GET responses.
const (
	CacheSkip = "cache.skip"
)

// Terminal User Interface (TUI) - these keys style and steer the full-screen interface.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowDistribution   = "tui.show_rating_distribution"
)

// Logging - these keys control the application's diagnostic output.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command Line Surface - these settings shape the plain command output and checks.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
