// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the media entity types the API serves.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindShow    Kind = "show"
	KindEpisode Kind = "episode"
	KindPerson  Kind = "person"

	// KindAny leaves the kind unconstrained in list calls.
	KindAny Kind = ""
)

// AllKinds is the default search surface when no kind is requested.
var AllKinds = []Kind{KindMovie, KindShow, KindEpisode, KindPerson}

// ParseKind maps user input onto a Kind, accepting singular and plural forms.
func ParseKind(s string) (Kind, error) {
	normalized := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	switch normalized {
	case "movie":
		return KindMovie, nil
	case "show":
		return KindShow, nil
	case "episode":
		return KindEpisode, nil
	case "person", "people":
		return KindPerson, nil
	}
	return KindAny, fmt.Errorf("unknown media kind %q", s)
}

// plural returns the collection form used by sync payload containers and list paths.
func (k Kind) plural() string {
	if k == KindPerson {
		return "people"
	}
	return string(k) + "s"
}

// IDs carries every identifier namespace the API reports for an entity.
type IDs struct {
	// Trakt is the numeric identifier on Trakt itself.
	Trakt int `json:"trakt,omitempty" jsonschema:"description=Numeric id on Trakt."`
	// Slug is the URL-safe identifier used in canonical Trakt paths.
	Slug string `json:"slug,omitempty" jsonschema:"description=URL-safe id used in Trakt paths."`
	// IMDB is the IMDb identifier, e.g. tt0903747.
	IMDB string `json:"imdb,omitempty" jsonschema:"description=IMDb id."`
	// TMDB is the numeric identifier on The Movie Database.
	TMDB int `json:"tmdb,omitempty" jsonschema:"description=Numeric id on The Movie Database."`
	// TVDB is the numeric identifier on TheTVDB.
	TVDB int `json:"tvdb,omitempty" jsonschema:"description=Numeric id on TheTVDB."`
	// TVRage is the numeric identifier on the defunct TVRage service.
	TVRage int `json:"tvrage,omitempty" jsonschema:"description=Numeric id on TVRage."`
}

// ref returns the identifier used in URL paths: the slug when present,
// otherwise the numeric trakt id. Empty when neither is known.
func (i IDs) ref() string {
	if i.Slug != "" {
		return i.Slug
	}
	if i.Trakt > 0 {
		return strconv.Itoa(i.Trakt)
	}
	return ""
}

// Media is implemented by every entity the API can return or accept.
type Media interface {
	// Kind names the entity type.
	Kind() Kind
	// Label is the human-readable display name.
	Label() string
	// ids returns the identifier set used in sync payload entries.
	ids() IDs
	// container wraps the entity in the singular JSON object comment and
	// scrobble payloads expect, e.g. {"movie": {...}}.
	container() map[string]any
}

// Movie is a feature film record.
type Movie struct {
	// Title of the movie.
	Title string `json:"title" jsonschema:"description=Title of the movie."`
	// Year the movie was released.
	Year int `json:"year,omitempty" jsonschema:"description=Release year."`
	// IDs identifying the movie across services.
	IDs IDs `json:"ids" jsonschema:"description=Ids of the movie across services."`
	// Released is the release date as YYYY-MM-DD. Calendar listings carry the
	// regional theatrical or disc date here.
	Released string `json:"released,omitempty" jsonschema:"description=Release date as YYYY-MM-DD."`
	// Overview is the plot summary.
	Overview string `json:"overview,omitempty" jsonschema:"description=Plot summary."`
	// Runtime in minutes.
	Runtime int `json:"runtime,omitempty" jsonschema:"description=Runtime in minutes."`
	// Trailer is the trailer URL.
	Trailer string `json:"trailer,omitempty" jsonschema:"description=Trailer URL."`
	// Homepage is the official site URL.
	Homepage string `json:"homepage,omitempty" jsonschema:"description=Official site URL."`
	// Status is the release status, e.g. released or in production.
	Status string `json:"status,omitempty" jsonschema:"description=Release status."`
}

func (m *Movie) Kind() Kind { return KindMovie }

// Label returns the display name, with the release year when known.
func (m *Movie) Label() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	return m.Title
}

func (m *Movie) ids() IDs { return m.IDs }

func (m *Movie) container() map[string]any {
	return map[string]any{"movie": map[string]any{
		"title": m.Title,
		"year":  m.Year,
		"ids":   m.IDs,
	}}
}

// Show is a television series record.
type Show struct {
	// Title of the show.
	Title string `json:"title" jsonschema:"description=Title of the show."`
	// Year the show first aired.
	Year int `json:"year,omitempty" jsonschema:"description=Year the show first aired."`
	// IDs identifying the show across services.
	IDs IDs `json:"ids" jsonschema:"description=Ids of the show across services."`
	// Overview is the plot summary.
	Overview string `json:"overview,omitempty" jsonschema:"description=Plot summary."`
	// FirstAired is the premiere timestamp.
	FirstAired time.Time `json:"first_aired,omitempty" jsonschema:"description=Premiere timestamp."`
	// Runtime is the typical episode runtime in minutes.
	Runtime int `json:"runtime,omitempty" jsonschema:"description=Typical episode runtime in minutes."`
	// Network airing the show.
	Network string `json:"network,omitempty" jsonschema:"description=Network airing the show."`
	// Status is the airing status, e.g. returning series or ended.
	Status string `json:"status,omitempty" jsonschema:"description=Airing status."`
	// AiredEpisodes is the number of episodes aired so far.
	AiredEpisodes int `json:"aired_episodes,omitempty" jsonschema:"description=Number of episodes aired so far."`

	// Seasons is populated lazily by LoadSeasons, or pruned to a single
	// season with a single episode by calendar assembly.
	Seasons []*Season `json:"seasons,omitempty" jsonschema:"description=Seasons with their episodes."`
}

func (s *Show) Kind() Kind { return KindShow }

// Label returns the display name, with the premiere year when known.
func (s *Show) Label() string {
	if s.Year > 0 {
		return fmt.Sprintf("%s (%d)", s.Title, s.Year)
	}
	return s.Title
}

func (s *Show) ids() IDs { return s.IDs }

func (s *Show) container() map[string]any {
	return map[string]any{"show": map[string]any{
		"title": s.Title,
		"year":  s.Year,
		"ids":   s.IDs,
	}}
}

// LoadSeasons returns the show's seasons with episodes attached, fetching them
// on first use and serving the season cache afterwards.
func (s *Show) LoadSeasons() ([]*Season, error) {
	if len(s.Seasons) > 0 {
		return s.Seasons, nil
	}

	ref := s.IDs.ref()
	if ref == "" {
		return nil, fmt.Errorf("show %q has no usable identifier", s.Title)
	}

	seasons, ok := seasonsCacher.Get(ref).Get()
	if !ok {
		q := url.Values{}
		q.Set("extended", "episodes")

		if err := get("shows/"+ref+"/seasons", q, &seasons); err != nil {
			return nil, err
		}

		_ = seasonsCacher.Set(ref, seasons)
	}

	for _, season := range seasons {
		for _, episode := range season.Episodes {
			episode.ShowTitle = s.Title
		}
	}

	s.Seasons = seasons
	return seasons, nil
}

// Season groups the episodes of one broadcast season.
type Season struct {
	// Number of the season. Season 0 collects specials.
	Number int `json:"number" jsonschema:"description=Season number. Season 0 collects specials."`
	// IDs identifying the season across services.
	IDs IDs `json:"ids" jsonschema:"description=Ids of the season across services."`
	// EpisodeCount is the total number of episodes in the season.
	EpisodeCount int `json:"episode_count,omitempty" jsonschema:"description=Total number of episodes."`
	// AiredEpisodes is the number of episodes aired so far.
	AiredEpisodes int `json:"aired_episodes,omitempty" jsonschema:"description=Number of episodes aired so far."`
	// Episodes of the season, present on extended season listings.
	Episodes []*Episode `json:"episodes,omitempty" jsonschema:"description=Episodes of the season."`
}

// Episode is a single episode record.
type Episode struct {
	// Season number the episode belongs to.
	Season int `json:"season" jsonschema:"description=Season number the episode belongs to."`
	// Number of the episode within its season.
	Number int `json:"number" jsonschema:"description=Episode number within its season."`
	// Title of the episode.
	Title string `json:"title" jsonschema:"description=Title of the episode."`
	// IDs identifying the episode across services.
	IDs IDs `json:"ids" jsonschema:"description=Ids of the episode across services."`
	// Overview is the plot summary.
	Overview string `json:"overview,omitempty" jsonschema:"description=Plot summary."`
	// Rating is the community rating from 0 to 10.
	Rating float64 `json:"rating,omitempty" jsonschema:"description=Community rating from 0 to 10."`
	// FirstAired is the original airing timestamp.
	FirstAired time.Time `json:"first_aired,omitempty" jsonschema:"description=Original airing timestamp."`

	// AiredAt is the airing timestamp inside a calendar window, carried from
	// the calendar row rather than the episode fragment.
	AiredAt time.Time `json:"-"`
	// ShowTitle names the parent show when the API returned the episode
	// beside it, as search results and calendars do.
	ShowTitle string `json:"-"`
}

func (e *Episode) Kind() Kind { return KindEpisode }

// Label renders the conventional SSxEE form, prefixed with the show when known.
func (e *Episode) Label() string {
	code := fmt.Sprintf("%dx%02d", e.Season, e.Number)
	parts := make([]string, 0, 3)
	if e.ShowTitle != "" {
		parts = append(parts, e.ShowTitle)
	}
	parts = append(parts, code)
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	return strings.Join(parts, " ")
}

func (e *Episode) ids() IDs { return e.IDs }

func (e *Episode) container() map[string]any {
	c := map[string]any{"episode": map[string]any{
		"season": e.Season,
		"number": e.Number,
		"ids":    e.IDs,
	}}
	if e.ShowTitle != "" {
		c["show"] = map[string]any{"title": e.ShowTitle}
	}
	return c
}

// Person is a cast or crew member record.
type Person struct {
	// Name of the person.
	Name string `json:"name" jsonschema:"description=Name of the person."`
	// IDs identifying the person across services.
	IDs IDs `json:"ids" jsonschema:"description=Ids of the person across services."`
	// Biography text.
	Biography string `json:"biography,omitempty" jsonschema:"description=Biography text."`
	// Birthday as YYYY-MM-DD.
	Birthday string `json:"birthday,omitempty" jsonschema:"description=Birthday as YYYY-MM-DD."`
	// Death date as YYYY-MM-DD, empty while alive.
	Death string `json:"death,omitempty" jsonschema:"description=Death date as YYYY-MM-DD."`
	// Birthplace of the person.
	Birthplace string `json:"birthplace,omitempty" jsonschema:"description=Birthplace."`
	// Homepage is the official site URL.
	Homepage string `json:"homepage,omitempty" jsonschema:"description=Official site URL."`
}

func (p *Person) Kind() Kind { return KindPerson }

func (p *Person) Label() string { return p.Name }

func (p *Person) ids() IDs { return p.IDs }

func (p *Person) container() map[string]any {
	return map[string]any{"person": map[string]any{
		"name": p.Name,
		"ids":  p.IDs,
	}}
}

// WebURL returns the media's page on trakt.tv. Episodes carry no slug of
// their own, so they resolve through the id search redirect. Empty when no
// identifier is known.
func WebURL(media Media) string {
	ids := media.ids()
	if media.Kind() != KindEpisode && ids.Slug != "" {
		return fmt.Sprintf("https://trakt.tv/%s/%s", media.Kind().plural(), ids.Slug)
	}
	if ids.Trakt > 0 {
		return fmt.Sprintf("https://trakt.tv/search/trakt/%d?id_type=%s", ids.Trakt, media.Kind())
	}
	return ""
}
