// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"fmt"
	"net/url"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/trakr-cli/trakr/query"
)

// IDType names an external identifier namespace accepted by id lookups.
type IDType string

const (
	IDTypeTraktMovie   IDType = "trakt-movie"
	IDTypeTraktShow    IDType = "trakt-show"
	IDTypeTraktEpisode IDType = "trakt-episode"
	IDTypeIMDB         IDType = "imdb"
	IDTypeTMDB         IDType = "tmdb"
	IDTypeTVDB         IDType = "tvdb"
	IDTypeTVRage       IDType = "tvrage"
)

// validIDTypes is the accepted set, checked before any request goes out.
var validIDTypes = []IDType{
	IDTypeTraktMovie,
	IDTypeTraktShow,
	IDTypeTraktEpisode,
	IDTypeIMDB,
	IDTypeTMDB,
	IDTypeTVDB,
	IDTypeTVRage,
}

// invalidIDTypeError builds the rejection for an unknown id type, suggesting
// the closest accepted one.
func invalidIDTypeError(got IDType) error {
	closest := lo.MinBy(validIDTypes, func(a, b IDType) bool {
		return levenshtein.Distance(string(got), string(a)) < levenshtein.Distance(string(got), string(b))
	})
	return fmt.Errorf("%w %q, did you mean %q?", ErrInvalidIDType, got, closest)
}

// searchRow is the wire shape of one search response row.
type searchRow struct {
	Type    string   `json:"type"`
	Score   float64  `json:"score"`
	Movie   *Movie   `json:"movie"`
	Show    *Show    `json:"show"`
	Episode *Episode `json:"episode"`
	Person  *Person  `json:"person"`
}

// SearchResult is one row of a search response: the relevance score, the type
// tag, and exactly one populated entity arm.
type SearchResult struct {
	// Type is the discriminant the API tagged the row with.
	Type string `json:"type" jsonschema:"description=Entity type of the result."`
	// Score is the relevance score of the match.
	Score float64 `json:"score" jsonschema:"description=Relevance score of the match."`

	Movie   *Movie   `json:"movie,omitempty"`
	Show    *Show    `json:"show,omitempty"`
	Episode *Episode `json:"episode,omitempty"`
	Person  *Person  `json:"person,omitempty"`
}

// Media returns the populated entity, trying arms in a fixed priority order:
// episode, movie, show, person. Rows with an unrecognized type return nil.
func (r *SearchResult) Media() Media {
	switch {
	case r.Episode != nil:
		return r.Episode
	case r.Movie != nil:
		return r.Movie
	case r.Show != nil:
		return r.Show
	case r.Person != nil:
		return r.Person
	}
	return nil
}

// String renders the result for plain list displays.
func (r *SearchResult) String() string {
	media := r.Media()
	if media == nil {
		return r.Type
	}
	return fmt.Sprintf("%s [%s]", media.Label(), media.Kind())
}

// resolve maps a wire row onto a tagged result, populating exactly the arm
// named by the type discriminant. Episode rows absorb the sibling show's title.
// Rows with an unknown discriminant keep their tag and score but no entity.
func (row searchRow) resolve() *SearchResult {
	result := &SearchResult{Type: row.Type, Score: row.Score}

	switch row.Type {
	case "movie":
		result.Movie = row.Movie
	case "show":
		result.Show = row.Show
	case "episode":
		result.Episode = row.Episode
		if result.Episode != nil && row.Show != nil {
			result.Episode.ShowTitle = row.Show.Title
		}
	case "person":
		result.Person = row.Person
	}

	return result
}

// SearchResults runs a free-text search, keeping every response row. Searching
// with no kinds covers movies, shows, episodes and people at once.
func SearchResults(text string, kinds ...Kind) ([]*SearchResult, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	_ = query.Remember(text, 1)

	names := lo.Map(kinds, func(k Kind, _ int) string { return string(k) })
	q := url.Values{}
	q.Set("query", text)

	var rows []searchRow
	if err := get("search/"+strings.Join(names, ","), q, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row searchRow, _ int) *SearchResult {
		return row.resolve()
	}), nil
}

// Search runs a free-text search and unwraps each row into its entity. Rows
// with an unrecognized type come through as nil entries, so positions still
// line up with the response.
func Search(text string, kinds ...Kind) ([]Media, error) {
	results, err := SearchResults(text, kinds...)
	if err != nil {
		return nil, err
	}

	return lo.Map(results, func(r *SearchResult, _ int) Media {
		return r.Media()
	}), nil
}

// SearchShows searches for shows and registers each hit in the show cache.
func SearchShows(text string) ([]*Show, error) {
	text = normalizedTitle(text)
	if _, failed := failCacher.Get(text).Get(); failed {
		return nil, fmt.Errorf("search for %q failed recently, backing off", text)
	}

	results, err := SearchResults(text, KindShow)
	if err != nil {
		_ = failCacher.Set(text, true)
		return nil, err
	}

	shows := make([]*Show, 0, len(results))
	for _, result := range results {
		if result.Show == nil {
			continue
		}
		_ = showCacher.Set(result.Show.IDs.ref(), result.Show)
		shows = append(shows, result.Show)
	}
	return shows, nil
}

// SearchMovies searches for movies and registers each hit in the movie cache.
func SearchMovies(text string) ([]*Movie, error) {
	text = normalizedTitle(text)
	if _, failed := failCacher.Get(text).Get(); failed {
		return nil, fmt.Errorf("search for %q failed recently, backing off", text)
	}

	results, err := SearchResults(text, KindMovie)
	if err != nil {
		_ = failCacher.Set(text, true)
		return nil, err
	}

	movies := make([]*Movie, 0, len(results))
	for _, result := range results {
		if result.Movie == nil {
			continue
		}
		_ = movieCacher.Set(result.Movie.IDs.ref(), result.Movie)
		movies = append(movies, result.Movie)
	}
	return movies, nil
}

// SearchByID looks an entity up by an external identifier. The id type is
// validated locally before any request goes out. These responses carry no type
// tag, so key presence decides each row's entity; rows with no recognizable
// entity are skipped.
func SearchByID(id string, idType IDType) ([]Media, error) {
	if !lo.Contains(validIDTypes, idType) {
		return nil, invalidIDTypeError(idType)
	}

	q := url.Values{}
	q.Set("id", id)
	q.Set("id_type", string(idType))

	var rows []searchRow
	if err := get("search", q, &rows); err != nil {
		return nil, err
	}

	media := make([]Media, 0, len(rows))
	for _, row := range rows {
		switch {
		case row.Episode != nil:
			if row.Show != nil {
				row.Episode.ShowTitle = row.Show.Title
			}
			media = append(media, row.Episode)
		case row.Movie != nil:
			media = append(media, row.Movie)
		case row.Show != nil:
			media = append(media, row.Show)
		case row.Person != nil:
			media = append(media, row.Person)
		}
	}

	return media, nil
}
