// Package inline serves one-shot queries with machine-readable output.
package inline

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

// episodeCodePattern matches the conventional SSxEE episode coordinates.
var episodeCodePattern = regexp.MustCompile(`^(?P<season>\d+)x(?P<number>\d+)$`)

type (
	// MediaPicker selects a single result from a search response.
	MediaPicker func([]*trakt.SearchResult) *trakt.SearchResult
	// EpisodesFilter narrows the flattened episode list of a show.
	EpisodesFilter func([]*trakt.Episode) ([]*trakt.Episode, error)
)

type Options struct {
	Out   io.Writer
	Query string
	Kinds []trakt.Kind

	// ID switches from text search to an external identifier lookup.
	ID     string
	IDType trakt.IDType

	Json           bool
	IncludeRatings bool
	Seasons        bool
	MediaPicker    mo.Option[MediaPicker]
	EpisodesFilter mo.Option[EpisodesFilter]
}

// ParseMediaPicker builds a result picker from its CLI description.
func ParseMediaPicker(kind, value string) (MediaPicker, error) {
	switch kind {
	case "first":
		return func(results []*trakt.SearchResult) *trakt.SearchResult {
			if len(results) == 0 {
				return nil
			}
			return results[0]
		}, nil
	case "last":
		return func(results []*trakt.SearchResult) *trakt.SearchResult {
			if len(results) == 0 {
				return nil
			}
			return results[len(results)-1]
		}, nil
	case "exact":
		return func(results []*trakt.SearchResult) *trakt.SearchResult {
			for _, r := range results {
				if media := r.Media(); media != nil && media.Label() == value {
					return r
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(results []*trakt.SearchResult) *trakt.SearchResult {
			if len(results) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(results)-1))
			return results[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseEpisodesFilter parses a string description of an episode filter.
// Format: "first", "last", "all", "1-5", "@text@", "2x13", "7".
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	if description == "first" {
		return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[:1], nil
		}, nil
	}
	if description == "last" {
		return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[len(episodes)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
			return episodes, nil
		}, nil
	}

	// Coordinates: "2x13" selects one episode by season and number.
	if groups := util.ReGroups(episodeCodePattern, description); len(groups) > 0 {
		season, _ := strconv.Atoi(groups["season"])
		number, _ := strconv.Atoi(groups["number"])
		return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
			return lo.Filter(episodes, func(e *trakt.Episode, _ int) bool {
				return e.Season == season && e.Number == number
			}), nil
		}, nil
	}

	// Range: "1-5" keeps list positions from one bound to the other.
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
					start := util.Min(from, uint64(len(episodes)))
					end := util.Min(to+1, uint64(len(episodes)))
					if start > end {
						return []*trakt.Episode{}, nil
					}
					return episodes[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@" matches against episode titles.
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
			return lo.Filter(episodes, func(e *trakt.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Title), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(episodes []*trakt.Episode) ([]*trakt.Episode, error) {
			if uint64(len(episodes)) <= idx {
				return []*trakt.Episode{}, nil
			}
			return []*trakt.Episode{episodes[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
