// Package inline serves one-shot queries with machine-readable output.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/trakr-cli/trakr/trakt"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	results, err := lookup(options)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	// Apply result selection logic if a picker is defined.
	var selected []*trakt.SearchResult
	if options.MediaPicker.IsPresent() {
		picker := options.MediaPicker.MustGet()
		if choice := picker(results); choice != nil {
			selected = []*trakt.SearchResult{choice}
		}
	} else {
		selected = results
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*Item{}, options)
		}
		return nil
	}

	items := make([]*Item, 0, len(selected))
	for _, result := range selected {
		item, err := prepareItem(result, options)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	if options.Json {
		return writeJson(options.Out, items, options)
	}

	for _, item := range items {
		if len(item.Episodes) > 0 {
			for _, episode := range item.Episodes {
				fmt.Fprintln(options.Out, episode.Label())
			}
			continue
		}

		if result := itemMedia(item); result != nil {
			fmt.Fprintln(options.Out, result.Label())
		}
	}

	return nil
}

// lookup resolves the requested media: a text search by default, an external
// identifier lookup when an id is given.
func lookup(options *Options) ([]*trakt.SearchResult, error) {
	if options.ID == "" {
		return trakt.SearchResults(options.Query, options.Kinds...)
	}

	media, err := trakt.SearchByID(options.ID, options.IDType)
	if err != nil {
		return nil, err
	}

	results := make([]*trakt.SearchResult, 0, len(media))
	for _, m := range media {
		results = append(results, resultFor(m))
	}
	return results, nil
}

// resultFor wraps a bare entity in the search row shape so id lookups flow
// through the same preparation as text searches.
func resultFor(media trakt.Media) *trakt.SearchResult {
	result := &trakt.SearchResult{Type: string(media.Kind())}
	switch m := media.(type) {
	case *trakt.Movie:
		result.Movie = m
	case *trakt.Show:
		result.Show = m
	case *trakt.Episode:
		result.Episode = m
	case *trakt.Person:
		result.Person = m
	}
	return result
}

// prepareItem enriches one result per the requested options: season listings
// and episode filters for shows, community ratings for movies and shows.
func prepareItem(result *trakt.SearchResult, options *Options) (*Item, error) {
	item := &Item{
		Kind:    result.Type,
		Score:   result.Score,
		Movie:   result.Movie,
		Show:    result.Show,
		Episode: result.Episode,
		Person:  result.Person,
	}

	if item.Show != nil && options.Seasons {
		seasons, err := item.Show.LoadSeasons()
		if err != nil {
			return nil, err
		}

		var episodes []*trakt.Episode
		for _, season := range seasons {
			episodes = append(episodes, season.Episodes...)
		}

		if options.EpisodesFilter.IsPresent() {
			filter := options.EpisodesFilter.MustGet()
			episodes, err = filter(episodes)
			if err != nil {
				return nil, err
			}
			item.Episodes = episodes
		}
	}

	if options.IncludeRatings {
		if media := result.Media(); media != nil {
			item.Ratings = trakt.RatingSummary(media).OrElse(nil)
		}
	}

	return item, nil
}

// itemMedia returns the populated entity of an item for plain text output.
func itemMedia(item *Item) trakt.Media {
	switch {
	case item.Episode != nil:
		return item.Episode
	case item.Movie != nil:
		return item.Movie
	case item.Show != nil:
		return item.Show
	case item.Person != nil:
		return item.Person
	}
	return nil
}

func writeJson(out io.Writer, items []*Item, options *Options) error {
	data, err := asJson(items, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
