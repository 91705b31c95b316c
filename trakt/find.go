// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/trakr-cli/trakr/log"
	"github.com/trakr-cli/trakr/util"
)

// findRetryLimit bounds how many times a query is shortened before giving up.
const findRetryLimit = 3

// notFoundRef marks a title whose lookup is known to resolve to nothing.
const notFoundRef = ""

// normalizedTitle returns a lowercased, trimmed string for consistent comparison.
func normalizedTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func showRelationKey(title string) string { return "show:" + title }

func movieRelationKey(title string) string { return "movie:" + title }

// SetShowRelation persists a binding between a free-text title and a show.
func SetShowRelation(title string, to *Show) error {
	err := relationCacher.Set(showRelationKey(title), to.IDs.ref())
	if err != nil {
		return err
	}

	if cached := showCacher.Get(to.IDs.ref()); cached.IsAbsent() {
		return showCacher.Set(to.IDs.ref(), to)
	}

	return nil
}

// FindShow returns the show whose title most closely matches the query.
// It levenshtein compares the query against every candidate the search returns,
// progressively dropping trailing words when nothing comes back.
func FindShow(title string) (*Show, error) {
	title = normalizedTitle(title)
	return findShow(title, title, 0, findRetryLimit)
}

func findShow(title, originalTitle string, try, limit int) (*Show, error) {
	if try >= limit {
		err := fmt.Errorf("no results found for show %q", originalTitle)
		log.Error(err)
		_ = relationCacher.Set(showRelationKey(originalTitle), notFoundRef)
		return nil, err
	}

	ref := relationCacher.Get(showRelationKey(title))
	if ref.IsPresent() {
		if ref.MustGet() == notFoundRef {
			return nil, fmt.Errorf("no results found for show %q", title)
		}

		if show, ok := showCacher.Get(ref.MustGet()).Get(); ok {
			if try > 0 {
				_ = relationCacher.Set(showRelationKey(originalTitle), show.IDs.ref())
			}
			return show, nil
		}
	}

	shows, err := SearchShows(title)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	if ref.IsPresent() {
		found, ok := lo.Find(shows, func(item *Show) bool {
			return item.IDs.ref() == ref.MustGet()
		})

		if ok {
			return found, nil
		}

		// The binding exists but its record cache entry aged out and the slug
		// no longer surfaces for this query. Drop the stale binding.
		_ = relationCacher.Delete(showRelationKey(title))
		log.Infof("show %q no longer resolves, dropping stale binding", ref.MustGet())
	}

	if len(shows) == 0 {
		words := strings.Split(title, " ")
		if len(words) <= 2 {
			// Too short to shorten further; jump to the terminal branch.
			return findShow(title, originalTitle, limit, limit)
		}

		alternate := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof("no results for show %q, trying %q", title, alternate)
		return findShow(alternate, originalTitle, try+1, limit)
	}

	closest := lo.MinBy(shows, func(a, b *Show) bool {
		return levenshtein.Distance(
			title,
			normalizedTitle(a.Title),
		) < levenshtein.Distance(
			title,
			normalizedTitle(b.Title),
		)
	})

	log.Info("found closest show match: " + closest.Title)

	save := func(t string) {
		if bound := relationCacher.Get(showRelationKey(t)); bound.IsAbsent() {
			_ = relationCacher.Set(showRelationKey(t), closest.IDs.ref())
		}
	}

	save(title)
	save(originalTitle)

	_ = showCacher.Set(closest.IDs.ref(), closest)
	return closest, nil
}

// bareTitle returns the comparison title of an entity, without year or
// episode decorations.
func bareTitle(media Media) string {
	switch m := media.(type) {
	case *Movie:
		return m.Title
	case *Show:
		return m.Title
	case *Episode:
		return m.Title
	case *Person:
		return m.Name
	}
	return media.Label()
}

// FindClosest resolves a free-text query to the closest titled entity of the
// given kind. An empty kind searches movies and shows together. Movie and show
// lookups go through the relation-cached finders; everything else picks the
// levenshtein-closest search result directly.
func FindClosest(query string, kind Kind) (Media, error) {
	switch kind {
	case KindMovie:
		return FindMovie(query)
	case KindShow:
		return FindShow(query)
	}

	title := normalizedTitle(query)

	kinds := []Kind{kind}
	if kind == "" {
		kinds = []Kind{KindMovie, KindShow}
	}

	results, err := Search(title, kinds...)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no results found for %q", query)
	}

	closest := lo.MinBy(results, func(a, b Media) bool {
		return levenshtein.Distance(
			title,
			normalizedTitle(bareTitle(a)),
		) < levenshtein.Distance(
			title,
			normalizedTitle(bareTitle(b)),
		)
	})

	log.Info("found closest match: " + closest.Label())
	return closest, nil
}

// FindMovie returns the movie whose title most closely matches the query,
// with the same shortening strategy as FindShow.
func FindMovie(title string) (*Movie, error) {
	title = normalizedTitle(title)
	return findMovie(title, title, 0, findRetryLimit)
}

func findMovie(title, originalTitle string, try, limit int) (*Movie, error) {
	if try >= limit {
		err := fmt.Errorf("no results found for movie %q", originalTitle)
		log.Error(err)
		_ = relationCacher.Set(movieRelationKey(originalTitle), notFoundRef)
		return nil, err
	}

	ref := relationCacher.Get(movieRelationKey(title))
	if ref.IsPresent() {
		if ref.MustGet() == notFoundRef {
			return nil, fmt.Errorf("no results found for movie %q", title)
		}

		if movie, ok := movieCacher.Get(ref.MustGet()).Get(); ok {
			if try > 0 {
				_ = relationCacher.Set(movieRelationKey(originalTitle), movie.IDs.ref())
			}
			return movie, nil
		}
	}

	movies, err := SearchMovies(title)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	if ref.IsPresent() {
		found, ok := lo.Find(movies, func(item *Movie) bool {
			return item.IDs.ref() == ref.MustGet()
		})

		if ok {
			return found, nil
		}

		_ = relationCacher.Delete(movieRelationKey(title))
		log.Infof("movie %q no longer resolves, dropping stale binding", ref.MustGet())
	}

	if len(movies) == 0 {
		words := strings.Split(title, " ")
		if len(words) <= 2 {
			return findMovie(title, originalTitle, limit, limit)
		}

		alternate := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof("no results for movie %q, trying %q", title, alternate)
		return findMovie(alternate, originalTitle, try+1, limit)
	}

	closest := lo.MinBy(movies, func(a, b *Movie) bool {
		return levenshtein.Distance(
			title,
			normalizedTitle(a.Title),
		) < levenshtein.Distance(
			title,
			normalizedTitle(b.Title),
		)
	})

	log.Info("found closest movie match: " + closest.Title)

	save := func(t string) {
		if bound := relationCacher.Get(movieRelationKey(t)); bound.IsAbsent() {
			_ = relationCacher.Set(movieRelationKey(t), closest.IDs.ref())
		}
	}

	save(title)
	save(originalTitle)

	_ = movieCacher.Set(closest.IDs.ref(), closest)
	return closest, nil
}
