// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/where"
)

// cacheData defines the structured format for persisting cached Trakt records to disk.
type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a typed, mutex-guarded map persisted through gache.
type cacher[K comparable, T any] struct {
	internal   *gache.Cache[*cacheData[K, T]]
	keyWrapper func(K) K
	mu         sync.RWMutex
}

// Get retrieves the value associated with the specified key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	entry, ok := data.Entries[c.keyWrapper(key)]
	if ok {
		return mo.Some(entry)
	}

	return mo.None[T]()
}

// Set stores the value under key.
func (c *cacher[K, T]) Set(key K, t T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		data.Entries[c.keyWrapper(key)] = t
		return c.internal.Set(data)
	}

	internal := &cacheData[K, T]{Entries: make(map[K]T)}
	internal.Entries[c.keyWrapper(key)] = t
	return c.internal.Set(internal)
}

// Delete removes the entry associated with the specified key.
func (c *cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		delete(data.Entries, c.keyWrapper(key))
		return c.internal.Set(data)
	}

	return nil
}

// relationCacher binds free-text titles to resolved slugs so repeated lookups
// skip the search round-trip. Keys are prefixed with the kind, and bindings
// never expire.
var relationCacher = &cacher[string, string]{
	internal: gache.New[*cacheData[string, string]](
		&gache.Options{
			Path:       where.Relations(),
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedTitle,
}

// showCacher persists resolved show records keyed by slug.
var showCacher = &cacher[string, *Show]{
	internal: gache.New[*cacheData[string, *Show]](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "trakt_show_cache.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedTitle,
}

// movieCacher persists resolved movie records keyed by slug.
var movieCacher = &cacher[string, *Movie]{
	internal: gache.New[*cacheData[string, *Movie]](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "trakt_movie_cache.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedTitle,
}

// seasonsCacher persists extended season listings keyed by show slug. Calendar
// assembly hits this once per distinct show instead of once per airing.
var seasonsCacher = &cacher[string, []*Season]{
	internal: gache.New[*cacheData[string, []*Season]](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "trakt_seasons_cache.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedTitle,
}

// ratingsCacher persists community rating summaries keyed by kind and slug.
var ratingsCacher = &cacher[string, *RatingStats]{
	internal: gache.New[*cacheData[string, *RatingStats]](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "trakt_ratings_cache.json"),
			Lifetime:   time.Hour * 24,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedTitle,
}

// failCacher serves as short-term persistence for failed search queries to
// mitigate redundant API pressure during recursive lookups.
var failCacher = &cacher[string, bool]{
	internal: gache.New[*cacheData[string, bool]](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "trakt_fail_cache.json"),
			Lifetime:   time.Minute,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedTitle,
}
