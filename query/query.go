// Package query remembers what the user searched for and suggests it back.
package query

import (
	"strings"

	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// record is one remembered query. Hits weigh how often and how deliberately
// it was used, suggestions surface higher-hit queries first.
type record struct {
	Hits int    `json:"hits"`
	Text string `json:"text"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// memo keeps per-prefix suggestion lists for the lifetime of the process so
// typing in the TUI does not hit the disk on every keystroke.
var memo = make(map[string][]*record)

// Remember stores a query or bumps its hit count by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)

	known, expired, err := cacher.Get()
	if expired || err != nil || known == nil {
		known = make(map[string]*record)
	}

	if rec, ok := known[q]; ok {
		rec.Hits += weight
	} else {
		known[q] = &record{Hits: weight, Text: q}
	}

	return cacher.Set(known)
}

// Suggest returns the best suggestion for a partial input, if any.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzy-matching the partial input,
// best first. Disabled through config it returns nothing.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	records, ok := memo[q]
	if !ok {
		records = matches(q)
		memo[q] = records
	}

	return lo.Map(records, func(r *record, _ int) string {
		return r.Text
	})
}

// matches loads the persisted registry and filters it against the input.
func matches(q string) []*record {
	known, expired, err := cacher.Get()
	if err != nil || expired || known == nil {
		return nil
	}

	var records []*record
	for _, rec := range known {
		if fuzzy.Match(q, rec.Text) {
			records = append(records, rec)
		}
	}

	slices.SortFunc(records, func(a, b *record) int {
		return b.Hits - a.Hits
	})

	return records
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
