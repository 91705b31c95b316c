// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/log"
)

// RatingStats is the community rating summary for a single item.
type RatingStats struct {
	// Rating is the weighted average from 0 to 10.
	Rating float64 `json:"rating" jsonschema:"description=Weighted average rating from 0 to 10."`
	// Votes counts every submitted rating.
	Votes int `json:"votes" jsonschema:"description=Total number of submitted ratings."`
	// Distribution maps each score from "1" to "10" onto its vote count.
	Distribution map[string]int `json:"distribution" jsonschema:"description=Vote count per score."`
}

// RatingSummary fetches the community rating for a movie or show, serving
// cached values when fresh. It enriches listings and never fails them: every
// problem degrades to an absent value. Other kinds and disabled metadata
// fetching are absent too.
func RatingSummary(media Media) mo.Option[*RatingStats] {
	if !viper.GetBool(key.MetadataFetchRatings) {
		return mo.None[*RatingStats]()
	}

	kind := media.Kind()
	if kind != KindMovie && kind != KindShow {
		return mo.None[*RatingStats]()
	}

	ref := media.ids().ref()
	if ref == "" {
		return mo.None[*RatingStats]()
	}

	cacheKey := string(kind) + ":" + ref
	if stats := ratingsCacher.Get(cacheKey); stats.IsPresent() {
		return stats
	}

	var stats RatingStats
	if err := get(kind.plural()+"/"+ref+"/ratings", nil, &stats); err != nil {
		log.Error(err)
		return mo.None[*RatingStats]()
	}

	_ = ratingsCacher.Set(cacheKey, &stats)
	return mo.Some(&stats)
}
