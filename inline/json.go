// Package inline serves one-shot queries with machine-readable output.
package inline

import (
	"encoding/json"

	"github.com/trakr-cli/trakr/trakt"
)

// Item is one search result prepared for machine consumption.
type Item struct {
	// Kind is the entity type of the result.
	Kind string `json:"kind"`
	// Score is the search relevance score.
	Score float64 `json:"score"`

	Movie   *trakt.Movie   `json:"movie,omitempty"`
	Show    *trakt.Show    `json:"show,omitempty"`
	Episode *trakt.Episode `json:"episode,omitempty"`
	Person  *trakt.Person  `json:"person,omitempty"`

	// Ratings is the community rating summary (optional).
	Ratings *trakt.RatingStats `json:"ratings,omitempty"`
	// Episodes is the filtered episode selection of a show (optional).
	Episodes []*trakt.Episode `json:"episodes,omitempty"`
}

// Output is the machine-readable envelope inline mode emits.
type Output struct {
	Query  string  `json:"query"`
	Result []*Item `json:"result"`
}

func asJson(items []*Item, query string) ([]byte, error) {
	return json.Marshal(&Output{
		Query:  query,
		Result: items,
	})
}
