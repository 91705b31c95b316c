package trakt

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// capture is a test handler recording the last request it served.
type capture struct {
	hits   int
	path   string
	body   map[string]any
	status int
}

func (c *capture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.hits++
	c.path = r.URL.Path
	c.body = decodeBody(r)

	status := c.status
	if status == 0 {
		status = http.StatusCreated
	}
	w.WriteHeader(status)
}

// firstEntry digs the single payload entry out of a captured plural container.
func firstEntry(body map[string]any, container string) map[string]any {
	entries, ok := body[container].([]any)
	if !ok || len(entries) == 0 {
		return nil
	}
	entry, _ := entries[0].(map[string]any)
	return entry
}

func testMovie() *Movie {
	return &Movie{Title: "Heat", Year: 1995, IDs: IDs{Trakt: 51, Slug: "heat-1995"}}
}

func testEpisode() *Episode {
	return &Episode{Season: 2, Number: 13, Title: "Face Off", IDs: IDs{Trakt: 213}, ShowTitle: "Breaking Bad"}
}

func TestComment(t *testing.T) {
	Convey("Comment", t, func() {
		server := &capture{}

		Convey("Short comments post as plain comments", func() {
			withServer(server, func() {
				So(Comment(testMovie(), "Tense from the first minute.", false, false), ShouldBeNil)
			})

			So(server.path, ShouldEqual, "/comments")
			So(server.body["comment"], ShouldEqual, "Tense from the first minute.")
			So(server.body["review"], ShouldEqual, false)
			So(server.body["spoiler"], ShouldEqual, false)
			So(server.body["movie"], ShouldNotBeNil)
		})

		Convey("Comments beyond 200 characters are promoted to reviews", func() {
			long := strings.Repeat("pacing ", 40)

			withServer(server, func() {
				So(Comment(testMovie(), long, false, false), ShouldBeNil)
			})

			So(server.body["review"], ShouldEqual, true)
		})

		Convey("The spoiler flag passes through", func() {
			withServer(server, func() {
				So(Comment(testMovie(), "The ending!", true, false), ShouldBeNil)
			})

			So(server.body["spoiler"], ShouldEqual, true)
		})
	})
}

func TestRate(t *testing.T) {
	Convey("Rate", t, func() {
		server := &capture{}

		Convey("Ratings outside 1 to 10 are rejected before any request", func() {
			withServer(server, func() {
				So(errors.Is(Rate(testMovie(), 0, time.Time{}), ErrInvalidRating), ShouldBeTrue)
				So(errors.Is(Rate(testMovie(), 11, time.Time{}), ErrInvalidRating), ShouldBeTrue)
			})

			So(server.hits, ShouldEqual, 0)
		})

		Convey("The entry lands in the kind's plural container with its ids", func() {
			withServer(server, func() {
				So(Rate(testMovie(), 9, time.Time{}), ShouldBeNil)
			})

			So(server.path, ShouldEqual, "/sync/ratings")

			entry := firstEntry(server.body, "movies")
			So(entry, ShouldNotBeNil)
			So(entry["rating"], ShouldEqual, 9)

			ids, _ := entry["ids"].(map[string]any)
			So(ids["slug"], ShouldEqual, "heat-1995")
		})

		Convey("A zero timestamp means now", func() {
			withServer(server, func() {
				So(Rate(testMovie(), 7, time.Time{}), ShouldBeNil)
			})

			entry := firstEntry(server.body, "movies")
			ratedAt, err := time.Parse(time.RFC3339, entry["rated_at"].(string))
			So(err, ShouldBeNil)
			So(time.Since(ratedAt), ShouldBeLessThan, time.Minute)
		})

		Convey("An explicit timestamp is kept", func() {
			ratedAt := time.Date(2026, 1, 15, 20, 30, 0, 0, time.UTC)

			withServer(server, func() {
				So(Rate(testEpisode(), 8, ratedAt), ShouldBeNil)
			})

			entry := firstEntry(server.body, "episodes")
			So(entry["rated_at"], ShouldEqual, "2026-01-15T20:30:00Z")
		})
	})
}

func TestHistory(t *testing.T) {
	Convey("History writes", t, func() {
		server := &capture{}

		Convey("AddToHistory stamps the watch time", func() {
			watchedAt := time.Date(2026, 2, 2, 22, 0, 0, 0, time.UTC)

			withServer(server, func() {
				So(AddToHistory(testEpisode(), watchedAt), ShouldBeNil)
			})

			So(server.path, ShouldEqual, "/sync/history")

			entry := firstEntry(server.body, "episodes")
			So(entry["watched_at"], ShouldEqual, "2026-02-02T22:00:00Z")
		})

		Convey("RemoveFromHistory sends the ids alone", func() {
			withServer(server, func() {
				So(RemoveFromHistory(testMovie()), ShouldBeNil)
			})

			So(server.path, ShouldEqual, "/sync/history/remove")

			entry := firstEntry(server.body, "movies")
			So(entry["ids"], ShouldNotBeNil)
			So(entry["watched_at"], ShouldBeNil)
		})
	})
}

func TestWatchlistAndCollection(t *testing.T) {
	Convey("Watchlist and collection writes", t, func() {
		server := &capture{}

		Convey("Watchlist add and remove hit their endpoints", func() {
			withServer(server, func() {
				So(AddToWatchlist(testMovie()), ShouldBeNil)
			})
			So(server.path, ShouldEqual, "/sync/watchlist")

			withServer(server, func() {
				So(RemoveFromWatchlist(testMovie()), ShouldBeNil)
			})
			So(server.path, ShouldEqual, "/sync/watchlist/remove")
		})

		Convey("Collection add stamps the collection time", func() {
			withServer(server, func() {
				So(AddToCollection(testMovie(), time.Time{}), ShouldBeNil)
			})

			So(server.path, ShouldEqual, "/sync/collection")

			entry := firstEntry(server.body, "movies")
			So(entry["collected_at"], ShouldNotBeNil)
		})

		Convey("Episodes land in the episodes container", func() {
			withServer(server, func() {
				So(AddToWatchlist(testEpisode()), ShouldBeNil)
			})

			So(firstEntry(server.body, "episodes"), ShouldNotBeNil)
		})
	})
}

func TestSyncErrorWrapping(t *testing.T) {
	Convey("Failed writes carry their payload for deferred replay", t, func() {
		server := &capture{status: http.StatusInternalServerError}

		withServer(server, func() {
			err := AddToWatchlist(testMovie())
			So(err, ShouldNotBeNil)

			var syncErr *SyncError
			So(errors.As(err, &syncErr), ShouldBeTrue)
			So(syncErr.Path, ShouldEqual, "sync/watchlist")
			So(string(syncErr.Body), ShouldContainSubstring, "movies")
			So(IsStatus(err, http.StatusInternalServerError), ShouldBeTrue)
		})
	})
}

func TestSyncRequiresAuth(t *testing.T) {
	Convey("Library writes fail before any request without a session", t, func() {
		server := &capture{}

		withoutTokens(func() {
			withServer(server, func() {
				So(Rate(testMovie(), 9, time.Time{}), ShouldEqual, ErrNotAuthenticated)
				So(AddToHistory(testMovie(), time.Time{}), ShouldEqual, ErrNotAuthenticated)
				So(AddToWatchlist(testMovie()), ShouldEqual, ErrNotAuthenticated)
				So(Comment(testMovie(), "grounded", false, false), ShouldEqual, ErrNotAuthenticated)
			})
		})

		So(server.hits, ShouldEqual, 0)
	})
}
