package trakt

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/auth"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/key"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
	viper.Set(key.TraktClientID, "test-client-id")
	viper.Set(key.TraktClientSecret, "test-client-secret")
	viper.Set(key.CacheSkip, true)
	lo.Must0(auth.SetTokens("test-access-token", "test-refresh-token"))
}

// withServer points the client at a local test server for the duration of fn.
func withServer(handler http.Handler, fn func()) {
	server := httptest.NewServer(handler)
	defer server.Close()

	prev := baseURL
	baseURL = server.URL
	defer func() { baseURL = prev }()

	fn()
}

// withoutTokens clears the stored token pair for the duration of fn.
func withoutTokens(fn func()) {
	_ = auth.DeleteTokens()
	defer func() { _ = auth.SetTokens("test-access-token", "test-refresh-token") }()

	fn()
}

// decodeBody reads a captured request body into a generic map.
func decodeBody(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	return body
}

func TestRequestHeaders(t *testing.T) {
	Convey("Every request carries the API headers", t, func() {
		var captured http.Header

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r.Header.Clone()
			fmt.Fprint(w, "{}")
		})

		withServer(handler, func() {
			var out map[string]any
			err := get("ping", nil, &out)
			So(err, ShouldBeNil)
		})

		So(captured.Get("trakt-api-version"), ShouldEqual, "2")
		So(captured.Get("trakt-api-key"), ShouldEqual, "test-client-id")
		So(captured.Get("Content-Type"), ShouldEqual, "application/json")
		So(captured.Get("User-Agent"), ShouldEqual, constant.UserAgent)
		So(captured.Get("Authorization"), ShouldEqual, "Bearer test-access-token")
	})

	Convey("The bearer header is omitted when no token is stored", t, func() {
		var captured http.Header

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r.Header.Clone()
			fmt.Fprint(w, "{}")
		})

		withoutTokens(func() {
			withServer(handler, func() {
				var out map[string]any
				So(get("ping", nil, &out), ShouldBeNil)
			})
		})

		So(captured.Get("Authorization"), ShouldBeEmpty)
	})
}

func TestAPIError(t *testing.T) {
	Convey("Non-2xx responses surface as APIError", t, func() {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		withServer(handler, func() {
			var out map[string]any
			err := get("shows/nope", nil, &out)

			So(err, ShouldNotBeNil)
			So(IsStatus(err, http.StatusNotFound), ShouldBeTrue)
			So(IsStatus(err, http.StatusBadRequest), ShouldBeFalse)
			So(err.Error(), ShouldContainSubstring, "shows/nope")
			So(err.Error(), ShouldContainSubstring, "404")
		})
	})
}

func TestReplay(t *testing.T) {
	Convey("Replay re-submits the captured payload verbatim", t, func() {
		var body map[string]any
		var path string

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			body = decodeBody(r)
			w.WriteHeader(http.StatusCreated)
		})

		withServer(handler, func() {
			err := Replay("sync/history", json.RawMessage(`{"movies":[{"ids":{"slug":"heat-1995"}}]}`))
			So(err, ShouldBeNil)
		})

		So(path, ShouldEqual, "/sync/history")
		So(body["movies"], ShouldNotBeNil)
	})
}

func TestAuthenticated(t *testing.T) {
	Convey("Authenticated follows the stored token pair", t, func() {
		So(Authenticated(), ShouldBeTrue)

		withoutTokens(func() {
			So(Authenticated(), ShouldBeFalse)
		})

		So(Authenticated(), ShouldBeTrue)
	})
}
