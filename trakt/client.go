// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/auth"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/internal/cache"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/log"
	"github.com/trakr-cli/trakr/network"
)

// baseURL points at the production API. Tests swap it for a local server.
var baseURL = "https://api.trakt.tv"

// apiVersion is sent as the trakt-api-version header on every request.
const apiVersion = "2"

// request dispatches a single API call and decodes the JSON response into out
// when out is non-nil. The stored access token is attached whenever present, so
// public endpoints transparently serve personalized responses for logged-in users.
func request(method, path string, query url.Values, body, out any) error {
	endpoint := baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, endpoint, payload)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("trakt-api-version", apiVersion)
	req.Header.Set("trakt-api-key", viper.GetString(key.TraktClientID))

	if token, err := auth.AccessToken(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debugf("%s %s", method, path)
	resp, err := network.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Path: path}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// get dispatches a GET request, serving and refreshing the local response cache
// unless caching is disabled.
func get(path string, query url.Values, out any) error {
	encoded := ""
	if query != nil {
		encoded = query.Encode()
	}

	skipCache := viper.GetBool(key.CacheSkip) || out == nil
	cacheKey := cache.GenerateKey(path, encoded)

	if !skipCache && cache.Read(cacheKey, out) {
		log.Debugf("cache hit for %s", path)
		return nil
	}

	if err := request(http.MethodGet, path, query, nil, out); err != nil {
		return err
	}

	if !skipCache {
		if err := cache.Write(cacheKey, out); err != nil {
			log.Error(err)
		}
	}

	return nil
}

// getFresh dispatches a GET request bypassing the response cache. Library reads
// go through here so a just-submitted write shows up immediately.
func getFresh(path string, query url.Values, out any) error {
	return request(http.MethodGet, path, query, nil, out)
}

// post dispatches a POST request with a JSON body.
func post(path string, body, out any) error {
	return request(http.MethodPost, path, nil, body, out)
}

// Replay re-submits a captured write payload against its original endpoint.
// The offline queue drains through here once connectivity returns.
func Replay(path string, payload json.RawMessage) error {
	return post(path, payload, nil)
}

// Authenticated reports whether an access token is stored in the keyring.
func Authenticated() bool {
	token, err := auth.AccessToken()
	return err == nil && token != ""
}

// requireAuth guards operations that are meaningless without a user session.
func requireAuth() error {
	if !Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
