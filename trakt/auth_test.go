package trakt

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/trakr-cli/trakr/auth"
)

// restoreTokens puts the package test tokens back after a flow that rewrites them.
func restoreTokens() {
	_ = auth.SetTokens("test-access-token", "test-refresh-token")
}

func TestBeginDeviceAuth(t *testing.T) {
	Convey("BeginDeviceAuth requests a device code for the configured client", t, func() {
		var body map[string]any

		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/device/code", func(w http.ResponseWriter, r *http.Request) {
			body = decodeBody(r)
			fmt.Fprint(w, `{
				"device_code": "dev-123",
				"user_code": "USR-456",
				"verification_url": "https://trakt.tv/activate",
				"expires_in": 600,
				"interval": 5
			}`)
		})

		withServer(mux, func() {
			code, err := BeginDeviceAuth()
			So(err, ShouldBeNil)

			So(body["client_id"], ShouldEqual, "test-client-id")
			So(code.DeviceCode, ShouldEqual, "dev-123")
			So(code.UserCode, ShouldEqual, "USR-456")
			So(code.VerificationURL, ShouldEqual, "https://trakt.tv/activate")
			So(code.Interval, ShouldEqual, 5)
		})
	})
}

func TestPollDeviceToken(t *testing.T) {
	Convey("PollDeviceToken", t, func() {
		defer restoreTokens()

		Convey("Pending polls continue until approval, then the pair is stored", func() {
			polls := 0

			mux := http.NewServeMux()
			mux.HandleFunc("/oauth/device/token", func(w http.ResponseWriter, r *http.Request) {
				polls++
				if polls == 1 {
					// Pending: the user has not entered the code yet.
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				fmt.Fprint(w, `{"access_token": "device-access", "refresh_token": "device-refresh", "expires_in": 7200}`)
			})

			code := &DeviceCode{DeviceCode: "dev-123", ExpiresIn: 30, Interval: 1}

			withServer(mux, func() {
				token, err := PollDeviceToken(code)
				So(err, ShouldBeNil)
				So(token.AccessToken, ShouldEqual, "device-access")
			})

			So(polls, ShouldEqual, 2)

			stored, err := auth.AccessToken()
			So(err, ShouldBeNil)
			So(stored, ShouldEqual, "device-access")
		})

		Convey("A gone code stops polling for good", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusGone)
			})

			code := &DeviceCode{DeviceCode: "dev-123", ExpiresIn: 10, Interval: 1}

			withServer(handler, func() {
				_, err := PollDeviceToken(code)
				So(err, ShouldEqual, ErrDeviceExpired)
			})
		})

		Convey("A denied code stops polling for good", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			})

			code := &DeviceCode{DeviceCode: "dev-123", ExpiresIn: 10, Interval: 1}

			withServer(handler, func() {
				_, err := PollDeviceToken(code)
				So(err, ShouldEqual, ErrDeviceDenied)
			})
		})
	})
}

func TestRefreshSession(t *testing.T) {
	Convey("RefreshSession exchanges the stored refresh token", t, func() {
		defer restoreTokens()

		var body map[string]any

		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
			body = decodeBody(r)
			fmt.Fprint(w, `{"access_token": "fresh-access", "refresh_token": "fresh-refresh", "expires_in": 7200}`)
		})

		withServer(mux, func() {
			token, err := RefreshSession()
			So(err, ShouldBeNil)
			So(token.AccessToken, ShouldEqual, "fresh-access")
		})

		So(body["grant_type"], ShouldEqual, "refresh_token")
		So(body["refresh_token"], ShouldEqual, "test-refresh-token")

		stored, err := auth.AccessToken()
		So(err, ShouldBeNil)
		So(stored, ShouldEqual, "fresh-access")
	})

	Convey("RefreshSession without a stored pair fails before any request", t, func() {
		defer restoreTokens()

		hits := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		})

		withoutTokens(func() {
			withServer(handler, func() {
				_, err := RefreshSession()
				So(err, ShouldEqual, ErrNotAuthenticated)
			})
		})

		So(hits, ShouldEqual, 0)
	})
}

func TestLogout(t *testing.T) {
	Convey("Logout drops the stored pair", t, func() {
		defer restoreTokens()

		So(Authenticated(), ShouldBeTrue)
		So(Logout(), ShouldBeNil)
		So(Authenticated(), ShouldBeFalse)
	})
}
