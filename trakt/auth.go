// Package trakt provides a client for the Trakt.tv REST API.
package trakt

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/auth"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/log"
)

// redirectURI is the out-of-band URI device-less OAuth flows report.
const redirectURI = "urn:ietf:wg:oauth:2.0:oob"

// DeviceCode is the verification handshake returned when device
// authentication begins. The user enters UserCode at VerificationURL while the
// client polls until approval.
type DeviceCode struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

// Token is an OAuth token pair with its issue metadata.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	CreatedAt    int64  `json:"created_at"`
}

// BeginDeviceAuth requests a device code for the configured client id.
func BeginDeviceAuth() (*DeviceCode, error) {
	body := map[string]any{
		"client_id": viper.GetString(key.TraktClientID),
	}

	var code DeviceCode
	if err := post("oauth/device/code", body, &code); err != nil {
		return nil, err
	}

	return &code, nil
}

// PollDeviceToken polls the token endpoint at the handshake's interval until
// the user approves the device, the code expires, or approval fails for good.
// It blocks up to ExpiresIn seconds and stores the token pair in the keyring
// on success.
func PollDeviceToken(code *DeviceCode) (*Token, error) {
	interval := time.Duration(code.Interval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	deadline := time.Now().Add(time.Duration(code.ExpiresIn) * time.Second)

	for time.Now().Before(deadline) {
		time.Sleep(interval)

		body := map[string]any{
			"code":          code.DeviceCode,
			"client_id":     viper.GetString(key.TraktClientID),
			"client_secret": viper.GetString(key.TraktClientSecret),
		}

		var token Token
		err := post("oauth/device/token", body, &token)
		if err == nil {
			if err := auth.SetTokens(token.AccessToken, token.RefreshToken); err != nil {
				return nil, err
			}
			log.Info("device authentication approved, tokens stored")
			return &token, nil
		}

		switch {
		case IsStatus(err, http.StatusBadRequest):
			// Pending: the user has not entered the code yet.
			continue
		case IsStatus(err, http.StatusTooManyRequests):
			// Polling too fast, back off a little.
			interval += time.Second
		case IsStatus(err, http.StatusNotFound):
			return nil, ErrDeviceInvalid
		case IsStatus(err, http.StatusConflict):
			return nil, ErrDeviceUsed
		case IsStatus(err, http.StatusGone):
			return nil, ErrDeviceExpired
		case IsStatus(err, http.StatusTeapot):
			return nil, ErrDeviceDenied
		default:
			return nil, err
		}
	}

	return nil, ErrDeviceExpired
}

// RefreshSession exchanges the stored refresh token for a fresh token pair and
// stores it.
func RefreshSession() (*Token, error) {
	refresh, err := auth.RefreshToken()
	if err != nil || refresh == "" {
		return nil, ErrNotAuthenticated
	}

	body := map[string]any{
		"refresh_token": refresh,
		"client_id":     viper.GetString(key.TraktClientID),
		"client_secret": viper.GetString(key.TraktClientSecret),
		"redirect_uri":  redirectURI,
		"grant_type":    "refresh_token",
	}

	var token Token
	if err := post("oauth/token", body, &token); err != nil {
		return nil, err
	}

	if err := auth.SetTokens(token.AccessToken, token.RefreshToken); err != nil {
		return nil, err
	}

	return &token, nil
}

// Logout removes the stored token pair from the keyring.
func Logout() error {
	return auth.DeleteTokens()
}
