// Package auth provides a high-level API for persisting and retrieving Trakt credentials from the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"
)

const (
	service     = "trakr-cli"
	accessUser  = "trakt-access-token"
	refreshUser = "trakt-refresh-token"
)

// SetTokens persists the Trakt OAuth access and refresh token pair to the system keyring.
func SetTokens(access, refresh string) error {
	if err := keyring.Set(service, accessUser, access); err != nil {
		return err
	}
	return keyring.Set(service, refreshUser, refresh)
}

// AccessToken retrieves the Trakt OAuth access token from the system keyring.
func AccessToken() (string, error) {
	return keyring.Get(service, accessUser)
}

// RefreshToken retrieves the Trakt OAuth refresh token from the system keyring.
func RefreshToken() (string, error) {
	return keyring.Get(service, refreshUser)
}

// DeleteTokens removes both Trakt OAuth tokens from the system keyring.
func DeleteTokens() error {
	if err := keyring.Delete(service, accessUser); err != nil {
		return err
	}
	return keyring.Delete(service, refreshUser)
}
