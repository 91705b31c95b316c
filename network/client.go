// Package network holds the HTTP client every remote call goes through.
package network

import (
	"net/http"
	"time"
)

// Client is shared across the application so calendar builds, which fan out
// into per-show season lookups, reuse warm connections to the single API host.
var Client = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 20 * time.Second,
	},
}
