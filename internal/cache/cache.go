// Package cache provides localized filesystem-based caching for API response payloads.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/where"
)

// TTL bounds how long a cached GET response stays servable. Calendars shift daily,
// so entries age out well before a default window rolls over.
const TTL = 6 * time.Hour

func getDir() string {
	dir := filepath.Join(where.Cache(), "responses")
	_ = filesystem.API().MkdirAll(dir, 0755)
	return dir
}

// GenerateKey generates a deterministic SHA-256 hash from a request path and encoded query for use as a cache identifier.
func GenerateKey(path, query string) string {
	hash := sha256.Sum256([]byte(path + "?" + query))
	return hex.EncodeToString(hash[:])
}

// Read loads the cached payload for key into target. It reports false for
// missing, expired or undecodable entries.
func Read(key string, target interface{}) bool {
	path := filepath.Join(getDir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	if err := decoder.Decode(target); err != nil {
		return false
	}
	return true
}

// Write stores data under key, swapping the file in atomically.
func Write(key string, data interface{}) error {
	path := filepath.Join(getDir(), key)
	tmpPath := path + ".tmp"

	f, err := filesystem.API().Create(tmpPath)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage prunes expired cache entries in the background.
func CollectGarbage() {
	go collectGarbage()
}

func collectGarbage() {
	_ = afero.Walk(filesystem.API(), getDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			_ = filesystem.API().Remove(path)
		}
		return nil
	})
}
