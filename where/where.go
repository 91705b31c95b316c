// Package where resolves the directories and files trakr persists state in.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/filesystem"
)

// EnvConfigPath overrides the configuration directory when set.
const EnvConfigPath = "TRAKR_CONFIG_PATH"

// mkdir creates path if missing and hands it back.
func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory: the EnvConfigPath override when
// set, the platform's user config dir otherwise.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.Trakr))
}

// Cache returns the cache directory, falling back to a relative one when the
// platform reports no user cache dir.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}

	return mkdir(filepath.Join(base, constant.Trakr))
}

// Logs returns the directory log files are written to.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Temp returns a volatile directory for transient artifacts.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.Trakr))
}

// History is the scrobble progress file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queue is the offline write queue, replayed on the next start.
func Queue() string {
	return filepath.Join(Config(), "queue.jsonl")
}

// Relations is the title-to-slug binding registry. Bindings never expire, so
// they live beside the configuration rather than the cache.
func Relations() string {
	return filepath.Join(Config(), "relations.json")
}

// Queries is the search suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
