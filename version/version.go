// Package version knows which trakr build is running and whether a newer
// release exists.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/util"
	"github.com/trakr-cli/trakr/where"
	"github.com/metafates/gache"
)

// releaseCacher remembers the last answer from the release registry so the
// update check costs one request a day at most.
var releaseCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24,
	FileSystem: &filesystem.GacheFs{},
})

const releasesURL = "https://api.github.com/repos/trakr-cli/trakr/releases/latest"

// Latest returns the newest published release, without a leading "v".
func Latest() (string, error) {
	cached, expired, err := releaseCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	resp, err := http.Get(releasesURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release registry answered %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" {
		return "", fmt.Errorf("release registry answered without a tag")
	}

	_ = releaseCacher.Set(latest)
	return latest, nil
}
