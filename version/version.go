// Package version tracks the running version and discovers newer releases.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/hlsplay/hlsplay/constant"
	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/network"
	"github.com/hlsplay/hlsplay/util"
	"github.com/hlsplay/hlsplay/where"
	"github.com/metafates/gache"
)

const lookupTimeout = 5 * time.Second

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// ReleasesURL is the GitHub API endpoint of the latest release.
var ReleasesURL = fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", constant.Repository)

// Latest returns the newest released version without the "v" prefix. Lookups are cached for
// two days.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	version, err = fetchLatest(ctx, network.Client, ReleasesURL)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(version)
	return version, nil
}

func fetchLatest(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", &network.StatusError{Code: resp.StatusCode}
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
