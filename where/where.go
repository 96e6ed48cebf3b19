// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/hlsplay/hlsplay/constant"
	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "HLSPLAY_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the primary configuration directory. HLSPLAY_CONFIG_PATH takes precedence over
// the platform default (XDG_CONFIG_HOME on Linux, the user profile equivalents elsewhere).
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory daily log files are written to.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the resume history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Recordings resolves the directory stream recordings are written to. The recording.dir setting
// wins over the default location under the user's home directory.
func Recordings() string {
	if dir := viper.GetString(key.RecordingDir); dir != "" {
		return ensureDir(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ensureDir(filepath.Join(Config(), "recordings"))
	}
	return ensureDir(filepath.Join(home, "Videos", constant.App))
}

// Temp resolves a volatile directory for IPC sockets and other transient artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
