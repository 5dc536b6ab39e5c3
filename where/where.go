// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "PODFETCH_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths on Darwin and Windows.
// Direct override: The path resolution can be explicitly specified via the PODFETCH_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
// Compliance: Adheres to the XDG_CACHE_HOME specification or platform-specific equivalent.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		// Fallback: Revert to a localized cache directory if the system-provided path is inaccessible.
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the absolute path to the directory used for application diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Catalog resolves the subscription catalog file.
// A non-empty catalog.path setting takes precedence over the config directory.
func Catalog() string {
	if custom := viper.GetString(key.CatalogPath); custom != "" {
		return custom
	}
	return filepath.Join(Config(), "podcasts_url.csv")
}

// State resolves the watermark file.
// A non-empty state.path setting takes precedence over the config directory.
func State() string {
	if custom := viper.GetString(key.StatePath); custom != "" {
		return custom
	}
	return filepath.Join(Config(), "configure.txt")
}

// History resolves the absolute path to the download history persistence file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Episodes resolves the directory holding cached landing page discoveries.
func Episodes() string {
	return ensureDir(filepath.Join(Cache(), "episodes"))
}

// Temp resolves a unique, volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
