// Package config holds configuration helpers shared by the CLI commands.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapIO("resolve", "home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// StorePath returns the database file for a file backend. An explicit path
// wins; otherwise the backend's default file inside the data directory is
// used. Backends without a file get an empty path.
func StorePath(backend, path string) (string, error) {
	if path != "" {
		return ExpandHome(path)
	}

	var file string
	switch backend {
	case "bolt":
		file = constants.DefaultBoltFile
	case "sqlite":
		file = constants.DefaultSQLiteFile
	default:
		return "", nil
	}

	dir, err := ExpandHome(constants.DefaultDataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}
