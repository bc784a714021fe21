package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvStore, "bolt")
	t.Setenv(EnvStorePath, "/tmp/games.bolt")
	t.Setenv(EnvDatabaseURL, "https://example.firebaseio.com")
	t.Setenv(EnvDatabaseSecret, "s3cret")
	t.Setenv(EnvCollection, "games")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.StoreBackend)
	assert.Equal(t, "/tmp/games.bolt", cfg.StorePath)
	assert.Equal(t, "https://example.firebaseio.com", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.DatabaseSecret)
	assert.Equal(t, "games", cfg.Collection)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvStore, "")
	t.Setenv(EnvCollection, "")

	cfg, err := loadConfig(writeConfig(t, "format: yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "items", cfg.Collection)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(EnvStore, "")
	t.Setenv(EnvCollection, "")

	file := writeConfig(t, "store: sqlite\ncollection: games\nformat: json\n")
	cfg, err := loadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "games", cfg.Collection)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, file, cfg.ConfigFile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "json", LogLevel: "warn", StoreBackend: "memory"}

	cfg.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg.UpdateFromFlags(false, false, false, "yaml", "error")
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "error", cfg.LogLevel)

	cfg.UpdateStoreFromFlags("", "/data/x.db", "")
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "/data/x.db", cfg.StorePath)
}

func TestExecuteWithConfigFile(t *testing.T) {
	t.Setenv(EnvStore, "")
	a := newTestApp(t, nil)

	file := writeConfig(t, "format: json\n")
	out, err := run(t, a, "--config", file, "items", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retroshelf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
