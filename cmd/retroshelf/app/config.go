package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/retroshelf/pkg/constants"
)

// Environment variables read by LoadConfig.
const (
	EnvStore          = "RETROSHELF_STORE"
	EnvStorePath      = "RETROSHELF_STORE_PATH"
	EnvDatabaseURL    = "RETROSHELF_DATABASE_URL"
	EnvDatabaseSecret = "RETROSHELF_DATABASE_SECRET"
	EnvCollection     = "RETROSHELF_COLLECTION"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Store configuration
	StoreBackend   string
	StorePath      string
	DatabaseURL    string
	DatabaseSecret string
	Collection     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.retroshelf.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindEnv(v)

	v.SetDefault("store", constants.DefaultStoreBackend)
	v.SetDefault("collection", constants.DefaultCollection)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".retroshelf")
	}

	// Read config file (ignore error if not found)
	if err := v.ReadInConfig(); err != nil && configFile != "" {
		return nil, err
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		StoreBackend:   v.GetString("store"),
		StorePath:      v.GetString("store_path"),
		DatabaseURL:    v.GetString("database_url"),
		DatabaseSecret: v.GetString("database_secret"),
		Collection:     v.GetString("collection"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// UpdateStoreFromFlags overrides the store settings with non-empty flag values.
func (c *Config) UpdateStoreFromFlags(backend, path, url string) {
	if backend != "" {
		c.StoreBackend = backend
	}
	if path != "" {
		c.StorePath = path
	}
	if url != "" {
		c.DatabaseURL = url
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		// godotenv.Load never overrides variables that are already set,
		// so the more specific file goes first.
		_ = godotenv.Load(envFile)
	}
}

// bindEnv maps config keys to their RETROSHELF_* environment variables.
func bindEnv(v *viper.Viper) {
	bindings := map[string]string{
		"store":           EnvStore,
		"store_path":      EnvStorePath,
		"database_url":    EnvDatabaseURL,
		"database_secret": EnvDatabaseSecret,
		"collection":      EnvCollection,
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
