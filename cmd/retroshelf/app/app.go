// Package app provides the application context and dependency management
// for the retroshelf CLI. It centralizes configuration, logging and the
// lazily opened store, gateway and controller shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/config"
	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/gateway"
	"github.com/agentstation/retroshelf/pkg/logging"
	"github.com/agentstation/retroshelf/pkg/store"

	// Store backends register themselves by name.
	_ "github.com/agentstation/retroshelf/pkg/store/bolt"
	_ "github.com/agentstation/retroshelf/pkg/store/memory"
	_ "github.com/agentstation/retroshelf/pkg/store/rtdb"
	_ "github.com/agentstation/retroshelf/pkg/store/sqlite"
)

// App represents the retroshelf application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazy-initialized singletons
	mu         sync.RWMutex
	store      store.Store
	gateway    *gateway.Gateway
	controller *controller.Controller
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Store returns the configured store, opening it on first use.
// This is thread-safe and ensures only one instance is opened.
func (a *App) Store() (store.Store, error) {
	a.mu.RLock()
	if a.store != nil {
		s := a.store
		a.mu.RUnlock()
		return s, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.openStoreLocked()
}

// Gateway returns the catalog gateway over Store.
func (a *App) Gateway() (*gateway.Gateway, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gatewayLocked()
}

// Controller returns the shared application controller. It starts Idle.
func (a *App) Controller() (*controller.Controller, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.controller != nil {
		return a.controller, nil
	}
	gw, err := a.gatewayLocked()
	if err != nil {
		return nil, err
	}
	a.controller = controller.New(gw, controller.WithLogger(a.logger))
	return a.controller, nil
}

// Shutdown performs graceful shutdown of the application.
// It closes the store if one was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	s := a.store
	a.store = nil
	a.gateway = nil
	a.controller = nil
	a.mu.Unlock()

	if s == nil {
		return nil
	}
	if err := s.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close store during shutdown")
		return errors.WrapResource("close", "store", a.config.StoreBackend, err)
	}
	return nil
}

func (a *App) gatewayLocked() (*gateway.Gateway, error) {
	if a.gateway != nil {
		return a.gateway, nil
	}
	s, err := a.openStoreLocked()
	if err != nil {
		return nil, err
	}
	a.gateway = gateway.New(s,
		gateway.WithCollection(a.config.Collection),
		gateway.WithLogger(a.logger),
	)
	return a.gateway, nil
}

func (a *App) openStoreLocked() (store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	path, err := config.StorePath(a.config.StoreBackend, a.config.StorePath)
	if err != nil {
		return nil, err
	}

	ctx := logging.WithLogger(context.Background(), a.logger)
	s, err := store.Open(ctx, store.Config{
		Backend: a.config.StoreBackend,
		Path:    path,
		URL:     a.config.DatabaseURL,
		Secret:  a.config.DatabaseSecret,
	})
	if err != nil {
		return nil, errors.WrapResource("open", "store", a.config.StoreBackend, err)
	}

	a.logger.Debug().
		Str("store", a.config.StoreBackend).
		Str("path", path).
		Str("collection", a.config.Collection).
		Msg("Opened store")

	a.store = s
	return s, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets a custom store instance (useful for testing).
func WithStore(s store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}
