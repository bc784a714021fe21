// Package application provides the application interface for retroshelf commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            ctl, err := app.Controller()
//	            if err != nil {
//	                return err
//	            }
//	            if err := ctl.Load(cmd.Context()); err != nil {
//	                return err
//	            }
//	            // ... use ctl.Snapshot()
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/pkg/gateway"
	"github.com/agentstation/retroshelf/pkg/store"
)

// Application provides the application interface that commands need.
// The App struct from cmd/retroshelf/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Store returns the opened persistence backend (lazy-initialized).
	Store() (store.Store, error)

	// Gateway returns the catalog gateway over Store.
	Gateway() (*gateway.Gateway, error)

	// Controller returns the shared application controller. It is created
	// once and starts Idle; callers decide when to Load.
	Controller() (*controller.Controller, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
