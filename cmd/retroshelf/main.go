// Package main provides the entry point for the retroshelf CLI tool.
package main

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/retroshelf/cmd/retroshelf/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := app.ContextWithSignals(context.Background())

	runErr := application.Execute(ctx, os.Args[1:])
	cancel()

	// Fresh context: the signal context may already be cancelled.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		// Log shutdown error to stderr, but don't let it mask the original error
		application.Logger().Error().Err(err).Msg("Shutdown error")
	}
	app.ExitOnError(runErr)
}
