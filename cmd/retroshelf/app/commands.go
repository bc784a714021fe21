package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/retroshelf/cmd/catalog"
	"github.com/agentstation/retroshelf/cmd/retroshelf/cmd/items"
	"github.com/agentstation/retroshelf/cmd/retroshelf/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewItemsCommand())
	rootCmd.AddCommand(a.NewServeCommand())

	// Management commands
	rootCmd.AddCommand(a.NewImportCommand())
	rootCmd.AddCommand(a.NewExportCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewItemsCommand creates the items command with app dependencies.
func (a *App) NewItemsCommand() *cobra.Command {
	cmd := items.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	cmd := serve.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// NewImportCommand creates the import command with app dependencies.
func (a *App) NewImportCommand() *cobra.Command {
	cmd := catalog.NewImportCommand(a)
	cmd.GroupID = "management"
	return cmd
}

// NewExportCommand creates the export command with app dependencies.
func (a *App) NewExportCommand() *cobra.Command {
	cmd := catalog.NewExportCommand(a)
	cmd.GroupID = "management"
	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("retroshelf %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
