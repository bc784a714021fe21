// Package items provides the catalog record commands for the retroshelf CLI.
package items

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/alerts"
	"github.com/agentstation/retroshelf/internal/cmd/output"
	"github.com/agentstation/retroshelf/internal/controller"
)

// NewCommand creates the items command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "games"},
		Short:   "List, inspect and edit catalog records",
		Long: `Items reads and edits the records of the retro game catalog.

Available subcommands:
  list     - records sorted by title, optionally filtered
  get      - a single record
  add      - create a record
  update   - change fields of a record
  remove   - delete a record
  facets   - the categories and platforms in use`,
		Example: `  retroshelf items list --platform SNES
  retroshelf items get -o yaml <id>
  retroshelf items add --titulo Contra --descricao "Run and gun" \
    --categoria Ação --imagem https://example.com/contra.png \
    --plataforma NES --ano 1987
  retroshelf items update <id> --ano 1988
  retroshelf items remove <id>`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewGetCommand(app))
	cmd.AddCommand(NewAddCommand(app))
	cmd.AddCommand(NewUpdateCommand(app))
	cmd.AddCommand(NewRemoveCommand(app))
	cmd.AddCommand(NewFacetsCommand(app))

	return cmd
}

// format resolves the output format from the global flag or the terminal.
func format(app application.Application) output.Format {
	return output.DetectFormat(app.OutputFormat())
}

// alertWriter writes command feedback in the resolved output format.
func alertWriter(cmd *cobra.Command, app application.Application) *alerts.FormatWriter {
	return alerts.NewFormatWriter(cmd.OutOrStdout(), format(app))
}

// loaded returns the controller after a successful catalog load.
func loaded(cmd *cobra.Command, app application.Application) (*controller.Controller, error) {
	ctl, err := app.Controller()
	if err != nil {
		return nil, err
	}
	if err := ctl.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return ctl, nil
}
