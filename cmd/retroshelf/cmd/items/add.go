package items

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/alerts"
	"github.com/agentstation/retroshelf/internal/form"
)

// NewAddCommand creates the items add subcommand.
func NewAddCommand(app application.Application) *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"create"},
		Short:   "Add a record",
		Long: `Add validates the fields the way the web form does and stores a new
record. Every field except --genero is required and --ano must be a number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submit(cmd, app, fields.overlay(cmd, form.Values{}))
		},
	}

	fields = addFieldFlags(cmd)
	return cmd
}

// submit saves v through the controller and reports the outcome.
func submit(cmd *cobra.Command, app application.Application, v form.Values) error {
	ctl, err := app.Controller()
	if err != nil {
		return err
	}

	res, err := ctl.Submit(cmd.Context(), v)
	if err != nil {
		return err
	}

	app.Logger().Debug().
		Str("item_id", res.ID).
		Bool("created", res.Created).
		Msg("Saved item")

	return alertWriter(cmd, app).WriteAlert(
		alerts.ItemSaved(res.Message, res.ID),
	)
}
