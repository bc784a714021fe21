package items

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/form"
)

// NewUpdateCommand creates the items update subcommand.
func NewUpdateCommand(app application.Application) *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:     "update <id>",
		Aliases: []string{"edit"},
		Short:   "Change fields of a record",
		Long: `Update loads the record, replaces the fields given as flags and saves
it with the same validation as add. Fields without a flag keep their value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fields.changed(cmd) {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}

			ctl, err := app.Controller()
			if err != nil {
				return err
			}
			current, err := ctl.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			v := fields.overlay(cmd, form.Fill(current))
			v.ItemID = args[0]
			return submit(cmd, app, v)
		},
	}

	fields = addFieldFlags(cmd)
	return cmd
}
