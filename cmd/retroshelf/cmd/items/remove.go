package items

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/alerts"
	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
)

// NewRemoveCommand creates the items remove subcommand.
func NewRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := app.Controller()
			if err != nil {
				return err
			}

			id := args[0]
			if err := ctl.Delete(cmd.Context(), id); err != nil {
				if errors.IsNotFound(err) {
					return err
				}
				return &errors.ResourceError{
					Operation: "delete",
					Resource:  "item",
					ID:        id,
					Message:   constants.MsgDeleteFailed + form.Message(err),
					Err:       err,
				}
			}

			return alertWriter(cmd, app).WriteAlert(
				alerts.ItemRemoved(id),
			)
		},
	}
}
