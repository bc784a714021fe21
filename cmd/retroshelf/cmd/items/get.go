package items

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/output"
)

// NewGetCommand creates the items get subcommand.
func NewGetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := app.Controller()
			if err != nil {
				return err
			}
			it, err := ctl.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.FormatItem(cmd.OutOrStdout(), it, format(app))
		},
	}
}
