package items

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/output"
)

// NewFacetsCommand creates the items facets subcommand.
func NewFacetsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Show the categories and platforms in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := loaded(cmd, app)
			if err != nil {
				return err
			}
			return output.FormatFacets(cmd.OutOrStdout(), ctl.Snapshot().Vocabulary, format(app))
		},
	}
}
