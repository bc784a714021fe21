package items

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/output"
	"github.com/agentstation/retroshelf/pkg/filter"
)

// NewListCommand creates the items list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	var f filter.Filter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records sorted by title",
		Long: `List prints the catalog sorted by title using Portuguese collation.

--category and --platform narrow the list to exact matches. A value
that no record carries is ignored, the same way the web page drops a
stale selection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := loaded(cmd, app)
			if err != nil {
				return err
			}

			state := ctl.Snapshot().WithFilter(f)
			app.Logger().Debug().
				Int("total", len(state.Items)).
				Int("shown", len(state.View)).
				Str("category", state.Filter.Category).
				Str("platform", state.Filter.Platform).
				Msg("Listing items")

			return output.FormatItems(cmd.OutOrStdout(), state.View, format(app))
		},
	}

	cmd.Flags().StringVar(&f.Category, "category", "", "Only records in this category")
	cmd.Flags().StringVar(&f.Platform, "platform", "", "Only records for this platform")

	return cmd
}
