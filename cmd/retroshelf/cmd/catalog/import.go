package catalog

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/alerts"
	"github.com/agentstation/retroshelf/internal/cmd/output"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/items"
)

// NewImportCommand creates the import command.
func NewImportCommand(app application.Application) *cobra.Command {
	var (
		replace     bool
		dryRun      bool
		skipInvalid bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.yaml|file.json>",
		Short: "Seed the catalog from a YAML or JSON file",
		Long: `Import reads records from a YAML or JSON file and stores them under new
keys. The file holds either a list of records or an "items" list, with
the same field names as the web form (titulo, descricao, categoria,
imagem, plataforma, ano, genero).

Every record is validated first. By default one invalid record aborts the
import before anything is written; --skip-invalid imports the rest.`,
		Example: `  retroshelf import games.yaml
  retroshelf import --replace --store sqlite backup.json
  retroshelf import --dry-run games.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			logger := app.Logger()

			data, err := os.ReadFile(file)
			if err != nil {
				return errors.WrapIO("read", file, err)
			}

			valid, invalid, err := parseSeed(data, file)
			if err != nil {
				return err
			}

			alertsOut := alerts.NewFormatWriter(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()))

			if len(invalid) > 0 {
				if !skipInvalid {
					first := invalid[0]
					return fmt.Errorf("%d invalid records, first is record %d (%q): %w",
						len(invalid), first.Index, first.Title, first.Err)
				}
				if err := alertsOut.WriteAlert(alerts.RecordsSkipped(invalid)); err != nil {
					return err
				}
			}

			list := make([]items.Item, 0, len(valid))
			titles := make([]string, 0, len(valid))
			for _, v := range valid {
				list = append(list, v.Item())
				titles = append(titles, v.Title)
			}

			if dryRun {
				return alertsOut.WriteAlert(alerts.Imported(titles, true))
			}

			gw, err := app.Gateway()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if replace {
				if _, err := gw.Replace(ctx, list); err != nil {
					return err
				}
			} else {
				for _, it := range list {
					if _, err := gw.Create(ctx, it); err != nil {
						return err
					}
				}
			}

			logger.Info().
				Str("file", file).
				Int("imported", len(list)).
				Int("skipped", len(invalid)).
				Bool("replace", replace).
				Msg("Imported items")

			return alertsOut.WriteAlert(alerts.Imported(titles, false))
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Remove every existing record first")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Import the valid records and skip the rest")

	return cmd
}
