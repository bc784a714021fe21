package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/cmd/constants"
	"github.com/agentstation/retroshelf/internal/cmd/table"
	pkgconstants "github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

// NewExportCommand creates the export command.
func NewExportCommand(app application.Application) *cobra.Command {
	var (
		format string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as JSON, YAML or Markdown",
		Long: `Export writes every record sorted by title. JSON and YAML exports use
the seed layout accepted by import; Markdown writes a readable table.`,
		Example: `  retroshelf export > backup.json
  retroshelf export --format yaml --output games.yaml
  retroshelf export --format markdown --output CATALOG.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = constants.FormatJSON
				if f := app.OutputFormat(); slices.Contains(constants.ExportFormats, f) {
					format = f
				}
			}
			if !slices.Contains(constants.ExportFormats, format) {
				return fmt.Errorf("invalid export format %q: must be one of: json, yaml, markdown", format)
			}

			ctl, err := app.Controller()
			if err != nil {
				return err
			}
			if err := ctl.Load(cmd.Context()); err != nil {
				return err
			}
			list := ctl.Snapshot().Items

			var buf bytes.Buffer
			if err := writeExport(&buf, list, format, time.Now()); err != nil {
				return err
			}

			if file == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(file, buf.Bytes(), pkgconstants.FilePermissions); err != nil {
				return errors.WrapIO("write", file, err)
			}

			app.Logger().Info().
				Str("file", file).
				Str("format", format).
				Int("items", len(list)).
				Msg("Exported catalog")
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Export format: json, yaml, markdown (default json)")
	cmd.Flags().StringVar(&file, "output", "", "Write to this file instead of stdout")

	return cmd
}

// writeExport renders list in format.
func writeExport(w io.Writer, list []items.Item, format string, now time.Time) error {
	if list == nil {
		list = []items.Item{}
	}

	switch format {
	case constants.FormatYAML:
		data, err := yaml.MarshalWithOptions(Seed{Items: list}, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case constants.FormatMarkdown:
		return writeMarkdown(w, list, now)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(Seed{Items: list})
	}
}

// writeMarkdown renders a summary, the full table and one section per
// platform.
func writeMarkdown(w io.Writer, list []items.Item, now time.Time) error {
	vocab := filter.Facets(list)

	doc := md.NewMarkdown(w).
		H1("Retro game catalog").
		PlainTextf("%d games across %d platforms and %d categories. Exported %s.",
			len(list), len(vocab.Platforms), len(vocab.Categories),
			now.Format(pkgconstants.TimeFormatISO8601)).
		LF()

	if len(list) == 0 {
		return doc.PlainText(pkgconstants.MsgEmpty).Build()
	}

	rows := make([][]string, 0, len(list))
	for _, it := range list {
		rows = append(rows, []string{it.Title, it.Category, it.Platform, table.Year(it), it.Genre})
	}
	doc.Table(md.TableSet{
		Header: []string{"Title", "Category", "Platform", "Year", "Genre"},
		Rows:   rows,
	}).LF()

	for _, platform := range vocab.Platforms {
		doc.H2(platform)
		byPlatform := filter.Filter{Platform: platform}
		for _, it := range byPlatform.Apply(list) {
			doc.H3(it.Title).
				PlainText(md.Image(it.Title, it.Image)).
				LF().
				PlainText(it.Description).
				LF()
		}
	}

	return doc.Build()
}
