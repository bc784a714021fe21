// Package constants provides shared constants for CLI commands.
package constants

// Output format constants used throughout the CLI.
const (
	// FormatTable is the default table output format.
	FormatTable = "table"

	// FormatWide is an extended table format with more columns.
	FormatWide = "wide"

	// FormatJSON outputs data as JSON.
	FormatJSON = "json"

	// FormatYAML outputs data as YAML.
	FormatYAML = "yaml"

	// FormatMarkdown outputs as markdown table.
	FormatMarkdown = "markdown"
)

// Serialization formats accepted by import and export.
var (
	// ImportFormats are the seed file formats import understands.
	ImportFormats = []string{FormatJSON, FormatYAML}

	// ExportFormats are the formats export can write.
	ExportFormats = []string{FormatJSON, FormatYAML, FormatMarkdown}
)
