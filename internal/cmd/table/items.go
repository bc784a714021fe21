// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// descriptionWidth bounds the description column in wide tables.
const descriptionWidth = 48

// ItemsToTableData converts catalog records to table format.
// The wide variant adds genre, image and a shortened description.
func ItemsToTableData(list []items.Item, wide bool) Data {
	headers := []string{"ID", "Title", "Category", "Platform", "Year"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Genre", "Image", "Description")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(list))
	for _, it := range list {
		row := []string{it.ID, it.Title, it.Category, it.Platform, Year(it)}
		if wide {
			row = append(row, it.Genre, it.Image, Truncate(it.Description, descriptionWidth))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ItemToTableData converts a single record to a property/value table.
func ItemToTableData(it items.Item) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", it.ID},
			{"Title", it.Title},
			{"Description", it.Description},
			{"Category", it.Category},
			{"Platform", it.Platform},
			{"Year", Year(it)},
			{"Genre", it.Genre},
			{"Image", it.Image},
		},
	}
}

// FacetsToTableData lists the filter vocabulary one value per row.
func FacetsToTableData(v filter.Vocabulary) Data {
	rows := make([][]string, 0, len(v.Categories)+len(v.Platforms))
	for _, c := range v.Categories {
		rows = append(rows, []string{"category", c})
	}
	for _, p := range v.Platforms {
		rows = append(rows, []string{"platform", p})
	}
	return Data{Headers: []string{"Facet", "Value"}, Rows: rows}
}

// Year renders the year column. Records without a usable year show "-".
func Year(it items.Item) string {
	if !it.HasYear() {
		return "-"
	}
	return strconv.Itoa(it.Year)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
