package output

import (
	"io"

	"github.com/agentstation/retroshelf/internal/cmd/table"
	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

// FormatItems writes a record list. Table formats get the item columns,
// structured formats the records themselves.
func FormatItems(w io.Writer, list []items.Item, format Format) error {
	if list == nil {
		list = []items.Item{}
	}
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.ItemsToTableData(list, format == FormatWide))
	}
	return NewFormatter(format).Format(w, list)
}

// FormatItem writes a single record.
func FormatItem(w io.Writer, it items.Item, format Format) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.ItemToTableData(it))
	}
	return NewFormatter(format).Format(w, it)
}

// FormatFacets writes the filter vocabulary.
func FormatFacets(w io.Writer, v filter.Vocabulary, format Format) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.FacetsToTableData(v))
	}
	return NewFormatter(format).Format(w, v)
}

// FormatAny formats any data type. Useful for commands with custom data
// structures.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
