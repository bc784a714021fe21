package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

func TestItemsToTableData(t *testing.T) {
	list := []items.Item{
		{ID: "a", Title: "Zelda", Category: "Aventura", Platform: "SNES", Year: 1991},
		{ID: "b", Title: "Contra", Category: "Ação", Platform: "NES"},
	}

	data := ItemsToTableData(list, false)
	assert.Equal(t, []string{"ID", "Title", "Category", "Platform", "Year"}, data.Headers)
	assert.Equal(t, []string{"a", "Zelda", "Aventura", "SNES", "1991"}, data.Rows[0])
	assert.Equal(t, "-", data.Rows[1][4])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))

	wide := ItemsToTableData(list, true)
	assert.Len(t, wide.Headers, 8)
	assert.Len(t, wide.Rows[0], 8)
	assert.Len(t, wide.ColumnAlignment, 8)
}

func TestItemToTableData(t *testing.T) {
	data := ItemToTableData(items.Item{ID: "a", Title: "Zelda", Year: 1991})
	assert.Equal(t, []string{"Property", "Value"}, data.Headers)
	assert.Contains(t, data.Rows, []string{"Year", "1991"})
	assert.Contains(t, data.Rows, []string{"Title", "Zelda"})
}

func TestFacetsToTableData(t *testing.T) {
	data := FacetsToTableData(filter.Vocabulary{
		Categories: []string{"Ação", "RPG"},
		Platforms:  []string{"NES"},
	})
	assert.Equal(t, [][]string{
		{"category", "Ação"},
		{"category", "RPG"},
		{"platform", "NES"},
	}, data.Rows)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "short", n: 10, want: "short"},
		{in: "exactly ten", n: 11, want: "exactly ten"},
		{in: "a longer description", n: 10, want: "a longe..."},
		{in: "multi\n  line   text", n: 20, want: "multi line text"},
		{in: "ação rápida", n: 6, want: "açã..."},
		{in: "abcdef", n: 2, want: "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), tt.in)
	}
}
