package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

func sample() []items.Item {
	return []items.Item{
		{ID: "a1", Title: "Zelda", Category: "Aventura", Platform: "SNES", Year: 1991, Image: "z.png", Description: "Link to the Past"},
		{ID: "b2", Title: "Contra", Category: "Ação", Platform: "NES", Genre: "Run and gun"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: "table", want: FormatTable},
		{in: "wide", want: FormatWide},
		{in: "", want: ""},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatItemsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatItems(&buf, sample(), FormatTable))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "TITLE")
	assert.Contains(t, out, "Zelda")
	assert.Contains(t, out, "1991")
	assert.NotContains(t, strings.ToUpper(out), "GENRE")
}

func TestFormatItemsWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatItems(&buf, sample(), FormatWide))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "GENRE")
	assert.Contains(t, out, "Run and gun")
}

func TestFormatItemsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatItems(&buf, sample(), FormatJSON))

	var got []items.Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample(), got)
}

func TestFormatItemsEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatItems(&buf, nil, FormatJSON))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestFormatItemYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatItem(&buf, sample()[0], FormatYAML))

	var got items.Item
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Zelda", got.Title)
	assert.Equal(t, 1991, got.Year)
}

func TestFormatFacetsTable(t *testing.T) {
	var buf bytes.Buffer
	v := filter.Facets(sample())
	require.NoError(t, FormatFacets(&buf, v, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "category")
	assert.Contains(t, out, "Aventura")
	assert.Contains(t, out, "platform")
	assert.Contains(t, out, "SNES")
}

func TestTableFormatterReflection(t *testing.T) {
	type row struct {
		Name     string `json:"name"`
		LoadedAt string `json:"loaded_at,omitempty"`
		Count    int
	}

	var buf bytes.Buffer
	f := &TableFormatter{}
	require.NoError(t, f.Format(&buf, []row{{Name: "x", LoadedAt: "now", Count: 2}}))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "LOADED AT")
	assert.Contains(t, strings.ToUpper(out), "COUNT")
	assert.Contains(t, out, "now")
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Loaded At", Header("loaded_at"))
	assert.Equal(t, "Titulo", Header("titulo"))
}
