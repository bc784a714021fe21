package items

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	data := []byte(`{
		"titulo": "Sonic",
		"descricao": "Blue",
		"categoria": "Plataforma",
		"imagem": "u",
		"plataforma": "Mega Drive",
		"ano": 1991,
		"nota": 10,
		"autor": "x"
	}`)

	doc, unknown, err := DecodeDocument(data)
	require.NoError(t, err)

	assert.Equal(t, "Sonic", doc.Title)
	assert.Equal(t, Year(1991), doc.Year)
	assert.Equal(t, "", doc.Genre)
	assert.Equal(t, []string{"autor", "nota"}, unknown)
}

func TestDecodeDocumentInvalidJSON(t *testing.T) {
	_, _, err := DecodeDocument([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestYearUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Year
	}{
		{"number", `{"ano":1990}`, 1990},
		{"float", `{"ano":1990.7}`, 1990},
		{"string", `{"ano":"1988"}`, 1988},
		{"garbage string", `{"ano":"soon"}`, 0},
		{"null", `{"ano":null}`, 0},
		{"absent", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			require.NoError(t, json.Unmarshal([]byte(tt.json), &doc))
			assert.Equal(t, tt.want, doc.Year)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	it := Item{
		ID:          "k9",
		Title:       "Metroid",
		Description: "Samus",
		Category:    "Ação",
		Image:       "u",
		Platform:    "NES",
		Year:        1986,
		Genre:       "Metroidvania",
	}

	data, err := json.Marshal(it.Document())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "k9")

	doc, unknown, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, it, FromDocument("k9", doc))
}

func TestFromDocumentKeepsFieldsAsStored(t *testing.T) {
	doc := Document{
		Title:    " Zelda ",
		Category: "Aventura ",
		Platform: "SNES",
		Year:     1991,
		Genre:    "  Ação ",
	}

	it := FromDocument("k1", doc)
	assert.Equal(t, " Zelda ", it.Title)
	assert.Equal(t, "Aventura ", it.Category)
	assert.Equal(t, "  Ação ", it.Genre)
}
