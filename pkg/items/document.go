package items

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Year is a year as found in a stored document. Older entries may hold the
// year as a string, so both numbers and numeric strings are accepted.
type Year int

// UnmarshalJSON decodes a number, a numeric string or null. Values that do
// not parse decode to zero.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	v, err := ParseYear(raw)
	if err != nil {
		*y = 0
		return nil
	}
	*y = Year(v)
	return nil
}

// Document is the shape of a record in the store.
type Document struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	Image       string `json:"imagem"`
	Platform    string `json:"plataforma"`
	Year        Year   `json:"ano"`
	Genre       string `json:"genero"`
}

var knownFields = []string{
	FieldTitle,
	FieldDescription,
	FieldCategory,
	FieldImage,
	FieldPlatform,
	FieldYear,
	FieldGenre,
}

// DecodeDocument decodes a stored entry. Fields the record does not know
// about are ignored and returned sorted so the caller can report them.
func DecodeDocument(data []byte) (Document, []string, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, nil, err
	}

	var bag map[string]json.RawMessage
	if err := json.Unmarshal(data, &bag); err != nil {
		return Document{}, nil, err
	}

	var unknown []string
	for key := range bag {
		if !slices.Contains(knownFields, key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)

	return doc, unknown, nil
}

// FromDocument builds an Item from a stored document and its key.
// A missing genre stays empty.
func FromDocument(id string, d Document) Item {
	return Item{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Image:       d.Image,
		Platform:    d.Platform,
		Year:        int(d.Year),
		Genre:       d.Genre,
	}
}

// Document returns the stored shape of the record.
func (it Item) Document() Document {
	return Document{
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Image:       it.Image,
		Platform:    it.Platform,
		Year:        Year(it.Year),
		Genre:       it.Genre,
	}
}
