// Package items defines the catalog record and its mapping to and from the
// document stored under a collection.
package items

import (
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
)

// Field names shared by the store documents, the HTML form and the API.
const (
	FieldTitle       = "titulo"
	FieldDescription = "descricao"
	FieldCategory    = "categoria"
	FieldImage       = "imagem"
	FieldPlatform    = "plataforma"
	FieldYear        = "ano"
	FieldGenre       = "genero"
)

// RequiredFields lists the fields that must be present, in form order.
var RequiredFields = []string{
	FieldTitle,
	FieldDescription,
	FieldCategory,
	FieldImage,
	FieldPlatform,
	FieldYear,
}

// Item is a single catalog entry.
// ID is empty until the record has been persisted.
type Item struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string `json:"titulo" yaml:"titulo"`
	Description string `json:"descricao" yaml:"descricao"`
	Category    string `json:"categoria" yaml:"categoria"`
	Image       string `json:"imagem" yaml:"imagem"`
	Platform    string `json:"plataforma" yaml:"plataforma"`
	Year        int    `json:"ano" yaml:"ano"`
	Genre       string `json:"genero" yaml:"genero"`
}

// Input is a loosely typed record as read from a form, flags or a seed file.
type Input struct {
	ID          string
	Title       string
	Description string
	Category    string
	Image       string
	Platform    string
	Year        string
	Genre       string
}

// New builds an Item from raw input. The year is coerced with ParseYear and
// left at zero when it does not parse. No validation happens here.
func New(in Input) Item {
	year, _ := ParseYear(in.Year)
	return Item{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		Platform:    in.Platform,
		Year:        year,
		Genre:       in.Genre,
	}
}

// ParseYear parses a decimal year. Fractions are truncated toward zero.
func ParseYear(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.NewValidationError(FieldYear, raw, "year is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.NewValidationError(FieldYear, raw, "year is not a number")
	}
	return int(math.Trunc(f)), nil
}

// HasYear reports whether the record carries a usable year.
// Zero is the value left behind by a failed coercion.
func (it Item) HasYear() bool {
	return it.Year != 0
}

// Persisted reports whether the record has a store key.
func (it Item) Persisted() bool {
	return it.ID != ""
}

// WithID returns a copy of the record carrying the given key.
func (it Item) WithID(id string) Item {
	it.ID = id
	return it
}

// Validate checks that every required field is present.
// The returned error names the first missing field.
func (it Item) Validate() error {
	values := map[string]string{
		FieldTitle:       it.Title,
		FieldDescription: it.Description,
		FieldCategory:    it.Category,
		FieldImage:       it.Image,
		FieldPlatform:    it.Platform,
	}
	for _, field := range RequiredFields {
		if field == FieldYear {
			if !it.HasYear() {
				return errors.NewValidationError(field, it.Year, constants.MsgRequiredFields)
			}
			continue
		}
		if strings.TrimSpace(values[field]) == "" {
			return errors.NewValidationError(field, values[field], constants.MsgRequiredFields)
		}
	}
	return nil
}

// Fields returns the store field bag for the record. The key is never
// part of it.
func (it Item) Fields() map[string]any {
	return map[string]any{
		FieldTitle:       it.Title,
		FieldDescription: it.Description,
		FieldCategory:    it.Category,
		FieldImage:       it.Image,
		FieldPlatform:    it.Platform,
		FieldYear:        it.Year,
		FieldGenre:       it.Genre,
	}
}
