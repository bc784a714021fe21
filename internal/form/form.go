// Package form reads and writes a catalog record through the HTML form
// fields, validates required fields and dispatches create or update.
package form

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/items"
)

// FieldID is the hidden field carrying the key of the record being edited.
const FieldID = "itemId"

// Values holds the raw form fields.
type Values struct {
	ItemID      string
	Title       string
	Description string
	Category    string
	Image       string
	Platform    string
	Year        string
	Genre       string
}

// Read reads the form fields, trimming surrounding whitespace.
func Read(form url.Values) Values {
	get := func(name string) string {
		return strings.TrimSpace(form.Get(name))
	}
	return Values{
		ItemID:      get(FieldID),
		Title:       get(items.FieldTitle),
		Description: get(items.FieldDescription),
		Category:    get(items.FieldCategory),
		Image:       get(items.FieldImage),
		Platform:    get(items.FieldPlatform),
		Year:        get(items.FieldYear),
		Genre:       get(items.FieldGenre),
	}
}

// Fill writes a record into form fields. A zero year leaves the year empty.
func Fill(it items.Item) Values {
	year := ""
	if it.HasYear() {
		year = strconv.Itoa(it.Year)
	}
	return Values{
		ItemID:      it.ID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Image:       it.Image,
		Platform:    it.Platform,
		Year:        year,
		Genre:       it.Genre,
	}
}

// Item builds the candidate record from the fields.
func (v Values) Item() items.Item {
	return items.New(items.Input{
		ID:          v.ItemID,
		Title:       v.Title,
		Description: v.Description,
		Category:    v.Category,
		Image:       v.Image,
		Platform:    v.Platform,
		Year:        v.Year,
		Genre:       v.Genre,
	})
}

// IsEdit reports whether the form holds a persisted record.
func (v Values) IsEdit() bool {
	return v.ItemID != ""
}

// Encode returns the fields as form values.
func (v Values) Encode() url.Values {
	return url.Values{
		FieldID:                {v.ItemID},
		items.FieldTitle:       {v.Title},
		items.FieldDescription: {v.Description},
		items.FieldCategory:    {v.Category},
		items.FieldImage:       {v.Image},
		items.FieldPlatform:    {v.Platform},
		items.FieldYear:        {v.Year},
		items.FieldGenre:       {v.Genre},
	}
}

// Validate checks that title, description, category, image, platform and
// year are filled and that the year is a non-zero number.
func Validate(v Values) error {
	required := []struct {
		name  string
		value string
	}{
		{items.FieldTitle, v.Title},
		{items.FieldDescription, v.Description},
		{items.FieldCategory, v.Category},
		{items.FieldImage, v.Image},
		{items.FieldPlatform, v.Platform},
		{items.FieldYear, v.Year},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return errors.NewValidationError(f.name, f.value, constants.MsgRequiredFields)
		}
	}
	// Zero is the "no year" value of a record, so a year that truncates to
	// it could never be edited back.
	if year, err := items.ParseYear(v.Year); err != nil || year == 0 {
		return errors.NewValidationError(items.FieldYear, v.Year, constants.MsgInvalidYear)
	}
	return nil
}
