// Package catalog provides the import and export commands for the
// retroshelf CLI.
package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/retroshelf/internal/cmd/alerts"
	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/items"
)

// Seed is the document written by export and read by import.
type Seed struct {
	Items []items.Item `json:"items" yaml:"items"`
}

// parseSeed decodes a YAML or JSON seed. The document is either a list of
// records or a mapping with an "items" list. Years may be numbers or
// strings; every record is validated like a form submit.
func parseSeed(data []byte, file string) ([]form.Values, []alerts.InvalidRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, errors.NewParseError("yaml", file, "empty seed file", nil)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.WrapParse("yaml", file, err)
	}

	var list []any
	switch v := doc.(type) {
	case []any:
		list = v
	case map[string]any:
		entries, ok := v["items"].([]any)
		if !ok {
			return nil, nil, errors.NewParseError("yaml", file, `expected a list of records or an "items" list`, nil)
		}
		list = entries
	default:
		return nil, nil, errors.NewParseError("yaml", file, `expected a list of records or an "items" list`, nil)
	}

	raw := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, nil, errors.NewParseError("yaml", file, fmt.Sprintf("record %d is not a mapping", i), nil)
		}
		raw = append(raw, m)
	}

	valid := make([]form.Values, 0, len(raw))
	var invalid []alerts.InvalidRecord
	for i, entry := range raw {
		v := valuesFrom(entry)
		if err := form.Validate(v); err != nil {
			invalid = append(invalid, alerts.InvalidRecord{Index: i, Title: v.Title, Err: err})
			continue
		}
		valid = append(valid, v)
	}
	return valid, invalid, nil
}

// valuesFrom reads the record fields of a decoded entry. Unknown keys,
// including "id", are ignored; imported records always get fresh keys.
func valuesFrom(entry map[string]any) form.Values {
	get := func(name string) string {
		v, ok := entry[name]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return form.Values{
		Title:       get(items.FieldTitle),
		Description: get(items.FieldDescription),
		Category:    get(items.FieldCategory),
		Image:       get(items.FieldImage),
		Platform:    get(items.FieldPlatform),
		Year:        get(items.FieldYear),
		Genre:       get(items.FieldGenre),
	}
}
