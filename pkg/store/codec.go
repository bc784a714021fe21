package store

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/retroshelf/pkg/errors"
)

// Encode marshals a value for storage. It reports null for nil values so
// backends can turn the write into a removal.
func Encode(value any) (data []byte, null bool, err error) {
	switch v := value.(type) {
	case nil:
		return nil, true, nil
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		data, err = json.Marshal(value)
		if err != nil {
			return nil, false, errors.WrapParse("json", "value", err)
		}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, true, nil
	}
	return data, false, nil
}

// EncodeChildren marshals a collection value into its children. The value
// must encode to a JSON object.
func EncodeChildren(value any) (map[string][]byte, error) {
	data, null, err := Encode(value)
	if err != nil {
		return nil, err
	}
	children := make(map[string][]byte)
	if null {
		return children, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewValidationError("value", string(data), "collection value must be an object")
	}
	for key, child := range raw {
		child = bytes.TrimSpace(child)
		if string(child) == "null" {
			continue
		}
		children[key] = child
	}
	return children, nil
}

// Merge applies fields to an existing JSON object and returns the result.
// A nil field value deletes the field. An absent or non-object existing
// value is replaced by an object holding the fields.
func Merge(existing []byte, fields map[string]any) ([]byte, error) {
	merged := make(map[string]json.RawMessage)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			merged = make(map[string]json.RawMessage)
		}
	}

	for key, value := range fields {
		data, null, err := Encode(value)
		if err != nil {
			return nil, err
		}
		if null {
			delete(merged, key)
			continue
		}
		merged[key] = data
	}

	if len(merged) == 0 {
		return nil, nil
	}
	return json.Marshal(merged)
}

// Collect builds the JSON object for a collection from its children.
func Collect(children map[string][]byte) ([]byte, error) {
	if len(children) == 0 {
		return nil, nil
	}
	raw := make(map[string]json.RawMessage, len(children))
	for key, child := range children {
		raw[key] = child
	}
	return json.Marshal(raw)
}
