package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

const (
	fence    = "```"
	fenceTag = "json"
)

// Decode turns an agent response into a tree of mappings, []any and scalars.
//
// Values implementing MapConverter are converted directly. Strings (and byte slices) are
// stripped of one layer of markdown code fences and parsed as JSON, with objects decoded
// as Object so member order survives. Anything else is treated as already-structured data.
func Decode(raw any) (any, error) {
	return decode(raw, false)
}

func decode(raw any, repair bool) (any, error) {
	switch v := raw.(type) {
	case MapConverter:
		m, err := v.ToMap()
		if err != nil {
			return nil, &DecodeError{Input: fmt.Sprintf("%+v", raw), Err: err}
		}
		return m, nil
	case string:
		return decodeText(v, repair)
	case []byte:
		return decodeText(string(v), repair)
	case json.RawMessage:
		return decodeText(string(v), repair)
	default:
		return passThrough(raw)
	}
}

// StripFences removes a single leading ``` (optionally tagged json) and a single trailing ```.
// Text without fences is only trimmed.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, fence); ok {
		rest = strings.TrimPrefix(rest, fenceTag)
		s = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(s, fence); ok {
		s = strings.TrimSpace(rest)
	}
	return s
}

func decodeText(text string, repair bool) (any, error) {
	cleaned := StripFences(text)
	if cleaned == "" {
		return nil, &DecodeError{Input: text, Err: ErrEmptyResponse}
	}

	tree, err := parseOrdered(cleaned)
	if err == nil {
		return tree, nil
	}
	decodeErr := &DecodeError{Input: cleaned, Err: err}
	if !repair {
		return nil, decodeErr
	}

	repaired, repairErr := jsonrepair.JSONRepair(cleaned)
	if repairErr != nil {
		return nil, decodeErr
	}
	if tree, err = parseOrdered(repaired); err != nil {
		return nil, decodeErr
	}
	return tree, nil
}

// passThrough accepts tree-shaped values as they are and re-encodes any other Go value
// through JSON so callers only ever see the tree shapes. Struct fields keep their order.
func passThrough(raw any) (any, error) {
	switch raw.(type) {
	case nil, Object, map[string]any, []any, string, bool, float64, json.Number:
		return raw, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &DecodeError{Input: fmt.Sprintf("%+v", raw), Err: err}
	}
	tree, err := parseOrdered(string(data))
	if err != nil {
		return nil, &DecodeError{Input: string(data), Err: err}
	}
	return tree, nil
}
