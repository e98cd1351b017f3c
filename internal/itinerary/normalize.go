package itinerary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize projects the top level of tree onto an Itinerary. It never fails: missing or
// mistyped fields take their defaults, and a recovered panic yields Empty() with Error set.
func Normalize(tree any) Itinerary {
	it, _ := normalizeWith(normalize, tree)
	return it
}

// normalizeWith runs fn and turns a panic into the sentinel itinerary, returning the
// recovered value so the caller can log it.
func normalizeWith(fn func(any) Itinerary, tree any) (it Itinerary, recovered any) {
	defer func() {
		if r := recover(); r != nil {
			it = Empty()
			it.Error = fmt.Sprintf("normalize itinerary: %v", r)
			recovered = r
		}
	}()
	return fn(tree), nil
}

// normalize works on plain maps; member order does not matter for the projection.
func normalize(tree any) Itinerary {
	it := Empty()
	root, ok := Plain(tree).(map[string]any)
	if !ok {
		return it
	}

	if s, ok := nonEmptyString(root["destination"]); ok {
		it.Destination = s
	}
	if s, ok := scalarString(root["budget"]); ok {
		it.Budget = s
	}
	it.Interests = stringList(root["interests"])

	details, _ := root["travel_details"].(map[string]any)
	if details != nil {
		it.TravelDetails = details
	}
	it.Flights = nestedList(details, "flights", "service_providers", root["flights"])
	it.Accommodations = nestedList(details, "accommodations", "options", root["accommodations"])
	it.Tours = nestedList(details, "tours", "options", root["tours"])
	if list, ok := root["additional_resources"].([]any); ok {
		it.AdditionalResources = list
	}
	return it
}

// nestedList reads details[section][field] when it is a list, else falls back to the
// top-level value, else an empty list.
func nestedList(details map[string]any, section, field string, fallback any) []any {
	if sub, ok := details[section].(map[string]any); ok {
		if list, ok := sub[field].([]any); ok {
			return list
		}
	}
	if list, ok := fallback.([]any); ok {
		return list
	}
	return []any{}
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

// scalarString accepts strings and numbers; budgets arrive as either.
func scalarString(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return nonEmptyString(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case json.Number:
		return n.String(), true
	}
	return "", false
}

func stringList(v any) []string {
	out := []string{}
	switch items := v.(type) {
	case []any:
		for _, item := range items {
			switch s := item.(type) {
			case string:
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			case float64, json.Number, bool:
				out = append(out, fmt.Sprint(s))
			}
		}
	case string:
		for _, part := range strings.Split(items, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
