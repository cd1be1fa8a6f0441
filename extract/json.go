package extract

import (
	"strconv"
	"strings"
)

// probeFirst resolves the first path that leads to a JSON object.
func probeFirst(root map[string]any, paths [][]string) (map[string]any, bool) {
	for _, path := range paths {
		if obj, ok := probePath(root, path); ok {
			return obj, true
		}
	}
	return nil, false
}

// probePath walks nested objects along the given keys.
func probePath(root map[string]any, keys []string) (map[string]any, bool) {
	cur := root
	for _, key := range keys {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// pickString returns the first non-empty string among the given keys.
func pickString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return ""
}

// pickFloat coerces a JSON value to float64. Numeric strings are common
// in embedded state ("4.8" ratings, "1234" counts), so those parse too.
func pickFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// pickPrice coerces a price field that may be a flat number/string or an
// object carrying the amount in a "value" sub-field. The nested form is
// tried first.
func pickPrice(v any) (float64, bool) {
	if m, ok := v.(map[string]any); ok {
		return pickFloat(m["value"])
	}
	return pickFloat(v)
}

// pickStrings returns the first key resolving to a non-empty string list.
func pickStrings(obj map[string]any, keys ...string) []string {
	for _, k := range keys {
		arr, ok := obj[k].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
