package normalizer

import (
	"encoding/json"
	"strconv"
	"strings"

	"dcrhub/internal/models"
)

// asRecord returns v as a key-value mapping when it is a JSON object.
func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case models.RawRecord:
		return m, true
	}

	return nil, false
}

// present reports whether v counts as a non-empty value.
// Empty strings, false, null and empty collections are absent.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case models.RawRecord:
		return len(x) > 0
	}

	return true
}

// lookup returns the first present value among keys.
func lookup(m map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && present(v) {
			return v, true
		}
	}

	return nil, false
}

// text renders a scalar JSON value as text. Objects and arrays have no text form.
func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, x != ""
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		if x {
			return "true", true
		}
	}

	return "", false
}

// firstText returns the first candidate that has a text form, or "".
func firstText(m map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := text(m[key]); ok {
			return s
		}
	}

	return ""
}

// truthy interprets flag-like values such as true, "yes" or 1.
func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "yes", "y":
			return true
		}
	case json.Number:
		return x.String() == "1"
	case float64:
		return x == 1
	}

	return false
}

// parseRank turns "1", "1=", 1 or "1st" into a rank. Anything else is 0.
func parseRank(v any) int {
	s, ok := text(v)
	if !ok {
		return 0
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "=")

	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		s = strings.TrimSuffix(strings.ToLower(s), suffix)
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}

	return n
}

// AsRecord returns v as a JSON object, or nil and false.
func AsRecord(v any) (map[string]any, bool) {
	return asRecord(v)
}

// FirstText returns the text form of the first candidate key that has one.
func FirstText(m map[string]any, keys ...string) string {
	return firstText(m, keys)
}

// Items returns the first present array among keys, or nil.
func Items(m map[string]any, keys ...string) []any {
	v, ok := lookup(m, keys)
	if !ok {
		return nil
	}

	items, _ := v.([]any)

	return items
}
