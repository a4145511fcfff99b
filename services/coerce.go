package services

import (
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	// tagRegexp matches HTML tags in app descriptions
	tagRegexp = regexp.MustCompile(`<[^>]+>`)
	// digitsRegexp matches digit runs in install counts like "10,000,000+"
	digitsRegexp = regexp.MustCompile(`[0-9]+`)
)

// Timestamp layouts, all treated as UTC. Strict layouts are attempted first;
// the human layouts recover display dates like "Jan 5, 2026".
var (
	strictLayouts = []string{"2006-01-02 15:04:05", time.RFC3339}
	humanLayouts  = []string{"Jan 2, 2006", "January 2, 2006"}
)

// CoerceRating converts a raw token into a 1-5 rating. 0 means absent:
// empty, non-numeric, non-integral, and out-of-range tokens all land there.
func CoerceRating(v any) int {
	n, ok := toInt(v)
	if !ok || n < 1 || n > 5 {
		return 0
	}
	return n
}

// CoerceTimestamp parses a raw token into an ISO-8601 string plus epoch
// seconds. A strict parse sets both; a human parse only recovers the date
// and leaves the epoch at zero. When nothing parses, both results are
// absent; the raw token is never passed through as a timestamp.
func CoerceTimestamp(v any) (string, int64) {
	s, ok := v.(string)
	if !ok {
		return "", 0
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0
	}

	for _, layout := range strictLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return t.Format(time.RFC3339), t.Unix()
		}
	}
	for _, layout := range humanLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Format(time.RFC3339), 0
		}
	}
	return "", 0
}

// CoerceInt64 converts numeric tokens into an int64, 0 when absent. Floats
// truncate toward zero.
func CoerceInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// CoerceFloat converts numeric tokens into a float64, 0 when absent.
func CoerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// EpochToISO renders epoch seconds as an ISO-8601 UTC string, "" when absent.
func EpochToISO(v any) string {
	e := CoerceInt64(v)
	if e == 0 {
		return ""
	}
	return time.Unix(e, 0).UTC().Format(time.RFC3339)
}

// ParseInstalls extracts a numeric install count from display strings like
// "10,000,000+". Returns 0 when no digits are present.
func ParseInstalls(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return CoerceInt64(v)
	}

	digits := digitsRegexp.FindAllString(s, -1)
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(strings.Join(digits, ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// StripHTML unescapes entities, removes tags, and collapses whitespace.
func StripHTML(s string) string {
	s = html.UnescapeString(s)
	s = tagRegexp.ReplaceAllString(s, "")
	return CollapseWhitespace(s)
}

// CollapseWhitespace folds whitespace runs into single spaces and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// FlattenCategories splits a raw categories list into id and name slices.
// Only object elements with non-empty values contribute.
func FlattenCategories(v any) ([]string, []string) {
	list, ok := v.([]any)
	if !ok {
		return nil, nil
	}

	var ids, names []string
	for _, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := m["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
		if name, ok := m["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return ids, names
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
