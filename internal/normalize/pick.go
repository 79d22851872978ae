package normalize

import (
	"strconv"
	"time"
)

// timeFormats are the date layouts the upstream API and fixtures use.
// Relative strings like "2 min ago" intentionally fail to parse and fall
// back to the caller's default.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// pickString returns the first present, non-empty string among the keys.
func pickString(r RawRecord, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s, true
				}
			case float64:
				// Numeric ids show up in fixture data.
				return strconv.FormatFloat(s, 'f', -1, 64), true
			}
		}
	}
	return "", false
}

func stringOr(r RawRecord, fallback string, keys ...string) string {
	if s, ok := pickString(r, keys...); ok {
		return s
	}
	return fallback
}

// pickFloat returns the first present numeric value among the keys.
// JSON numbers decode as float64; numeric strings are tolerated.
func pickFloat(r RawRecord, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case int:
				return float64(n), true
			case string:
				if f, err := strconv.ParseFloat(n, 64); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}

func floatOr(r RawRecord, fallback float64, keys ...string) float64 {
	if f, ok := pickFloat(r, keys...); ok {
		return f
	}
	return fallback
}

func pickInt(r RawRecord, keys ...string) (int, bool) {
	f, ok := pickFloat(r, keys...)
	if !ok {
		return 0, false
	}
	return int(f + 0.5), true
}

func intOr(r RawRecord, fallback int, keys ...string) int {
	if i, ok := pickInt(r, keys...); ok {
		return i
	}
	return fallback
}

// pickTime parses the first present timestamp among the keys.
func pickTime(r RawRecord, keys ...string) (time.Time, bool) {
	s, ok := pickString(r, keys...)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stringsOr returns the first present string list among the keys, or an
// empty (non-nil) slice.
func stringsOr(r RawRecord, keys ...string) []string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if list, ok := v.([]any); ok {
				out := make([]string, 0, len(list))
				for _, item := range list {
					if s, ok := item.(string); ok {
						out = append(out, s)
					}
				}
				return out
			}
		}
	}
	return []string{}
}

// clampScore bounds a score to the documented [0,100] domain.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func nonNegativeInt(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
