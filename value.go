package vitrin

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// asString coerces scalar form values to their string form. Maps, slices
// and nil coerce to "".
func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}

// asNumber coerces a form value to float64. Blank strings and
// non-numeric values report false; NaN and infinities are rejected.
func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isTruthy reports whether a toggle-style value is set.
func isTruthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

// isEmpty reports whether a form value counts as empty for requiredness:
// nil, blank string, or empty slice.
func isEmpty(v any) bool {
	switch e := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(e) == ""
	case []string:
		return len(e) == 0
	case []any:
		return len(e) == 0
	default:
		return false
	}
}

// trimOrNil trims a string value, mapping blank to nil the way the
// search endpoint expects absent text filters.
func trimOrNil(v any) *string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	return &s
}

// rangeBound parses a numeric range bound. Zero in any spelling (0, "0",
// "", nil) is treated as absent: zero is not a meaningful filter value in
// this payload convention, even though that discards a legitimate bound
// of exactly zero.
func rangeBound(v any) *float64 {
	f, ok := asNumber(v)
	if !ok || f == 0 {
		return nil
	}
	return &f
}

// toStringSlice normalizes enum filter values to a string slice.
func toStringSlice(v any) []string {
	switch s := v.(type) {
	case nil:
		return nil
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str := asString(e); str != "" {
				out = append(out, str)
			}
		}
		return out
	case string:
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	default:
		return nil
	}
}
