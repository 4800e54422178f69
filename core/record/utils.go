// Package record provides a set of utility functions to support value
// inspection and coercion across the rule engine and pipeline stages.
package record

import (
	"fmt"
	"math"
	"strconv"
)

// ToFloat64 is a utility function that converts a value of various numeric
// types to a float64. It returns the converted float64 and a boolean
// indicating whether the conversion was successful.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToString renders a field value for display and substring matching.
// Nil renders as the empty string rather than "<nil>".
func ToString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// IsEmpty reports whether a criterion or field value carries no user input:
// nil, the empty string, or a floating-point NaN.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return math.IsNaN(val)
	case float32:
		return math.IsNaN(float64(val))
	default:
		return false
	}
}
