// Package normalize coerces raw request payloads into typed, trimmed input
// records.  Normalization never fails and never validates: a field that was
// present but unusable is preserved in a state the validation layer can
// report on, so create and update requests flow through the same validators
// against already-clean data.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Num is a numeric payload field after coercion.  Present reports whether
// the field appeared in the payload with a non-empty value; a value that
// was present but did not parse carries NaN, mirroring loose client-side
// number coercion so validation can distinguish "missing" from "invalid".
type Num struct {
	Present bool
	Value   float64
}

// NumOf wraps a concrete value, mostly useful in tests and when merging a
// stored row into a partial update payload.
func NumOf(v float64) Num { return Num{Present: true, Value: v} }

// NaN reports whether the field was present but not parseable as a number.
func (n Num) NaN() bool { return n.Present && math.IsNaN(n.Value) }

// Int64 returns the value truncated to an integer identifier.
func (n Num) Int64() int64 { return int64(n.Value) }

// num coerces an arbitrary JSON value to a Num.  Absent keys, nulls and
// empty strings count as not present.
func num(raw map[string]any, key string) Num {
	v, ok := raw[key]
	if !ok || v == nil {
		return Num{}
	}
	switch t := v.(type) {
	case float64:
		return Num{Present: true, Value: t}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Num{}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Num{Present: true, Value: math.NaN()}
		}
		return Num{Present: true, Value: f}
	default:
		return Num{Present: true, Value: math.NaN()}
	}
}

// optStr coerces an optional free-text field: trimmed, with absent,
// non-string and empty values collapsing to nil.
func optStr(raw map[string]any, key string) *string {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// reqStr coerces a required free-text field.  Absence stays nil so update
// mode can skip it; a present but empty or non-string value becomes a
// pointer to "" so validation reports it instead of normalization
// inventing a default.
func reqStr(raw map[string]any, key string) *string {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	return &s
}
