// Package data defines the tabular input model for cellplot and the domain
// inference used by scale resolution.
//
// A DataSource is an ordered sequence of records mapping field names to
// scalar values. Order matters: it is the draw order for position-dependent
// geometries such as lines and paths. The engine never mutates caller data.
//
// Missing or non-scalar fields are not errors. A record that lacks a field,
// or holds a value that cannot be coerced for the requesting channel, is
// simply excluded from domain inference and from drawing for that channel.
package data

import (
	"fmt"
	"math"
	"sort"
)

// Record is a single observation: field name to scalar value.
// Supported scalar types are Go numeric types, strings, and bools.
type Record map[string]any

// DataSource is an ordered sequence of records. The engine treats it as
// read-only; callers retain ownership.
type DataSource []Record

// Number coerces v to a float64. The second return value reports whether
// the coercion succeeded. NaN values coerce successfully; callers that need
// finite values filter NaN themselves.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// String coerces v to a string representation. Numbers are formatted with
// %v so integers stay free of trailing zeros. The second return value is
// false for nil and for non-scalar values.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", s), true
	default:
		return "", false
	}
}

// NumberField extracts the numeric value of field from r.
// Returns false when the field is absent, non-numeric, or NaN.
func NumberField(r Record, field string) (float64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}
	n, ok := Number(v)
	if !ok || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// StringField extracts the stringified value of field from r.
// Returns false when the field is absent or non-scalar.
func StringField(r Record, field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	return String(v)
}

// ContinuousDomain scans field across rows and returns the [min, max] pair
// of its numeric, non-NaN values.
//
// Rows where the field is missing or non-numeric are skipped. If no usable
// value is found the domain defaults to [0, 1]. A degenerate domain
// (min == max) is expanded by one unit on each side so every downstream
// normalize call has a non-zero denominator.
func ContinuousDomain(rows DataSource, field string) (min, max float64) {
	found := false
	for _, r := range rows {
		n, ok := NumberField(r, field)
		if !ok {
			continue
		}
		if !found {
			min, max = n, n
			found = true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if !found {
		return 0, 1
	}
	if min == max {
		return min - 1, max + 1
	}
	return min, max
}

// ExpandDomain widens [min, max] by frac of its span on each side so
// boundary points do not land exactly on the panel edge. The conventional
// value for frac is 0.05.
func ExpandDomain(min, max, frac float64) (float64, float64) {
	margin := (max - min) * frac
	return min - margin, max + margin
}

// DiscreteDomain scans field across rows and returns its distinct
// stringified values sorted lexicographically.
//
// Sorting, rather than first-seen order, makes legend and axis order a pure
// function of the data. Index position in the returned slice is the value's
// index for discrete normalization. Collection is a strict two-pass
// operation; the result is immutable and never grows on later lookups.
func DiscreteDomain(rows DataSource, field string) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		s, ok := StringField(r, field)
		if !ok {
			continue
		}
		seen[s] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for s := range seen {
		values = append(values, s)
	}
	sort.Strings(values)
	return values
}
