// Package scale resolves domains and ranges into the normalize/map
// functions geometries use to place data on the canvas.
//
// A scale combines a domain (inferred from the data by [pkg/data]) with a
// target range and an optional axis transform. Continuous scales normalize
// through the transform; discrete scales normalize by sorted index. Color,
// size, and alpha scales share the same normalize shape with their own
// output ranges.
package scale

import "math"

// Transform is a per-axis value transform applied to both domain endpoints
// and the queried value before normalization.
type Transform string

// Supported transforms.
const (
	TransformIdentity Transform = "identity"
	TransformLog10    Transform = "log10"
	TransformSqrt     Transform = "sqrt"
	TransformReverse  Transform = "reverse"
)

// Apply evaluates the transform at v.
//
// Out-of-domain inputs degrade to defined fallbacks rather than failing:
// log10 of a non-positive value is -Inf, sqrt of a negative value is 0.
// Reverse negates, which preserves ordering under the usual
// (f(v)-f(min))/(f(max)-f(min)) normalization.
func (t Transform) Apply(v float64) float64 {
	switch t {
	case TransformLog10:
		if v <= 0 {
			return math.Inf(-1)
		}
		return math.Log10(v)
	case TransformSqrt:
		if v < 0 {
			return 0
		}
		return math.Sqrt(v)
	case TransformReverse:
		return -v
	default:
		return v
	}
}

// Valid reports whether t names a known transform. The empty string counts
// as identity.
func (t Transform) Valid() bool {
	switch t {
	case "", TransformIdentity, TransformLog10, TransformSqrt, TransformReverse:
		return true
	}
	return false
}
