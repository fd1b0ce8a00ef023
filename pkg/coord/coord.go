// Package coord provides the coordinate transforms applied to raw (x, y)
// pairs before scale normalization.
//
// A Coord is stateless beyond its own configuration and is shared,
// unmutated, across every layer of one plot. Geometry renderers are
// coord-agnostic: the transform runs once per point, upstream of mapping.
// The one caveat is inherently directional primitives — a horizontal or
// vertical reference line has no sensible polar interpretation and is
// semantically degenerate under polar, never an error.
package coord

import (
	"math"

	"github.com/cellplot/cellplot/pkg/scale"
)

// Kind tags the closed set of coordinate systems. Adding a kind without
// covering it in Apply is a compile-visible hole in the switch below, kept
// exhaustive on purpose.
type Kind string

const (
	// Cartesian is the identity coordinate system.
	Cartesian Kind = "cartesian"
	// Flip swaps x and y. Applying it twice returns the original point.
	Flip Kind = "flip"
	// Polar treats one axis as angle and the other as radius.
	Polar Kind = "polar"
	// Fixed is cartesian with an aspect ratio consumed only by layout.
	Fixed Kind = "fixed"
	// Trans applies an independent transform per axis.
	Trans Kind = "trans"
)

// Coord is a coordinate system configuration. The zero value is cartesian.
type Coord struct {
	Kind Kind

	// Theta selects the angle axis for polar: "x" (default) or "y".
	Theta string

	// Ratio is the y/x aspect ratio for fixed coordinates.
	Ratio float64

	// XTrans and YTrans are the per-axis transforms for trans coordinates.
	XTrans, YTrans scale.Transform
}

// NewCartesian returns the identity coordinate system.
func NewCartesian() Coord {
	return Coord{Kind: Cartesian}
}

// NewFlip returns the axis-swapping coordinate system.
func NewFlip() Coord {
	return Coord{Kind: Flip}
}

// NewPolar returns a polar coordinate system with the given angle axis
// ("x" or "y"; anything else defaults to "x").
func NewPolar(theta string) Coord {
	if theta != "y" {
		theta = "x"
	}
	return Coord{Kind: Polar, Theta: theta}
}

// NewFixed returns a cartesian system carrying an aspect ratio for the
// layout engine. A non-positive ratio is treated as 1.
func NewFixed(ratio float64) Coord {
	if ratio <= 0 {
		ratio = 1
	}
	return Coord{Kind: Fixed, Ratio: ratio}
}

// NewTrans returns a per-axis transformed coordinate system.
func NewTrans(x, y scale.Transform) Coord {
	return Coord{Kind: Trans, XTrans: x, YTrans: y}
}

// Apply transforms a raw point. It is pure: the same input always yields
// the same output for a given configuration.
func (c Coord) Apply(x, y float64) (float64, float64) {
	switch c.Kind {
	case Flip:
		return y, x
	case Polar:
		theta, r := x, y
		if c.Theta == "y" {
			theta, r = y, x
		}
		return r * math.Cos(theta), r * math.Sin(theta)
	case Trans:
		return c.XTrans.Apply(x), c.YTrans.Apply(y)
	case Cartesian, Fixed:
		return x, y
	default:
		return x, y
	}
}

// AspectRatio returns the aspect ratio layout should honor, or 0 when the
// coordinate system imposes none.
func (c Coord) AspectRatio() float64 {
	if c.Kind == Fixed {
		return c.Ratio
	}
	return 0
}
