package scale

import (
	"math"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
)

// Kind distinguishes the two fundamental scale natures.
type Kind string

const (
	// Continuous scales normalize numeric values over a [min, max] domain.
	Continuous Kind = "continuous"
	// Discrete scales normalize stringified values by sorted index.
	Discrete Kind = "discrete"
)

// Scale combines a domain and a target range into normalize/map functions.
// Scales are immutable after construction; the resolver builds the full
// domain in one pass before any mapping happens.
type Scale struct {
	Aes       data.Aes
	Kind      Kind
	Transform Transform

	// Continuous domain.
	DomainMin, DomainMax float64

	// Discrete domain, sorted lexicographically. index is its inverse.
	Levels []string
	index  map[string]int

	// Canvas range. For vertical scales RangeMin holds the bottom row and
	// RangeMax the top row, so larger values land at smaller row indices.
	RangeMin, RangeMax float64

	// Color mapping configuration.
	Palette                []canvas.RGBA // discrete: cycled modulo length
	GradientLo, GradientHi canvas.RGBA   // continuous: interpolation endpoints

	// Output range for size and alpha scales.
	OutMin, OutMax float64

	// SizeBuckets quantizes size output; 0 means no quantization.
	SizeBuckets int
}

// NewContinuous creates a continuous positional scale over [min, max] with
// the given axis transform.
func NewContinuous(aes data.Aes, min, max float64, t Transform) *Scale {
	return &Scale{
		Aes:       aes,
		Kind:      Continuous,
		Transform: t,
		DomainMin: min,
		DomainMax: max,
	}
}

// NewDiscrete creates a discrete positional scale over the given levels.
// Levels must already be sorted and distinct (data.DiscreteDomain output).
func NewDiscrete(aes data.Aes, levels []string) *Scale {
	idx := make(map[string]int, len(levels))
	for i, l := range levels {
		idx[l] = i
	}
	return &Scale{
		Aes:    aes,
		Kind:   Discrete,
		Levels: levels,
		index:  idx,
	}
}

// WithRange sets the canvas range and returns s for chaining.
func (s *Scale) WithRange(lo, hi float64) *Scale {
	s.RangeMin, s.RangeMax = lo, hi
	return s
}

// NewDiscreteColor creates a color scale cycling palette by level index.
// A nil palette uses DefaultPalette.
func NewDiscreteColor(aes data.Aes, levels []string, palette []canvas.RGBA) *Scale {
	s := NewDiscrete(aes, levels)
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	s.Palette = palette
	return s
}

// NewContinuousColor creates a color scale interpolating between lo and hi
// over the domain.
func NewContinuousColor(aes data.Aes, min, max float64, lo, hi canvas.RGBA) *Scale {
	s := NewContinuous(aes, min, max, TransformIdentity)
	s.GradientLo, s.GradientHi = lo, hi
	return s
}

// NewSize creates a size scale over [min, max], quantized into four
// buckets across the output range [1, 4].
func NewSize(aes data.Aes, min, max float64) *Scale {
	s := NewContinuous(aes, min, max, TransformIdentity)
	s.OutMin, s.OutMax = 1, 4
	s.SizeBuckets = 4
	return s
}

// NewAlpha creates an alpha scale over [min, max] with the conventional
// continuous output range [0.1, 1].
func NewAlpha(aes data.Aes, min, max float64) *Scale {
	s := NewContinuous(aes, min, max, TransformIdentity)
	s.OutMin, s.OutMax = 0.1, 1
	return s
}

// Normalize maps a raw value into [0, 1].
//
// Continuous scales compute (f(v)-f(min))/(f(max)-f(min)) for the axis
// transform f. Discrete scales return index/(N-1), or 0.5 for a single
// level. The second return value is false when the value cannot be coerced
// for this scale's kind, or is absent from a discrete domain.
func (s *Scale) Normalize(v any) (float64, bool) {
	switch s.Kind {
	case Discrete:
		str, ok := data.String(v)
		if !ok {
			return 0, false
		}
		i, ok := s.index[str]
		if !ok {
			return 0, false
		}
		return s.normalizeIndex(i), true
	default:
		n, ok := data.Number(v)
		if !ok || math.IsNaN(n) {
			return 0, false
		}
		return s.normalizeContinuous(n), true
	}
}

func (s *Scale) normalizeIndex(i int) float64 {
	if len(s.Levels) <= 1 {
		return 0.5
	}
	return float64(i) / float64(len(s.Levels)-1)
}

func (s *Scale) normalizeContinuous(v float64) float64 {
	fmin := s.Transform.Apply(s.DomainMin)
	fmax := s.Transform.Apply(s.DomainMax)
	fv := s.Transform.Apply(v)

	den := fmax - fmin
	switch {
	case den == 0 || math.IsNaN(den):
		return 0.5
	case math.IsInf(den, 0):
		// A transformed endpoint ran away to infinity (log10 of a domain
		// touching zero). Ordering still holds: infinite values pin to
		// their edge, finite values sit between.
		if math.IsInf(fv, -1) {
			return 0
		}
		if fv >= fmax {
			return 1
		}
		return 0.5
	}
	return (fv - fmin) / den
}

// ToCanvas affinely maps a normalized t onto the canvas range.
func (s *Scale) ToCanvas(t float64) float64 {
	return s.RangeMin + t*(s.RangeMax-s.RangeMin)
}

// Map normalizes v and maps it onto the canvas range.
func (s *Scale) Map(v any) (float64, bool) {
	t, ok := s.Normalize(v)
	if !ok {
		return 0, false
	}
	return s.ToCanvas(t), true
}

// MapLevel maps the i-th discrete level onto the canvas range.
func (s *Scale) MapLevel(i int) float64 {
	return s.ToCanvas(s.normalizeIndex(i))
}

// MapSize maps v to a size in the output range, quantized into
// SizeBuckets steps when configured.
func (s *Scale) MapSize(v any) (float64, bool) {
	t, ok := s.Normalize(v)
	if !ok {
		return 0, false
	}
	t = clamp01(t)
	if s.SizeBuckets > 1 {
		bucket := int(t * float64(s.SizeBuckets))
		if bucket >= s.SizeBuckets {
			bucket = s.SizeBuckets - 1
		}
		t = float64(bucket) / float64(s.SizeBuckets-1)
	}
	return s.OutMin + t*(s.OutMax-s.OutMin), true
}

// MapAlpha maps v to an opacity in the output range.
func (s *Scale) MapAlpha(v any) (float64, bool) {
	t, ok := s.Normalize(v)
	if !ok {
		return 0, false
	}
	return s.OutMin + clamp01(t)*(s.OutMax-s.OutMin), true
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
