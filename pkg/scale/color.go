package scale

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
)

// DefaultPalette is the fixed categorical palette. Discrete color scales
// cycle it modulo its length, so an eleventh category wraps back to the
// first color.
var DefaultPalette = []canvas.RGBA{
	canvas.RGB(0x1f, 0x77, 0xb4), // blue
	canvas.RGB(0xff, 0x7f, 0x0e), // orange
	canvas.RGB(0x2c, 0xa0, 0x2c), // green
	canvas.RGB(0xd6, 0x27, 0x28), // red
	canvas.RGB(0x94, 0x67, 0xbd), // purple
	canvas.RGB(0x8c, 0x56, 0x4b), // brown
	canvas.RGB(0xe3, 0x77, 0xc2), // pink
	canvas.RGB(0x7f, 0x7f, 0x7f), // gray
	canvas.RGB(0xbc, 0xbd, 0x22), // olive
	canvas.RGB(0x17, 0xbe, 0xcf), // cyan
}

// DefaultGradient holds the endpoints continuous color scales interpolate
// between when the caller gives none.
var DefaultGradient = [2]canvas.RGBA{
	canvas.RGB(0x13, 0x30, 0x6d), // dark blue
	canvas.RGB(0x56, 0xb1, 0xf7), // light blue
}

// MapColor maps v to a color.
//
// Discrete scales pick palette[index mod len(palette)]. Continuous scales
// interpolate the gradient endpoints over the clamped normalized value.
// Returns false when v is missing for this scale.
func (s *Scale) MapColor(v any) (canvas.RGBA, bool) {
	if s.Kind == Discrete {
		str, ok := data.String(v)
		if !ok {
			return canvas.RGBA{}, false
		}
		i, ok := s.index[str]
		if !ok {
			return canvas.RGBA{}, false
		}
		palette := s.Palette
		if len(palette) == 0 {
			palette = DefaultPalette
		}
		return palette[i%len(palette)], true
	}

	t, ok := s.Normalize(v)
	if !ok {
		return canvas.RGBA{}, false
	}
	lo, hi := s.GradientLo, s.GradientHi
	if !lo.Set() && !hi.Set() {
		lo, hi = DefaultGradient[0], DefaultGradient[1]
	}
	return Interpolate(lo, hi, clamp01(t)), true
}

// Interpolate blends two colors at parameter t in [0, 1]. RGB channels
// blend in linear RGB space; alpha interpolates separately.
func Interpolate(lo, hi canvas.RGBA, t float64) canvas.RGBA {
	a := colorful.Color{R: float64(lo.R) / 255, G: float64(lo.G) / 255, B: float64(lo.B) / 255}
	b := colorful.Color{R: float64(hi.R) / 255, G: float64(hi.G) / 255, B: float64(hi.B) / 255}
	mix := a.BlendRgb(b, t)
	alpha := float64(lo.A) + t*(float64(hi.A)-float64(lo.A))
	return canvas.RGBA{
		R: uint8(mix.R*255 + 0.5),
		G: uint8(mix.G*255 + 0.5),
		B: uint8(mix.B*255 + 0.5),
		A: uint8(alpha + 0.5),
	}
}
