package plot

import (
	"math"
	"sort"

	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/scale"
	"github.com/cellplot/cellplot/pkg/stat"
)

// expandFrac is the padding applied to continuous positional domains so
// extreme marks don't sit on the panel border.
const expandFrac = 0.05

// xChannels and yChannels are the positional channels pooled into each
// axis domain.
var xChannels = []data.Aes{data.AesX, data.AesXMin, data.AesXMax, data.AesXEnd}

var yChannels = []data.Aes{
	data.AesY, data.AesYMin, data.AesYMax, data.AesYEnd,
	data.AesLower, data.AesMiddle, data.AesUpper,
}

// zeroBasedKinds grow from the zero baseline, so their y domain must
// include zero.
var zeroBasedKinds = map[geom.Kind]bool{
	geom.Bar:       true,
	geom.Col:       true,
	geom.Histogram: true,
	geom.Area:      true,
}

// resolved is the full scale set shared by every panel, with ranges left
// unset; panels clone and range them.
type resolved struct {
	x, y, y2                 *scale.Scale
	color, fill, size, shape *scale.Scale
	alpha                    *scale.Scale
}

// resolveScales infers domains across all layers and builds the shared
// scales.
func (p *Plot) resolveScales() resolved {
	var r resolved
	r.x = p.resolvePositional(xChannels, p.xTrans, false)
	r.y = p.resolvePositional(yChannels, p.yTrans, true)

	if p.hasSecondaryAxis() {
		r.y2 = p.resolveChannelScale(data.AesY2, data.AesY2, scale.TransformIdentity)
	}

	r.color = p.resolveColorScale(data.AesColor)
	r.fill = p.resolveColorScale(data.AesFill)

	if lo, hi, ok := p.numericExtent(data.AesSize); ok {
		r.size = scale.NewSize(data.AesSize, lo, hi)
	}
	if lo, hi, ok := p.numericExtent(data.AesAlpha); ok {
		r.alpha = scale.NewAlpha(data.AesAlpha, lo, hi)
	}
	if levels := p.discreteLevels(data.AesShape); len(levels) > 0 {
		r.shape = scale.NewDiscrete(data.AesShape, levels)
	}
	return r
}

// resolvePositional pools every layer's values for the given channels
// into one scale: continuous when all values coerce to numbers, discrete
// otherwise.
func (p *Plot) resolvePositional(channels []data.Aes, t scale.Transform, vertical bool) *scale.Scale {
	aesName := channels[0]

	if p.positionalIsDiscrete(channels) {
		var levels []string
		seen := make(map[string]bool)
		for _, l := range p.layers {
			m := p.mergedAes(l)
			for _, ch := range channels {
				f, ok := m.Field(ch)
				if !ok {
					continue
				}
				for _, lvl := range data.DiscreteDomain(p.layerRows(l), f) {
					if !seen[lvl] {
						seen[lvl] = true
						levels = append(levels, lvl)
					}
				}
			}
		}
		sortLevels(levels)
		return scale.NewDiscrete(aesName, levels)
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	accumulate := func(v float64) {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	for _, l := range p.layers {
		m := p.mergedAes(l)
		rows := p.layerRows(l)

		// The x/y pair goes through the coordinate transform so domains
		// match what the geometries draw.
		if m.Has(data.AesX) || m.Has(data.AesY) {
			for _, row := range rows {
				tx, ty, xok, yok := geom.TransformedXY(p.coords, m, row)
				if vertical && yok {
					accumulate(ty)
				}
				if !vertical && xok {
					accumulate(tx)
				}
			}
		}

		for _, ch := range channels {
			if ch == data.AesX || ch == data.AesY {
				continue
			}
			f, ok := m.Field(ch)
			if !ok {
				continue
			}
			cLo, cHi := data.ContinuousDomain(rows, f)
			accumulate(cLo)
			accumulate(cHi)
		}

		if vertical {
			// Tally-driven and zero-based layers extend the y domain.
			if l.Kind == geom.Bar && l.Params.Stat != geom.StatIdentity {
				if f, ok := m.Field(data.AesX); ok {
					for _, rec := range stat.Count(rows, f) {
						if v, ok := data.NumberField(rec, "count"); ok {
							accumulate(v)
						}
					}
				}
			}
			if zeroBasedKinds[l.Kind] {
				accumulate(0)
			}
		}
	}

	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	// Padding happens in raw space, which a non-linear transform would
	// distort (a log axis must not be pushed through zero).
	if t == scale.TransformIdentity {
		lo, hi = data.ExpandDomain(lo, hi, expandFrac)
	}
	return scale.NewContinuous(aesName, lo, hi, t)
}

// positionalIsDiscrete reports whether any mapped value for the channels
// fails numeric coercion.
func (p *Plot) positionalIsDiscrete(channels []data.Aes) bool {
	for _, l := range p.layers {
		m := p.mergedAes(l)
		for _, ch := range channels {
			f, ok := m.Field(ch)
			if !ok {
				continue
			}
			for _, row := range p.layerRows(l) {
				v, present := row[f]
				if !present {
					continue
				}
				if _, ok := data.Number(v); !ok {
					return true
				}
			}
		}
	}
	return false
}

// resolveChannelScale builds a plain continuous scale over one channel.
func (p *Plot) resolveChannelScale(ch data.Aes, name data.Aes, t scale.Transform) *scale.Scale {
	lo, hi, ok := p.numericExtent(ch)
	if !ok {
		return nil
	}
	lo, hi = data.ExpandDomain(lo, hi, expandFrac)
	return scale.NewContinuous(name, lo, hi, t)
}

// resolveColorScale builds a discrete or continuous color scale for the
// channel, honoring the theme's palette and gradient.
func (p *Plot) resolveColorScale(ch data.Aes) *scale.Scale {
	if levels := p.discreteLevels(ch); len(levels) > 0 {
		return scale.NewDiscreteColor(ch, levels, p.theme.Palette)
	}
	lo, hi, ok := p.numericExtent(ch)
	if !ok {
		return nil
	}
	return scale.NewContinuousColor(ch, lo, hi, p.theme.Gradient[0], p.theme.Gradient[1])
}

// discreteLevels returns the pooled sorted levels of the channel when it
// is mapped and holds non-numeric values, nil otherwise.
func (p *Plot) discreteLevels(ch data.Aes) []string {
	discrete := false
	var levels []string
	seen := make(map[string]bool)
	for _, l := range p.layers {
		m := p.mergedAes(l)
		f, ok := m.Field(ch)
		if !ok {
			continue
		}
		rows := p.layerRows(l)
		for _, row := range rows {
			if v, present := row[f]; present {
				if _, numeric := data.Number(v); !numeric {
					discrete = true
				}
			}
		}
		for _, lvl := range data.DiscreteDomain(rows, f) {
			if !seen[lvl] {
				seen[lvl] = true
				levels = append(levels, lvl)
			}
		}
	}
	if !discrete {
		return nil
	}
	sortLevels(levels)
	return levels
}

// numericExtent pools the numeric extent of the channel across layers.
func (p *Plot) numericExtent(ch data.Aes) (float64, float64, bool) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, l := range p.layers {
		m := p.mergedAes(l)
		f, ok := m.Field(ch)
		if !ok {
			continue
		}
		for _, row := range p.layerRows(l) {
			if v, ok := data.NumberField(row, f); ok {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi, true
}

func sortLevels(levels []string) {
	sort.Strings(levels)
}
