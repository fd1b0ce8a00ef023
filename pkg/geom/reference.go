package geom

import (
	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/scale"
)

// renderHLine draws a dashed horizontal rule at the y intercept.
func renderHLine(p Params, ctx *Context) error {
	s := ctx.Scales.Y
	if s == nil {
		return nil
	}
	cy, ok := s.Map(p.YIntercept)
	if !ok {
		return nil
	}
	y := round(cy)
	if y < ctx.Panel.Y || y >= ctx.Panel.Bottom() {
		return nil
	}
	ctx.Canvas.HLine(ctx.Panel.X, ctx.Panel.Right()-1, y, canvas.Cell{Char: '┄', Fg: p.Color})
	return nil
}

// renderVLine draws a dashed vertical rule at the x intercept.
func renderVLine(p Params, ctx *Context) error {
	s := ctx.Scales.X
	if s == nil {
		return nil
	}
	cx, ok := s.Map(p.XIntercept)
	if !ok {
		return nil
	}
	x := round(cx)
	if x < ctx.Panel.X || x >= ctx.Panel.Right() {
		return nil
	}
	ctx.Canvas.VLine(x, ctx.Panel.Y, ctx.Panel.Bottom()-1, canvas.Cell{Char: '┆', Fg: p.Color})
	return nil
}

// renderABLine draws y = intercept + slope*x, evaluated per panel column
// so the line clips itself against the panel.
func renderABLine(p Params, ctx *Context) error {
	sx, sy := ctx.Scales.X, ctx.Scales.Y
	if sx == nil || sy == nil || sx.Kind != scale.Continuous || sy.Kind != scale.Continuous {
		return nil
	}
	span := sx.RangeMax - sx.RangeMin
	if span == 0 {
		return nil
	}
	for x := ctx.Panel.X; x < ctx.Panel.Right(); x++ {
		t := (float64(x) - sx.RangeMin) / span
		dx := sx.DomainMin + t*(sx.DomainMax-sx.DomainMin)
		cy, ok := sy.Map(p.Intercept + p.Slope*dx)
		if !ok {
			continue
		}
		y := round(cy)
		if y < ctx.Panel.Y || y >= ctx.Panel.Bottom() {
			continue
		}
		ch := '─'
		if p.Slope != 0 {
			if (p.Slope > 0) == (sy.RangeMax < sy.RangeMin) {
				ch = '╱'
			} else {
				ch = '╲'
			}
		}
		ctx.Canvas.Set(x, y, canvas.Cell{Char: ch, Fg: p.Color})
	}
	return nil
}
