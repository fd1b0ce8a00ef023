// Package geom implements the chart primitives. Each geometry kind is a
// pure renderer: given rows, parameters, an aesthetic mapping, and the
// resolved scales, it issues draw calls into the target canvas.
//
// # Shared Contract
//
// Every renderer resolves each row's required fields to canvas coordinates
// through the resolved scales, skips rows with missing or non-coercible
// required fields, and lets an aesthetic-mapped value win over a fixed
// parameter for the same channel. Layers draw in declaration order and,
// within a layer, in DataSource order; later draws paint over earlier
// ones. The only hard failure is a geometry whose strictly required
// aesthetics are entirely unmapped — there is no sensible default to draw.
package geom

import (
	"math"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/coord"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
	"github.com/cellplot/cellplot/pkg/scale"
)

// Kind tags the closed set of geometry primitives. Render dispatches on
// it exhaustively; an unknown kind is an INVALID_GEOM error, never a
// silent no-op.
type Kind string

// Geometry kinds.
const (
	Point      Kind = "point"
	Jitter     Kind = "jitter"
	Count      Kind = "count"
	Rug        Kind = "rug"
	Line       Kind = "line"
	Path       Kind = "path"
	Step       Kind = "step"
	Segment    Kind = "segment"
	Area       Kind = "area"
	Ribbon     Kind = "ribbon"
	Density    Kind = "density"
	Smooth     Kind = "smooth"
	FreqPoly   Kind = "freqpoly"
	Bar        Kind = "bar"
	Col        Kind = "col"
	Histogram  Kind = "histogram"
	Bin2D      Kind = "bin2d"
	Tile       Kind = "tile"
	RectGeom   Kind = "rect"
	ErrorBar   Kind = "errorbar"
	LineRange  Kind = "linerange"
	PointRange Kind = "pointrange"
	CrossBar   Kind = "crossbar"
	BoxPlot    Kind = "boxplot"
	Violin     Kind = "violin"
	HLine      Kind = "hline"
	VLine      Kind = "vline"
	ABLine     Kind = "abline"
	Text       Kind = "text"
	Label      Kind = "label"
)

// Stat selects the statistic a geometry applies to its rows before
// drawing. Most geometries draw identity; bar defaults to a per-x tally.
type Stat string

const (
	StatIdentity Stat = "identity"
	StatCount    Stat = "count"
)

// Position selects how grouped bars are arranged at one x position.
type Position string

const (
	PositionStack Position = "stack"
	PositionDodge Position = "dodge"
	PositionFill  Position = "fill"
)

// Params are the fixed (non-mapped) parameters of one layer. A mapped
// aesthetic for the same channel always wins over the fixed value here.
type Params struct {
	Char  rune        // glyph override for point-like geometries
	Color canvas.RGBA // stroke color
	Fill  canvas.RGBA // fill color
	Size  float64     // marker size 1..4
	Alpha float64     // fixed opacity 0..1

	Stat     Stat
	Position Position

	Width float64 // bar/box width as a fraction of the slot, default 0.9

	Sides string // rug: subset of "btlr", default "b"
	Arrow bool   // segment: draw an arrowhead at the end point

	// Reference line literals.
	YIntercept float64 // hline
	XIntercept float64 // vline
	Intercept  float64 // abline
	Slope      float64 // abline

	Justify canvas.Justify // text/label anchoring
}

// Scales is the full resolved scale set one layer draws against. Nil
// members mean the channel is unused by the plot.
type Scales struct {
	X     *scale.Scale
	Y     *scale.Scale
	Y2    *scale.Scale
	Color *scale.Scale
	Fill  *scale.Scale
	Size  *scale.Scale
	Alpha *scale.Scale
	Shape *scale.Scale
}

// Context carries the per-panel render state shared by every layer.
type Context struct {
	Canvas *canvas.Canvas
	Panel  canvas.Rect
	Scales Scales
	Coord  coord.Coord
}

// Render draws one layer. rows is consumed in order; the canvas is the
// only output.
func Render(k Kind, rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	if err := requireAes(k, aes); err != nil {
		return err
	}
	switch k {
	case Point:
		return renderPoint(rows, p, aes, ctx, 0)
	case Jitter:
		return renderJitter(rows, p, aes, ctx)
	case Count:
		return renderCount(rows, p, aes, ctx)
	case Rug:
		return renderRug(rows, p, aes, ctx)
	case Line, Density, FreqPoly:
		return renderLine(rows, p, aes, ctx, true)
	case Path:
		return renderLine(rows, p, aes, ctx, false)
	case Step:
		return renderStep(rows, p, aes, ctx)
	case Segment:
		return renderSegment(rows, p, aes, ctx)
	case Smooth:
		return renderSmooth(rows, p, aes, ctx)
	case Area:
		return renderArea(rows, p, aes, ctx)
	case Ribbon:
		return renderRibbon(rows, p, aes, ctx)
	case Bar:
		return renderBar(rows, p, aes, ctx)
	case Col, Histogram:
		return renderCol(rows, p, aes, ctx)
	case Tile, Bin2D:
		return renderTile(rows, p, aes, ctx)
	case RectGeom:
		return renderRect(rows, p, aes, ctx)
	case ErrorBar:
		return renderInterval(rows, p, aes, ctx, capTee)
	case LineRange:
		return renderInterval(rows, p, aes, ctx, capNone)
	case PointRange:
		return renderPointRange(rows, p, aes, ctx)
	case CrossBar:
		return renderCrossBar(rows, p, aes, ctx)
	case BoxPlot:
		return renderBoxPlot(rows, p, aes, ctx)
	case Violin:
		return renderViolin(rows, p, aes, ctx)
	case HLine:
		return renderHLine(p, ctx)
	case VLine:
		return renderVLine(p, ctx)
	case ABLine:
		return renderABLine(p, ctx)
	case Text:
		return renderText(rows, p, aes, ctx, false)
	case Label:
		return renderText(rows, p, aes, ctx, true)
	default:
		return errors.New(errors.ErrCodeInvalidGeom, "unknown geometry %q", k)
	}
}

// required lists each geometry's strictly required aesthetics. Reference
// geometries draw from literals and require none.
var required = map[Kind][]data.Aes{
	Point:      {data.AesX, data.AesY},
	Jitter:     {data.AesX, data.AesY},
	Count:      {data.AesX, data.AesY},
	Rug:        {},
	Line:       {data.AesX, data.AesY},
	Path:       {data.AesX, data.AesY},
	Step:       {data.AesX, data.AesY},
	Segment:    {data.AesX, data.AesY, data.AesXEnd, data.AesYEnd},
	Area:       {data.AesX, data.AesY},
	Ribbon:     {data.AesX, data.AesYMin, data.AesYMax},
	Density:    {data.AesX, data.AesY},
	Smooth:     {data.AesX, data.AesY},
	FreqPoly:   {data.AesX, data.AesY},
	Bar:        {data.AesX},
	Col:        {data.AesX, data.AesY},
	Histogram:  {data.AesX, data.AesY},
	Bin2D:      {data.AesX, data.AesY},
	Tile:       {data.AesX, data.AesY},
	RectGeom:   {data.AesXMin, data.AesXMax, data.AesYMin, data.AesYMax},
	ErrorBar:   {data.AesX, data.AesYMin, data.AesYMax},
	LineRange:  {data.AesX, data.AesYMin, data.AesYMax},
	PointRange: {data.AesX, data.AesY, data.AesYMin, data.AesYMax},
	CrossBar:   {data.AesX, data.AesY, data.AesYMin, data.AesYMax},
	BoxPlot:    {data.AesX},
	Violin:     {data.AesX, data.AesY},
	HLine:      {},
	VLine:      {},
	ABLine:     {},
	Text:       {data.AesX, data.AesY, data.AesLabel},
	Label:      {data.AesX, data.AesY, data.AesLabel},
}

// requireAes rejects a layer whose strictly required aesthetics are
// entirely unmapped. Rug is special-cased: it needs at least one of x or
// y depending on which edges it draws against.
func requireAes(k Kind, aes data.Mapping) error {
	req, ok := required[k]
	if !ok {
		return errors.New(errors.ErrCodeInvalidGeom, "unknown geometry %q", k)
	}
	for _, a := range req {
		if !aes.Has(a) {
			return errors.New(errors.ErrCodeMissingAesthetic,
				"geom_%s requires aesthetic %q", k, a)
		}
	}
	if k == Rug && !aes.Has(data.AesX) && !aes.Has(data.AesY) {
		return errors.New(errors.ErrCodeMissingAesthetic, "geom_rug requires x or y")
	}
	return nil
}

// mapChannel resolves one positional channel of a row to a canvas
// coordinate, without the coordinate transform.
func mapChannel(s *scale.Scale, aes data.Mapping, r data.Record, a data.Aes) (float64, bool) {
	f, ok := aes.Field(a)
	if !ok || s == nil {
		return 0, false
	}
	v, ok := r[f]
	if !ok {
		return 0, false
	}
	return s.Map(v)
}

// TransformedXY resolves a row's raw (x, y) through the coordinate
// transform, before any scale mapping. The plot resolver uses the same
// function for domain inference so domains and drawing agree. Rows where
// either channel is non-numeric bypass the transform (discrete positions
// have no meaningful polar or log image).
func TransformedXY(c coord.Coord, aes data.Mapping, r data.Record) (float64, float64, bool, bool) {
	x, xok := aes.Number(r, data.AesX)
	y, yok := aes.Number(r, data.AesY)
	if xok && yok {
		tx, ty := c.Apply(x, y)
		return tx, ty, true, true
	}
	return x, y, xok, yok
}

// mapXY resolves a row to integer canvas coordinates: coordinate
// transform first, then scale mapping. Discrete channels map directly.
func mapXY(aes data.Mapping, r data.Record, ctx *Context) (int, int, bool) {
	numeric := true
	if s := ctx.Scales.X; s != nil && s.Kind == scale.Discrete {
		numeric = false
	}
	if s := ctx.Scales.Y; s != nil && s.Kind == scale.Discrete {
		numeric = false
	}

	if numeric {
		tx, ty, xok, yok := TransformedXY(ctx.Coord, aes, r)
		if !xok || !yok {
			return 0, 0, false
		}
		cx, ok := ctx.Scales.X.Map(tx)
		if !ok {
			return 0, 0, false
		}
		cy, ok := ctx.Scales.Y.Map(ty)
		if !ok {
			return 0, 0, false
		}
		return round(cx), round(cy), true
	}

	cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX)
	if !ok {
		return 0, 0, false
	}
	cy, ok := mapChannel(ctx.Scales.Y, aes, r, data.AesY)
	if !ok {
		return 0, 0, false
	}
	return round(cx), round(cy), true
}

func round(f float64) int {
	return int(math.Round(f))
}

// style resolves a row's visual attributes: mapped aesthetics win over
// fixed parameters, alpha scales the color's opacity.
func style(r data.Record, p Params, aes data.Mapping, ctx *Context) (fg, bg canvas.RGBA, size float64) {
	fg = p.Color
	if aes.Has(data.AesColor) && ctx.Scales.Color != nil {
		if f, ok := aes.Field(data.AesColor); ok {
			if c, ok := ctx.Scales.Color.MapColor(r[f]); ok {
				fg = c
			}
		}
	}

	bg = p.Fill
	if aes.Has(data.AesFill) && ctx.Scales.Fill != nil {
		if f, ok := aes.Field(data.AesFill); ok {
			if c, ok := ctx.Scales.Fill.MapColor(r[f]); ok {
				bg = c
			}
		}
	}

	size = p.Size
	if aes.Has(data.AesSize) && ctx.Scales.Size != nil {
		if f, ok := aes.Field(data.AesSize); ok {
			if s, ok := ctx.Scales.Size.MapSize(r[f]); ok {
				size = s
			}
		}
	}

	alpha := p.Alpha
	if aes.Has(data.AesAlpha) && ctx.Scales.Alpha != nil {
		if f, ok := aes.Field(data.AesAlpha); ok {
			if a, ok := ctx.Scales.Alpha.MapAlpha(r[f]); ok {
				alpha = a
			}
		}
	}
	if alpha > 0 && alpha < 1 {
		fg = fade(fg, alpha)
		bg = fade(bg, alpha)
	}
	return fg, bg, size
}

// fade scales a color toward transparency. Terminal cells have no real
// alpha channel; the serializer treats the A value as opacity when
// downsampling, so fading here keeps low-alpha marks visually lighter.
func fade(c canvas.RGBA, alpha float64) canvas.RGBA {
	if !c.Set() {
		return c
	}
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}
