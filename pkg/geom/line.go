package geom

import (
	"sort"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/scale"
)

// splitGroups partitions rows into series: the group aesthetic when
// mapped, otherwise a discrete color or fill mapping, otherwise one
// series. Row order is preserved within each group; groups come out in
// first-appearance order.
func splitGroups(rows data.DataSource, aes data.Mapping, ctx *Context) []data.DataSource {
	field, ok := aes.Field(data.AesGroup)
	if !ok {
		if f, has := aes.Field(data.AesColor); has && ctx.Scales.Color != nil && ctx.Scales.Color.Kind == scale.Discrete {
			field, ok = f, true
		} else if f, has := aes.Field(data.AesFill); has && ctx.Scales.Fill != nil && ctx.Scales.Fill.Kind == scale.Discrete {
			field, ok = f, true
		}
	}
	if !ok {
		return []data.DataSource{rows}
	}

	var order []string
	byKey := make(map[string]data.DataSource)
	for _, r := range rows {
		k, ok := data.StringField(r, field)
		if !ok {
			continue
		}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], r)
	}
	groups := make([]data.DataSource, len(order))
	for i, k := range order {
		groups[i] = byKey[k]
	}
	return groups
}

// slopeChar picks a line glyph from the segment direction. Canvas rows
// grow downward, so a rising data segment has dy < 0.
func slopeChar(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy < 0):
		return '╱'
	default:
		return '╲'
	}
}

type mappedPoint struct {
	x, y int
	row  data.Record
}

func mapSeries(rows data.DataSource, aes data.Mapping, ctx *Context) []mappedPoint {
	pts := make([]mappedPoint, 0, len(rows))
	for _, r := range rows {
		x, y, ok := mapXY(aes, r, ctx)
		if !ok {
			continue
		}
		pts = append(pts, mappedPoint{x, y, r})
	}
	return pts
}

// renderLine connects consecutive points of each series. sortByX orders
// points along the x axis first (geom_line); path keeps data order.
func renderLine(rows data.DataSource, p Params, aes data.Mapping, ctx *Context, sortByX bool) error {
	for _, group := range splitGroups(rows, aes, ctx) {
		pts := mapSeries(group, aes, ctx)
		if sortByX {
			sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
		}
		drawPolyline(pts, p, aes, ctx)
	}
	return nil
}

func drawPolyline(pts []mappedPoint, p Params, aes data.Mapping, ctx *Context) {
	if len(pts) == 1 {
		fg, _, _ := style(pts[0].row, p, aes, ctx)
		if ctx.Panel.Contains(pts[0].x, pts[0].y) {
			ctx.Canvas.Set(pts[0].x, pts[0].y, canvas.Cell{Char: '•', Fg: fg})
		}
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		fg, _, _ := style(a.row, p, aes, ctx)
		ch := p.Char
		if ch == 0 {
			ch = slopeChar(b.x-a.x, b.y-a.y)
		}
		ctx.Canvas.Line(a.x, a.y, b.x, b.y, canvas.Cell{Char: ch, Fg: fg})
	}
}

// renderStep connects points with a horizontal run followed by a vertical
// riser.
func renderStep(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	for _, group := range splitGroups(rows, aes, ctx) {
		pts := mapSeries(group, aes, ctx)
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			fg, _, _ := style(a.row, p, aes, ctx)
			ctx.Canvas.HLine(a.x, b.x, a.y, canvas.Cell{Char: '─', Fg: fg})
			ctx.Canvas.VLine(b.x, a.y, b.y, canvas.Cell{Char: '│', Fg: fg})
		}
	}
	return nil
}

// renderSegment draws one straight segment per row from (x, y) to
// (xend, yend), optionally finishing with an arrowhead.
func renderSegment(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	for _, r := range rows {
		x1, y1, ok := mapXY(aes, r, ctx)
		if !ok {
			continue
		}
		x2f, ok := mapChannel(ctx.Scales.X, aes, r, data.AesXEnd)
		if !ok {
			continue
		}
		y2f, ok := mapChannel(ctx.Scales.Y, aes, r, data.AesYEnd)
		if !ok {
			continue
		}
		x2, y2 := round(x2f), round(y2f)

		fg, _, _ := style(r, p, aes, ctx)
		ch := p.Char
		if ch == 0 {
			ch = slopeChar(x2-x1, y2-y1)
		}
		ctx.Canvas.Line(x1, y1, x2, y2, canvas.Cell{Char: ch, Fg: fg})

		if p.Arrow {
			ctx.Canvas.Set(x2, y2, canvas.Cell{Char: arrowHead(x2-x1, y2-y1), Fg: fg})
		}
	}
	return nil
}

func arrowHead(dx, dy int) rune {
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dy >= 0 {
		return '▼'
	}
	return '▲'
}

// renderSmooth draws a fitted line; when ymin/ymax are also mapped the
// confidence band renders first so the line stays on top.
func renderSmooth(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	if aes.Has(data.AesYMin) && aes.Has(data.AesYMax) {
		band := p
		if !band.Fill.Set() {
			band.Fill = fade(p.Color, 0.3)
		}
		if err := renderRibbon(rows, band, aes, ctx); err != nil {
			return err
		}
	}
	return renderLine(rows, p, aes, ctx, true)
}
