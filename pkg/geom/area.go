package geom

import (
	"sort"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/scale"
)

// baselineRow is the canvas row bars and areas grow from: data zero when
// it falls inside the panel, the panel's bottom row otherwise.
func baselineRow(ctx *Context) int {
	bottom := ctx.Panel.Bottom() - 1
	s := ctx.Scales.Y
	if s == nil || s.Kind == scale.Discrete {
		return bottom
	}
	z, ok := s.Map(0.0)
	if !ok {
		return bottom
	}
	y := round(z)
	if y < ctx.Panel.Y {
		return ctx.Panel.Y
	}
	if y > bottom {
		return bottom
	}
	return y
}

// slotWidth is the horizontal room one discrete x position owns. For a
// continuous axis every mark gets a single column.
func slotWidth(ctx *Context) int {
	s := ctx.Scales.X
	if s == nil || s.Kind != scale.Discrete {
		return 1
	}
	n := len(s.Levels)
	switch {
	case n <= 1:
		return ctx.Panel.W
	default:
		w := round((s.RangeMax - s.RangeMin) / float64(n-1))
		if w < 0 {
			w = -w
		}
		if w < 1 {
			w = 1
		}
		return w
	}
}

// fillCell is the solid cell a filled geometry paints with.
func fillCell(fg, bg canvas.RGBA) canvas.Cell {
	c := canvas.Cell{Char: '█', Fg: bg}
	if !bg.Set() {
		c.Fg = fg
	}
	return c
}

// renderArea fills the region between the series and the zero baseline,
// one vertical run per panel column, interpolating between points.
func renderArea(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	base := baselineRow(ctx)
	for _, group := range splitGroups(rows, aes, ctx) {
		pts := mapSeries(group, aes, ctx)
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
		if len(pts) == 0 {
			continue
		}
		fg, bg, _ := style(pts[0].row, p, aes, ctx)
		cell := fillCell(fg, bg)
		eachColumn(pts, pts, func(x, y, _ int) {
			ctx.Canvas.VLine(x, y, base, cell)
		})
	}
	return nil
}

// renderRibbon fills between the ymin and ymax series per column.
func renderRibbon(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	for _, group := range splitGroups(rows, aes, ctx) {
		lo := mapBand(group, aes, ctx, data.AesYMin)
		hi := mapBand(group, aes, ctx, data.AesYMax)
		if len(lo) == 0 || len(hi) == 0 {
			continue
		}
		fg, bg, _ := style(group[0], p, aes, ctx)
		cell := canvas.Cell{Char: '▒', Fg: bg}
		if !bg.Set() {
			cell.Fg = fg
		}
		eachColumn(lo, hi, func(x, y1, y2 int) {
			ctx.Canvas.VLine(x, y1, y2, cell)
		})
	}
	return nil
}

// mapBand maps the x channel against an arbitrary vertical channel,
// producing a sorted polyline.
func mapBand(rows data.DataSource, aes data.Mapping, ctx *Context, vert data.Aes) []mappedPoint {
	pts := make([]mappedPoint, 0, len(rows))
	for _, r := range rows {
		cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX)
		if !ok {
			continue
		}
		cy, ok := mapChannel(ctx.Scales.Y, aes, r, vert)
		if !ok {
			continue
		}
		pts = append(pts, mappedPoint{round(cx), round(cy), r})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
	return pts
}

// eachColumn walks every panel column covered by the two polylines,
// linearly interpolating each one, and calls fn with both row values.
func eachColumn(a, b []mappedPoint, fn func(x, ya, yb int)) {
	if len(a) == 0 || len(b) == 0 {
		return
	}
	x1 := a[0].x
	x2 := a[len(a)-1].x
	for x := x1; x <= x2; x++ {
		fn(x, interpAt(a, x), interpAt(b, x))
	}
}

// interpAt linearly interpolates a sorted polyline at column x.
func interpAt(pts []mappedPoint, x int) int {
	if x <= pts[0].x {
		return pts[0].y
	}
	last := pts[len(pts)-1]
	if x >= last.x {
		return last.y
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].x >= x {
			a, b := pts[i-1], pts[i]
			if a.x == b.x {
				return b.y
			}
			t := float64(x-a.x) / float64(b.x-a.x)
			return round(float64(a.y) + t*float64(b.y-a.y))
		}
	}
	return last.y
}

// barEntry is one bar-to-be at a shared x position.
type barEntry struct {
	row data.Record
	y   float64
}

// renderCol draws one bar per row from the baseline to the mapped y,
// arranged by the layer's position when several rows share an x.
func renderCol(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	width := p.Width
	if width <= 0 || width > 1 {
		width = 0.9
	}
	slot := slotWidth(ctx)
	barW := round(float64(slot) * width)
	if barW < 1 {
		barW = 1
	}

	// Bucket rows by their x canvas position, keeping bucket order by
	// first appearance and entry order by the fill domain when stacking.
	type bucket struct {
		cx      int
		entries []barEntry
	}
	var order []int
	buckets := make(map[int]*bucket)
	for _, r := range rows {
		cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX)
		if !ok {
			continue
		}
		y, ok := aes.Number(r, data.AesY)
		if !ok {
			continue
		}
		k := round(cx)
		b, seen := buckets[k]
		if !seen {
			b = &bucket{cx: k}
			buckets[k] = b
			order = append(order, k)
		}
		b.entries = append(b.entries, barEntry{row: r, y: y})
	}

	fillField, grouped := aes.Field(data.AesFill)
	if grouped && ctx.Scales.Fill != nil && ctx.Scales.Fill.Kind == scale.Discrete {
		for _, k := range order {
			es := buckets[k].entries
			sort.SliceStable(es, func(i, j int) bool {
				a, _ := levelIndex(ctx.Scales.Fill, es[i].row[fillField])
				b, _ := levelIndex(ctx.Scales.Fill, es[j].row[fillField])
				return a < b
			})
		}
	} else {
		grouped = false
	}

	base := baselineRow(ctx)
	for _, k := range order {
		b := buckets[k]
		switch {
		case grouped && p.Position == PositionDodge:
			drawDodged(b.cx, barW, base, b.entries, p, aes, ctx)
		case grouped && (p.Position == PositionStack || p.Position == PositionFill || p.Position == ""):
			drawStacked(b.cx, barW, b.entries, p.Position == PositionFill, p, aes, ctx)
		default:
			for _, e := range b.entries {
				drawBar(b.cx, barW, base, e, p, aes, ctx)
			}
		}
	}
	return nil
}

func drawBar(cx, barW, base int, e barEntry, p Params, aes data.Mapping, ctx *Context) {
	cy, ok := ctx.Scales.Y.Map(e.y)
	if !ok {
		return
	}
	fg, bg, _ := style(e.row, p, aes, ctx)
	x0 := cx - barW/2
	ctx.Canvas.FillRect(x0, min(round(cy), base), barW, abs(base-round(cy))+1, fillCell(fg, bg))
}

func drawStacked(cx, barW int, entries []barEntry, normalize bool, p Params, aes data.Mapping, ctx *Context) {
	total := 0.0
	for _, e := range entries {
		total += e.y
	}
	if normalize && total == 0 {
		return
	}

	bottom := 0.0
	for _, e := range entries {
		y := e.y
		if normalize {
			y /= total
		}
		top := bottom + y
		cb, ok1 := ctx.Scales.Y.Map(bottom)
		ct, ok2 := ctx.Scales.Y.Map(top)
		if !ok1 || !ok2 {
			continue
		}
		fg, bg, _ := style(e.row, p, aes, ctx)
		y0 := min(round(ct), round(cb))
		h := abs(round(cb)-round(ct)) + 1
		ctx.Canvas.FillRect(cx-barW/2, y0, barW, h, fillCell(fg, bg))
		bottom = top
	}
}

func drawDodged(cx, barW, base int, entries []barEntry, p Params, aes data.Mapping, ctx *Context) {
	n := len(entries)
	sub := barW / n
	if sub < 1 {
		sub = 1
	}
	x0 := cx - barW/2
	for i, e := range entries {
		cy, ok := ctx.Scales.Y.Map(e.y)
		if !ok {
			continue
		}
		fg, bg, _ := style(e.row, p, aes, ctx)
		ctx.Canvas.FillRect(x0+i*sub, min(round(cy), base), sub, abs(base-round(cy))+1, fillCell(fg, bg))
	}
}

// renderBar tallies rows per x value and draws the counts as columns.
// With Stat identity it degrades to renderCol.
func renderBar(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	if p.Stat == StatIdentity {
		return renderCol(rows, p, aes, ctx)
	}

	xField, _ := aes.Field(data.AesX)
	fillField, hasFill := aes.Field(data.AesFill)

	type key struct{ x, fill string }
	var order []key
	counts := make(map[key]int)
	for _, r := range rows {
		x, ok := data.StringField(r, xField)
		if !ok {
			continue
		}
		k := key{x: x}
		if hasFill {
			k.fill, _ = data.StringField(r, fillField)
		}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	tallied := make(data.DataSource, 0, len(order))
	for _, k := range order {
		r := data.Record{xField: k.x, "count": float64(counts[k])}
		if hasFill {
			r[fillField] = k.fill
		}
		tallied = append(tallied, r)
	}

	colAes := make(data.Mapping, len(aes)+1)
	for a, f := range aes {
		colAes[a] = f
	}
	colAes[data.AesY] = "count"
	return renderCol(tallied, p, colAes, ctx)
}

// renderTile fills one slot-sized rectangle per row, centered on the
// mapped position.
func renderTile(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	w := slotWidth(ctx)
	h := vertSlot(ctx)
	for _, r := range rows {
		cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX)
		if !ok {
			continue
		}
		cy, ok := mapChannel(ctx.Scales.Y, aes, r, data.AesY)
		if !ok {
			continue
		}
		fg, bg, _ := style(r, p, aes, ctx)
		ctx.Canvas.FillRect(round(cx)-w/2, round(cy)-h/2, w, h, fillCell(fg, bg))
	}
	return nil
}

// vertSlot mirrors slotWidth for the y axis.
func vertSlot(ctx *Context) int {
	s := ctx.Scales.Y
	if s == nil || s.Kind != scale.Discrete {
		return 1
	}
	n := len(s.Levels)
	if n <= 1 {
		return ctx.Panel.H
	}
	h := round((s.RangeMin - s.RangeMax) / float64(n-1))
	if h < 0 {
		h = -h
	}
	if h < 1 {
		h = 1
	}
	return h
}

// renderRect fills one explicit rectangle per row from the four corner
// channels.
func renderRect(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	for _, r := range rows {
		x1, ok1 := mapChannel(ctx.Scales.X, aes, r, data.AesXMin)
		x2, ok2 := mapChannel(ctx.Scales.X, aes, r, data.AesXMax)
		y1, ok3 := mapChannel(ctx.Scales.Y, aes, r, data.AesYMin)
		y2, ok4 := mapChannel(ctx.Scales.Y, aes, r, data.AesYMax)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		fg, bg, _ := style(r, p, aes, ctx)
		x0 := min(round(x1), round(x2))
		y0 := min(round(y1), round(y2))
		ctx.Canvas.FillRect(x0, y0, abs(round(x2)-round(x1))+1, abs(round(y2)-round(y1))+1, fillCell(fg, bg))
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
