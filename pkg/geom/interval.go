package geom

import (
	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
)

type capStyle int

const (
	capNone capStyle = iota
	capTee
)

// intervalAt resolves the vertical extent of a row: the x column plus the
// canvas rows of two vertical channels.
func intervalAt(r data.Record, aes data.Mapping, ctx *Context, lo, hi data.Aes) (x, y1, y2 int, ok bool) {
	cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX)
	if !ok {
		return 0, 0, 0, false
	}
	c1, ok := mapChannel(ctx.Scales.Y, aes, r, lo)
	if !ok {
		return 0, 0, 0, false
	}
	c2, ok := mapChannel(ctx.Scales.Y, aes, r, hi)
	if !ok {
		return 0, 0, 0, false
	}
	return round(cx), round(c1), round(c2), true
}

// renderInterval draws a vertical range per row, optionally capped with
// tee strokes (errorbar).
func renderInterval(rows data.DataSource, p Params, aes data.Mapping, ctx *Context, caps capStyle) error {
	for _, r := range rows {
		x, y1, y2, ok := intervalAt(r, aes, ctx, data.AesYMin, data.AesYMax)
		if !ok {
			continue
		}
		fg, _, _ := style(r, p, aes, ctx)
		ctx.Canvas.VLine(x, y1, y2, canvas.Cell{Char: '│', Fg: fg})
		if caps == capTee {
			ctx.Canvas.HLine(x-1, x+1, min(y1, y2), canvas.Cell{Char: '─', Fg: fg})
			ctx.Canvas.HLine(x-1, x+1, max(y1, y2), canvas.Cell{Char: '─', Fg: fg})
			ctx.Canvas.Set(x, min(y1, y2), canvas.Cell{Char: '┬', Fg: fg})
			ctx.Canvas.Set(x, max(y1, y2), canvas.Cell{Char: '┴', Fg: fg})
		}
	}
	return nil
}

// renderPointRange is a linerange with a marker at the central y.
func renderPointRange(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	if err := renderInterval(rows, p, aes, ctx, capNone); err != nil {
		return err
	}
	for _, r := range rows {
		x, y, ok := mapXY(aes, r, ctx)
		if !ok {
			continue
		}
		fg, _, size := style(r, p, aes, ctx)
		ctx.Canvas.Set(x, y, canvas.Cell{Char: glyph(r, p, aes, ctx, size), Fg: fg})
	}
	return nil
}

// renderCrossBar draws a bordered box over [ymin, ymax] with a stroke at
// the central y.
func renderCrossBar(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	half := boxHalfWidth(p, ctx)
	for _, r := range rows {
		x, y1, y2, ok := intervalAt(r, aes, ctx, data.AesYMin, data.AesYMax)
		if !ok {
			continue
		}
		fg, _, _ := style(r, p, aes, ctx)
		drawBox(ctx, x-half, x+half, min(y1, y2), max(y1, y2), fg)

		if cy, ok := mapChannel(ctx.Scales.Y, aes, r, data.AesY); ok {
			y := round(cy)
			ctx.Canvas.HLine(x-half+1, x+half-1, y, canvas.Cell{Char: '━', Fg: fg})
		}
	}
	return nil
}

// renderBoxPlot draws a five-number box: whiskers over [ymin, ymax], a
// box over [lower, upper], and a median stroke. The box falls back to the
// whisker extent when the hinge channels are unmapped.
func renderBoxPlot(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	half := boxHalfWidth(p, ctx)
	for _, r := range rows {
		cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX)
		if !ok {
			continue
		}
		x := round(cx)
		fg, _, _ := style(r, p, aes, ctx)

		wLo, okLo := mapChannel(ctx.Scales.Y, aes, r, data.AesYMin)
		wHi, okHi := mapChannel(ctx.Scales.Y, aes, r, data.AesYMax)
		bLo, okBLo := mapChannel(ctx.Scales.Y, aes, r, data.AesLower)
		bHi, okBHi := mapChannel(ctx.Scales.Y, aes, r, data.AesUpper)
		if !okBLo || !okBHi {
			bLo, bHi = wLo, wHi
			okBLo, okBHi = okLo, okHi
		}
		if !okBLo || !okBHi {
			continue
		}
		boxTop := min(round(bLo), round(bHi))
		boxBot := max(round(bLo), round(bHi))

		// Whiskers from the box edges out to the extremes.
		if okLo && okHi {
			top := min(round(wLo), round(wHi))
			bot := max(round(wLo), round(wHi))
			ctx.Canvas.VLine(x, top, boxTop, canvas.Cell{Char: '│', Fg: fg})
			ctx.Canvas.VLine(x, boxBot, bot, canvas.Cell{Char: '│', Fg: fg})
			ctx.Canvas.HLine(x-1, x+1, top, canvas.Cell{Char: '─', Fg: fg})
			ctx.Canvas.HLine(x-1, x+1, bot, canvas.Cell{Char: '─', Fg: fg})
		}

		drawBox(ctx, x-half, x+half, boxTop, boxBot, fg)

		if cm, ok := mapChannel(ctx.Scales.Y, aes, r, data.AesMiddle); ok {
			ctx.Canvas.HLine(x-half+1, x+half-1, round(cm), canvas.Cell{Char: '━', Fg: fg})
		}
	}
	return nil
}

// renderViolin draws a symmetric silhouette: one horizontal run per row,
// centered on x, whose half-width comes from the size channel (a density
// value normalized by the size scale) or defaults to half the slot.
func renderViolin(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	slot := slotWidth(ctx)
	for _, r := range rows {
		x, y, ok := mapXY(aes, r, ctx)
		if !ok {
			continue
		}
		frac := 0.5
		if aes.Has(data.AesSize) && ctx.Scales.Size != nil {
			if f, has := aes.Field(data.AesSize); has {
				if t, ok := ctx.Scales.Size.Normalize(r[f]); ok {
					frac = t
				}
			}
		}
		half := round(frac * float64(slot) / 2)
		fg, bg, _ := style(r, p, aes, ctx)
		cell := canvas.Cell{Char: '▒', Fg: bg}
		if !bg.Set() {
			cell.Fg = fg
		}
		ctx.Canvas.HLine(x-half, x+half, y, cell)
	}
	return nil
}

// boxHalfWidth is half the box extent for box-like geometries.
func boxHalfWidth(p Params, ctx *Context) int {
	width := p.Width
	if width <= 0 || width > 1 {
		width = 0.9
	}
	half := round(float64(slotWidth(ctx)) * width / 2)
	if half < 1 {
		half = 1
	}
	return half
}

// drawBox strokes a rectangle border with box-drawing runes.
func drawBox(ctx *Context, x1, x2, y1, y2 int, fg canvas.RGBA) {
	if x2 < x1 || y2 < y1 {
		return
	}
	ctx.Canvas.HLine(x1, x2, y1, canvas.Cell{Char: '─', Fg: fg})
	ctx.Canvas.HLine(x1, x2, y2, canvas.Cell{Char: '─', Fg: fg})
	ctx.Canvas.VLine(x1, y1, y2, canvas.Cell{Char: '│', Fg: fg})
	ctx.Canvas.VLine(x2, y1, y2, canvas.Cell{Char: '│', Fg: fg})
	ctx.Canvas.Set(x1, y1, canvas.Cell{Char: '┌', Fg: fg})
	ctx.Canvas.Set(x2, y1, canvas.Cell{Char: '┐', Fg: fg})
	ctx.Canvas.Set(x1, y2, canvas.Cell{Char: '└', Fg: fg})
	ctx.Canvas.Set(x2, y2, canvas.Cell{Char: '┘', Fg: fg})
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
