package geom

import (
	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/scale"
)

// sizeGlyphs are the point markers by quantized size bucket, smallest
// first.
var sizeGlyphs = [4]rune{'·', '•', '●', '█'}

// shapeGlyphs are the markers cycled by a discrete shape scale.
var shapeGlyphs = []rune{'●', '■', '▲', '◆', '✚', '✖', '★', '◉'}

// glyph resolves the marker rune for one row: explicit parameter first,
// then a mapped shape, then the size bucket.
func glyph(r data.Record, p Params, aes data.Mapping, ctx *Context, size float64) rune {
	if p.Char != 0 {
		return p.Char
	}
	if aes.Has(data.AesShape) && ctx.Scales.Shape != nil {
		if f, ok := aes.Field(data.AesShape); ok {
			if i, ok := levelIndex(ctx.Scales.Shape, r[f]); ok {
				return shapeGlyphs[i%len(shapeGlyphs)]
			}
		}
	}
	bucket := round(size) - 1
	if bucket < 0 {
		bucket = 1 // unsized points draw the medium marker
	}
	if bucket >= len(sizeGlyphs) {
		bucket = len(sizeGlyphs) - 1
	}
	return sizeGlyphs[bucket]
}

// levelIndex recovers a discrete scale's level index from its normalized
// position.
func levelIndex(s *scale.Scale, v any) (int, bool) {
	t, ok := s.Normalize(v)
	if !ok {
		return 0, false
	}
	n := len(s.Levels)
	if n <= 1 {
		return 0, true
	}
	return round(t * float64(n-1)), true
}

func renderPoint(rows data.DataSource, p Params, aes data.Mapping, ctx *Context, jitter int) error {
	for i, r := range rows {
		x, y, ok := mapXY(aes, r, ctx)
		if !ok {
			continue
		}
		if jitter > 0 {
			// Deterministic offsets so repeated renders diff cleanly.
			x += (i*7)%(2*jitter+1) - jitter
			y += (i*13)%(2*jitter+1) - jitter
		}
		if !ctx.Panel.Contains(x, y) {
			continue
		}
		fg, _, size := style(r, p, aes, ctx)
		ctx.Canvas.Set(x, y, canvas.Cell{Char: glyph(r, p, aes, ctx, size), Fg: fg})
	}
	return nil
}

func renderJitter(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	return renderPoint(rows, p, aes, ctx, 1)
}

// renderCount collapses coincident points into one marker sized by the
// number of rows that landed on the cell.
func renderCount(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	type spot struct{ x, y int }
	counts := make(map[spot]int)
	first := make(map[spot]data.Record)
	order := make([]spot, 0, len(rows))

	for _, r := range rows {
		x, y, ok := mapXY(aes, r, ctx)
		if !ok || !ctx.Panel.Contains(x, y) {
			continue
		}
		s := spot{x, y}
		if counts[s] == 0 {
			order = append(order, s)
			first[s] = r
		}
		counts[s]++
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return nil
	}

	for _, s := range order {
		r := first[s]
		fg, _, _ := style(r, p, aes, ctx)
		// Quantize the tally onto the four marker sizes.
		bucket := (counts[s] - 1) * len(sizeGlyphs) / max
		if bucket >= len(sizeGlyphs) {
			bucket = len(sizeGlyphs) - 1
		}
		ch := p.Char
		if ch == 0 {
			ch = sizeGlyphs[bucket]
		}
		ctx.Canvas.Set(s.x, s.y, canvas.Cell{Char: ch, Fg: fg})
	}
	return nil
}

// renderRug draws marginal ticks along the panel edges named by
// p.Sides (a subset of "btlr", defaulting to "b").
func renderRug(rows data.DataSource, p Params, aes data.Mapping, ctx *Context) error {
	sides := p.Sides
	if sides == "" {
		sides = "b"
	}
	for _, r := range rows {
		fg, _, _ := style(r, p, aes, ctx)

		if aes.Has(data.AesX) && ctx.Scales.X != nil {
			if cx, ok := mapChannel(ctx.Scales.X, aes, r, data.AesX); ok {
				x := round(cx)
				if x >= ctx.Panel.X && x < ctx.Panel.Right() {
					for _, s := range sides {
						switch s {
						case 'b':
							ctx.Canvas.Set(x, ctx.Panel.Bottom()-1, canvas.Cell{Char: '▂', Fg: fg})
						case 't':
							ctx.Canvas.Set(x, ctx.Panel.Y, canvas.Cell{Char: '▔', Fg: fg})
						}
					}
				}
			}
		}

		if aes.Has(data.AesY) && ctx.Scales.Y != nil {
			if cy, ok := mapChannel(ctx.Scales.Y, aes, r, data.AesY); ok {
				y := round(cy)
				if y >= ctx.Panel.Y && y < ctx.Panel.Bottom() {
					for _, s := range sides {
						switch s {
						case 'l':
							ctx.Canvas.Set(ctx.Panel.X, y, canvas.Cell{Char: '▏', Fg: fg})
						case 'r':
							ctx.Canvas.Set(ctx.Panel.Right()-1, y, canvas.Cell{Char: '▕', Fg: fg})
						}
					}
				}
			}
		}
	}
	return nil
}
