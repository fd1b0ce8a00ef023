package geom

import (
	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
)

// renderText writes the label channel at each row's position. boxed draws
// geom_label: the text gets a filled background and a space of padding on
// each side.
func renderText(rows data.DataSource, p Params, aes data.Mapping, ctx *Context, boxed bool) error {
	for _, r := range rows {
		x, y, ok := mapXY(aes, r, ctx)
		if !ok || !ctx.Panel.Contains(x, y) {
			continue
		}
		text, ok := aes.String(r, data.AesLabel)
		if !ok || text == "" {
			continue
		}
		fg, bg, _ := style(r, p, aes, ctx)

		cell := canvas.Cell{Fg: fg}
		if boxed {
			text = " " + text + " "
			cell.Bg = bg
			if !bg.Set() {
				// Default label chip: dark text on the stroke color.
				cell.Bg = fg
				cell.Fg = canvas.RGB(0x10, 0x10, 0x10)
			}
		}
		ctx.Canvas.SetText(x, y, text, p.Justify, cell)
	}
	return nil
}
