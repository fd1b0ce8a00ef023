package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Canvas is a mutable grid of cells. Cells are stored row-major.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// New creates a canvas of the given size with every cell blank.
// Dimensions below 1 are clamped to 1.
func New(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.Clear()
	return c
}

// Size returns the width and height of the canvas.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Width returns the canvas width in columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in rows.
func (c *Canvas) Height() int { return c.height }

// In reports whether (x, y) lies inside the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the cell at (x, y), or Blank when out of bounds.
func (c *Canvas) Get(x, y int) Cell {
	if !c.In(x, y) {
		return Blank
	}
	return c.cells[y*c.width+x]
}

// Set places a cell at (x, y). Out-of-bounds positions are silently
// clipped; geometries routinely draw partially outside the panel.
func (c *Canvas) Set(x, y int, cell Cell) {
	if !c.In(x, y) {
		return
	}
	c.cells[y*c.width+x] = cell
}

// SetChar places a character at (x, y) keeping the cell's default colors.
func (c *Canvas) SetChar(x, y int, char rune) {
	c.Set(x, y, Cell{Char: char})
}

// Clear resets every cell to Blank.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Blank
	}
}

// Clone returns a deep copy of the canvas. The diff engine caches clones
// so a later render pass cannot mutate the previous frame.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{
		width:  c.width,
		height: c.height,
		cells:  make([]Cell, len(c.cells)),
	}
	copy(out.cells, c.cells)
	return out
}

// Equal reports whether two canvases have identical size and content.
func (c *Canvas) Equal(o *Canvas) bool {
	if o == nil || c.width != o.width || c.height != o.height {
		return false
	}
	for i := range c.cells {
		if c.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// HLine draws a horizontal run of cells from x1 to x2 inclusive at row y.
func (c *Canvas) HLine(x1, x2, y int, cell Cell) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.Set(x, y, cell)
	}
}

// VLine draws a vertical run of cells from y1 to y2 inclusive at column x.
func (c *Canvas) VLine(x, y1, y2 int, cell Cell) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.Set(x, y, cell)
	}
}

// Line draws a straight run of cells between two points using Bresenham's
// algorithm. Endpoints are included.
func (c *Canvas) Line(x1, y1, x2, y2 int, cell Cell) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	xInc, yInc := 1, 1
	if x1 > x2 {
		xInc = -1
	}
	if y1 > y2 {
		yInc = -1
	}

	x, y := x1, y1
	if dx > dy {
		err := dx / 2
		for x != x2 {
			c.Set(x, y, cell)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != y2 {
			c.Set(x, y, cell)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}
	c.Set(x2, y2, cell)
}

// FillRect fills the rectangle with top-left (x, y) and the given size.
func (c *Canvas) FillRect(x, y, width, height int, cell Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.Set(x+dx, y+dy, cell)
		}
	}
}

// Justify selects horizontal text anchoring for SetText.
type Justify int

const (
	// JustifyLeft anchors the text's first rune at the given position.
	JustifyLeft Justify = iota
	// JustifyCenter centers the text on the given position.
	JustifyCenter
	// JustifyRight anchors the text's last rune at the given position.
	JustifyRight
)

// SetText writes text starting at (x, y) with the given justification,
// applying style to every written cell. Wide runes occupy two columns;
// the continuation column is written as a zero-rune cell so serialization
// can skip it. Text is clipped at the canvas edges.
func (c *Canvas) SetText(x, y int, text string, just Justify, style Cell) {
	switch just {
	case JustifyCenter:
		x -= runewidth.StringWidth(text) / 2
	case JustifyRight:
		x -= runewidth.StringWidth(text) - 1
	}

	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		cell := style
		cell.Char = r
		c.Set(x, y, cell)
		if w == 2 {
			cont := style
			cont.Char = 0
			c.Set(x+1, y, cont)
		}
		x += w
		if x >= c.width {
			break
		}
	}
}

// String renders the canvas as plain text: one line per row, no escapes,
// colors and styles dropped.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r := c.cells[y*c.width+x].Char
			if r == 0 {
				continue // wide-rune continuation
			}
			sb.WriteRune(r)
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
