// Package canvas provides the character-grid output buffer for cellplot,
// its drawing primitives, ANSI serialization, and the frame diff engine
// used for incremental terminal updates.
//
// # Coordinate System
//
//   - Origin (0,0) is top-left
//   - X increases rightward, Y increases downward
//   - All coordinates are in character cells
//
// # Ownership
//
// A Canvas is owned by exactly one render pass and mutated only through its
// draw primitives. It is not safe for concurrent writes; independent render
// passes must each own their own Canvas.
package canvas

// RGBA is a color with 8-bit channels. The zero value (A == 0) means
// "unset": the serializer emits no escape and the terminal default applies.
type RGBA struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Set reports whether the color is set (non-transparent).
func (c RGBA) Set() bool {
	return c.A != 0
}

// WithinTolerance reports whether every channel of c and o differs by at
// most tol.
func (c RGBA) WithinTolerance(o RGBA, tol uint8) bool {
	return absDiff(c.R, o.R) <= tol &&
		absDiff(c.G, o.G) <= tol &&
		absDiff(c.B, o.B) <= tol &&
		absDiff(c.A, o.A) <= tol
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// Cell is one character cell: a codepoint plus its colors and style flags.
type Cell struct {
	Char      rune
	Fg        RGBA
	Bg        RGBA
	Bold      bool
	Italic    bool
	Underline bool
}

// Blank is the empty cell every canvas position starts as.
var Blank = Cell{Char: ' '}

// Equal reports exact cell equality (zero color tolerance).
func (c Cell) Equal(o Cell) bool {
	return c == o
}

// EqualTolerant reports cell equality allowing each color channel to differ
// by up to tol. Characters and style flags always compare exactly.
func (c Cell) EqualTolerant(o Cell, tol uint8) bool {
	if tol == 0 {
		return c == o
	}
	return c.Char == o.Char &&
		c.Bold == o.Bold && c.Italic == o.Italic && c.Underline == o.Underline &&
		c.Fg.WithinTolerance(o.Fg, tol) &&
		c.Bg.WithinTolerance(o.Bg, tol)
}
