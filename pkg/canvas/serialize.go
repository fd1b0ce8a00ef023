package canvas

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode selects how much color information serialization emits.
type ColorMode string

// Supported color modes.
const (
	ColorNone      ColorMode = "none"      // plain text, no escapes
	ColorANSI      ColorMode = "16"        // 16-color ANSI
	ColorANSI256   ColorMode = "256"       // 256-color ANSI
	ColorTrueColor ColorMode = "truecolor" // 24-bit color
	ColorAuto      ColorMode = "auto"      // detect from the environment
)

// Profile maps a color mode to a termenv profile. ColorAuto queries the
// current terminal environment.
func (m ColorMode) Profile() termenv.Profile {
	switch m {
	case ColorANSI:
		return termenv.ANSI
	case ColorANSI256:
		return termenv.ANSI256
	case ColorTrueColor:
		return termenv.TrueColor
	case ColorAuto:
		return termenv.ColorProfile()
	default:
		return termenv.Ascii
	}
}

// attrs is the attribute state carried across cells while serializing,
// so escapes are emitted only at attribute boundaries.
type attrs struct {
	fg, bg    RGBA
	bold      bool
	italic    bool
	underline bool
}

func cellAttrs(c Cell) attrs {
	return attrs{fg: c.Fg, bg: c.Bg, bold: c.Bold, italic: c.Italic, underline: c.Underline}
}

func (a attrs) zero() bool {
	return a == attrs{}
}

// sequence renders the full escape sequence establishing a from a reset
// state. Returns the empty string when a is the default state.
func (a attrs) sequence(p termenv.Profile) string {
	var codes []string
	if a.bold {
		codes = append(codes, "1")
	}
	if a.italic {
		codes = append(codes, "3")
	}
	if a.underline {
		codes = append(codes, "4")
	}
	if a.fg.Set() {
		if s := colorSequence(p, a.fg, false); s != "" {
			codes = append(codes, s)
		}
	}
	if a.bg.Set() {
		if s := colorSequence(p, a.bg, true); s != "" {
			codes = append(codes, s)
		}
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// colorSequence converts an RGBA into the escape parameters for the given
// profile, downsampling through termenv when the terminal supports fewer
// colors than the canvas stores.
func colorSequence(p termenv.Profile, c RGBA, bg bool) string {
	if p == termenv.Ascii {
		return ""
	}
	col := p.Convert(termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	if col == nil {
		return ""
	}
	return col.Sequence(bg)
}

// Serialize renders the canvas as a frame string for direct display.
// ColorNone yields plain text; all other modes yield one line per row with
// escapes emitted only when attributes change, each row ending in a reset.
func Serialize(c *Canvas, mode ColorMode) string {
	if mode == "" || mode == ColorNone {
		return c.String()
	}
	p := mode.Profile()
	if p == termenv.Ascii {
		return c.String()
	}

	width, height := c.Size()
	var sb strings.Builder
	sb.Grow(height * (width + 1) * 2)

	for y := 0; y < height; y++ {
		var cur attrs
		open := false
		for x := 0; x < width; x++ {
			cell := c.Get(x, y)
			if cell.Char == 0 {
				continue // wide-rune continuation
			}
			want := cellAttrs(cell)
			if want != cur {
				if open {
					sb.WriteString("\x1b[0m")
					open = false
				}
				if s := want.sequence(p); s != "" {
					sb.WriteString(s)
					open = true
				}
				cur = want
			}
			sb.WriteRune(cell.Char)
		}
		if open || !cur.zero() {
			sb.WriteString("\x1b[0m")
		}
		if y < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
