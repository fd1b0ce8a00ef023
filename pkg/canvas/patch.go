package canvas

import (
	"fmt"
	"strings"
)

// renderPatch turns a list of cell changes into the minimal escape string
// repainting exactly those cells: cursor positioning, attribute escapes
// deduplicated against the previously emitted attributes within this
// patch, the character, and one trailing reset.
func renderPatch(changes []CellChange, mode ColorMode) string {
	p := mode.Profile()

	var sb strings.Builder
	var cur attrs
	emitted := false
	lastX, lastY := -2, -2

	for _, ch := range changes {
		if ch.Cell.Char == 0 {
			continue // wide-rune continuation
		}

		// Cursor moves are skipped for horizontally consecutive cells;
		// the terminal cursor advances by itself after each character.
		if ch.Y != lastY || ch.X != lastX+1 {
			fmt.Fprintf(&sb, "\x1b[%d;%dH", ch.Y+1, ch.X+1)
		}
		lastX, lastY = ch.X, ch.Y

		want := cellAttrs(ch.Cell)
		if want != cur || !emitted {
			if emitted {
				sb.WriteString("\x1b[0m")
			}
			if s := want.sequence(p); s != "" {
				sb.WriteString(s)
			}
			cur = want
			emitted = true
		}
		sb.WriteRune(ch.Cell.Char)
	}

	if sb.Len() > 0 {
		sb.WriteString("\x1b[0m")
	}
	return sb.String()
}
