package plot

import (
	"strconv"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/layout"
	"github.com/cellplot/cellplot/pkg/scale"
)

const yTickCount = 5

func (p *Plot) drawTitle(c *canvas.Canvas, l layout.Layout) {
	if p.title == "" {
		return
	}
	c.SetText(l.Width/2, 0, p.title, canvas.JustifyCenter, canvas.Cell{Fg: p.theme.Title, Bold: true})
}

func (p *Plot) drawAxisLabels(c *canvas.Canvas, l layout.Layout) {
	if p.xLabel != "" {
		cx := l.PlotArea.X + l.PlotArea.W/2
		c.SetText(cx, l.Height-1, p.xLabel, canvas.JustifyCenter, canvas.Cell{Fg: p.theme.Foreground})
	}
	if p.yLabel != "" {
		// Vertical text down the left edge, centered on the plot area.
		y := l.PlotArea.Y + (l.PlotArea.H-len([]rune(p.yLabel)))/2
		if y < l.PlotArea.Y {
			y = l.PlotArea.Y
		}
		for i, r := range p.yLabel {
			c.Set(0, y+i, canvas.Cell{Char: r, Fg: p.theme.Foreground})
		}
	}
}

// drawGrid rules the panel at the horizontal tick positions. Layers draw
// afterwards and paint over the rules.
func (p *Plot) drawGrid(c *canvas.Canvas, rect canvas.Rect, set geom.Scales) {
	if !p.theme.Grid.Set() || set.Y == nil || set.Y.Kind != scale.Continuous {
		return
	}
	for _, row := range tickRows(rect) {
		c.HLine(rect.X, rect.Right()-1, row, canvas.Cell{Char: '┈', Fg: p.theme.Grid})
	}
}

func tickRows(rect canvas.Rect) []int {
	if rect.H < 2 {
		return []int{rect.Y}
	}
	rows := make([]int, 0, yTickCount)
	for i := 0; i < yTickCount; i++ {
		t := float64(i) / float64(yTickCount-1)
		rows = append(rows, rect.Bottom()-1-int(t*float64(rect.H-1)+0.5))
	}
	return rows
}

// drawAxes strokes the axis lines and tick labels: the y axis on the
// leftmost panel column, the x axis under the bottom panel row, and the
// secondary y axis right of the rightmost column when present.
func (p *Plot) drawAxes(c *canvas.Canvas, l layout.Layout, r resolved) {
	maxRow, maxCol := 0, 0
	for _, panel := range l.Panels {
		if panel.Row > maxRow {
			maxRow = panel.Row
		}
		if panel.Col > maxCol {
			maxCol = panel.Col
		}
	}

	for _, panel := range l.Panels {
		rect := panel.Rect
		if panel.Col == 0 {
			p.drawYAxis(c, rect, r.y)
		}
		if panel.Row == maxRow {
			p.drawXAxis(c, rect, r.x)
		}
		if r.y2 != nil && panel.Col == maxCol {
			p.drawY2Axis(c, rect, r.y2)
		}
	}
}

func (p *Plot) drawYAxis(c *canvas.Canvas, rect canvas.Rect, s *scale.Scale) {
	axis := canvas.Cell{Char: '│', Fg: p.theme.Axis}
	c.VLine(rect.X-1, rect.Y, rect.Bottom()-1, axis)
	if s == nil {
		return
	}

	if s.Kind == scale.Discrete {
		ranged := *s
		ranged.WithRange(float64(rect.Bottom()-1), float64(rect.Y))
		for i, level := range s.Levels {
			row := int(ranged.MapLevel(i) + 0.5)
			c.Set(rect.X-1, row, canvas.Cell{Char: '┤', Fg: p.theme.Axis})
			c.SetText(rect.X-2, row, truncate(level, rect.X-2), canvas.JustifyRight, canvas.Cell{Fg: p.theme.Foreground})
		}
		return
	}

	for i, row := range tickRows(rect) {
		t := float64(i) / float64(yTickCount-1)
		v := s.DomainMin + t*(s.DomainMax-s.DomainMin)
		c.Set(rect.X-1, row, canvas.Cell{Char: '┤', Fg: p.theme.Axis})
		c.SetText(rect.X-2, row, formatTick(v), canvas.JustifyRight, canvas.Cell{Fg: p.theme.Foreground})
	}
}

func (p *Plot) drawXAxis(c *canvas.Canvas, rect canvas.Rect, s *scale.Scale) {
	row := rect.Bottom()
	if row >= c.Height() {
		row = c.Height() - 1
	}
	c.HLine(rect.X, rect.Right()-1, row, canvas.Cell{Char: '─', Fg: p.theme.Axis})
	c.Set(rect.X-1, row, canvas.Cell{Char: '└', Fg: p.theme.Axis})
	if s == nil || row+1 >= c.Height() {
		return
	}

	if s.Kind == scale.Discrete {
		ranged := *s
		ranged.WithRange(float64(rect.X), float64(rect.Right()-1))
		for i, level := range s.Levels {
			col := int(ranged.MapLevel(i) + 0.5)
			c.Set(col, row, canvas.Cell{Char: '┬', Fg: p.theme.Axis})
			c.SetText(col, row+1, truncate(level, rect.W/2), canvas.JustifyCenter, canvas.Cell{Fg: p.theme.Foreground})
		}
		return
	}

	// Three ticks keep labels from colliding on narrow panels.
	for i := 0; i < 3; i++ {
		t := float64(i) / 2
		col := rect.X + int(t*float64(rect.W-1)+0.5)
		v := s.DomainMin + t*(s.DomainMax-s.DomainMin)
		c.Set(col, row, canvas.Cell{Char: '┬', Fg: p.theme.Axis})
		just := canvas.JustifyCenter
		switch i {
		case 0:
			just = canvas.JustifyLeft
		case 2:
			just = canvas.JustifyRight
		}
		c.SetText(col, row+1, formatTick(v), just, canvas.Cell{Fg: p.theme.Foreground})
	}
}

func (p *Plot) drawY2Axis(c *canvas.Canvas, rect canvas.Rect, s *scale.Scale) {
	x := rect.Right()
	c.VLine(x, rect.Y, rect.Bottom()-1, canvas.Cell{Char: '│', Fg: p.theme.Axis})
	for i, row := range tickRows(rect) {
		t := float64(i) / float64(yTickCount-1)
		v := s.DomainMin + t*(s.DomainMax-s.DomainMin)
		c.Set(x, row, canvas.Cell{Char: '├', Fg: p.theme.Axis})
		c.SetText(x+1, row, formatTick(v), canvas.JustifyLeft, canvas.Cell{Fg: p.theme.Foreground})
	}
}

// drawStrips renders facet labels: per-panel strips for wrap layouts,
// shared column and row strips for grid layouts.
func (p *Plot) drawStrips(c *canvas.Canvas, l layout.Layout) {
	strip := canvas.Cell{Char: ' ', Bg: p.theme.Grid}
	for _, panel := range l.Panels {
		if panel.Strip.H > 0 && panel.Label != "" {
			c.FillRect(panel.Strip.X, panel.Strip.Y, panel.Strip.W, panel.Strip.H, strip)
			c.SetText(panel.Strip.X+panel.Strip.W/2, panel.Strip.Y,
				truncate(panel.Label, panel.Strip.W), canvas.JustifyCenter,
				canvas.Cell{Fg: p.theme.Title, Bg: p.theme.Grid})
		}
	}

	if p.grid == nil {
		return
	}
	for _, panel := range l.Panels {
		if panel.Row == 0 && panel.ColValue != "" {
			c.SetText(panel.Rect.X+panel.Rect.W/2, l.ColStrip.Y,
				truncate(panel.ColValue, panel.Rect.W), canvas.JustifyCenter,
				canvas.Cell{Fg: p.theme.Title, Bg: p.theme.Grid})
		}
	}
	for _, panel := range l.Panels {
		if panel.RowValue == "" {
			continue
		}
		last := true
		for _, other := range l.Panels {
			if other.Row == panel.Row && other.Col > panel.Col {
				last = false
				break
			}
		}
		if !last {
			continue
		}
		// Vertical row label down the shared right strip.
		label := []rune(panel.RowValue)
		y := panel.Rect.Y + (panel.Rect.H-len(label))/2
		if y < panel.Rect.Y {
			y = panel.Rect.Y
		}
		for i, ch := range label {
			if y+i >= panel.Rect.Bottom() {
				break
			}
			c.Set(l.RowStrip.X, y+i, canvas.Cell{Char: ch, Fg: p.theme.Title, Bg: p.theme.Grid})
		}
	}
}

// drawLegend renders the first legend-worthy scale: discrete swatches or
// a continuous ramp.
func (p *Plot) drawLegend(c *canvas.Canvas, rect canvas.Rect, r resolved) {
	s, field := p.legendScale(r)
	if s == nil {
		return
	}

	c.SetText(rect.X, rect.Y, truncate(field, rect.W), canvas.JustifyLeft,
		canvas.Cell{Fg: p.theme.Title, Bold: true})

	if s.Kind == scale.Discrete {
		for i, level := range s.Levels {
			row := rect.Y + 1 + i
			if row >= rect.Bottom() {
				break
			}
			sw, _ := s.MapColor(level)
			c.Set(rect.X, row, canvas.Cell{Char: '■', Fg: sw})
			c.SetText(rect.X+2, row, truncate(level, rect.W-2), canvas.JustifyLeft,
				canvas.Cell{Fg: p.theme.Foreground})
		}
		return
	}

	// Continuous ramp with the extent labels on either end.
	ramp := rect.W - 2
	if ramp < 2 {
		ramp = 2
	}
	for i := 0; i < ramp; i++ {
		t := float64(i) / float64(ramp-1)
		col := scale.Interpolate(s.GradientLo, s.GradientHi, t)
		c.Set(rect.X+i, rect.Y+1, canvas.Cell{Char: '█', Fg: col})
	}
	c.SetText(rect.X, rect.Y+2, formatTick(s.DomainMin), canvas.JustifyLeft, canvas.Cell{Fg: p.theme.Foreground})
	c.SetText(rect.X+ramp-1, rect.Y+2, formatTick(s.DomainMax), canvas.JustifyRight, canvas.Cell{Fg: p.theme.Foreground})
}

// legendScale picks the scale the legend describes and the data field it
// was mapped from.
func (p *Plot) legendScale(r resolved) (*scale.Scale, string) {
	for _, cand := range []struct {
		s  *scale.Scale
		ch data.Aes
	}{
		{r.color, data.AesColor},
		{r.fill, data.AesFill},
		{r.shape, data.AesShape},
	} {
		if cand.s == nil {
			continue
		}
		for _, l := range p.layers {
			if f, ok := p.mergedAes(l).Field(cand.ch); ok {
				return cand.s, f
			}
		}
		return cand.s, string(cand.ch)
	}
	return nil, ""
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return string(r[:1])
	}
	return string(r[:max-1]) + "…"
}
