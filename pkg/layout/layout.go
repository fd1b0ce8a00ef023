// Package layout computes the margin, plot-area, legend, and panel
// geometry for one render pass.
//
// The layout is derived data: it is recomputed from the requested size and
// the plot's metadata on every render and never persisted. Interactive
// overlay adapters receive it alongside the resolved scales so they can
// translate terminal character positions back into data coordinates.
package layout

import (
	"math"

	"github.com/cellplot/cellplot/pkg/canvas"
)

// Margin and sizing constants. Legend reserves a fixed right-hand strip
// and wins over a secondary-axis margin request when both are present.
const (
	marginTopTitle   = 2
	marginTopPlain   = 1
	marginLeft       = 8
	marginLeftYLabel = 2 // added when a y-axis label is present
	marginBottom     = 2
	marginBottomXLab = 1 // added when an x-axis label is present
	marginRightPlain = 1
	legendWidth      = 15
	secondaryAxis    = 6 // extra right margin for a secondary axis

	// Minimum plot-area size. Degenerate size requests clamp here rather
	// than going negative.
	minPlotWidth  = 10
	minPlotHeight = 5

	panelGapX = 2 // columns between facet panels
	panelGapY = 1 // rows between facet panels
	stripRows = 1 // rows reserved for a facet strip label

	// cellAspect is the assumed height/width ratio of one terminal cell,
	// used when a fixed coordinate ratio constrains the plot area.
	cellAspect = 0.5
)

// Margins are the cell counts reserved on each side of the plot area.
type Margins struct {
	Top, Left, Bottom, Right int
}

// Panel is one facet panel: its drawable rectangle plus the strip label
// anchored above it.
type Panel struct {
	Rect canvas.Rect

	// Strip is the one-row rectangle reserved for the panel's label.
	// Zero-sized when the layout has no strips.
	Strip canvas.Rect

	// Label is the strip text: the facet value for wrap panels, empty for
	// grid panels (grid labels live on the shared strips).
	Label string

	// Row and Col are the panel's position in the facet grid.
	Row, Col int

	// RowValue and ColValue identify the facet combination for grid
	// layouts. Wrap layouts set only RowValue.
	RowValue, ColValue string
}

// WrapSpec describes single-field faceting: one panel per label, tiled
// row-major into an auto-sized grid unless explicit counts are given.
type WrapSpec struct {
	Labels []string
	NRow   int // 0 = auto
	NCol   int // 0 = auto
}

// GridSpec describes two-field faceting: one panel per row/column label
// combination, including combinations absent from the data.
type GridSpec struct {
	RowLabels []string
	ColLabels []string
}

// Options carries the plot metadata layout depends on.
type Options struct {
	Width, Height int

	Title  bool
	XLabel bool
	YLabel bool
	Legend bool

	// SecondaryAxis requests extra right margin for a second y axis.
	// Ignored when a legend is present.
	SecondaryAxis bool

	// AspectRatio constrains the plot area's data aspect when positive
	// (fixed coordinates).
	AspectRatio float64

	Wrap *WrapSpec
	Grid *GridSpec
}

// Layout is the computed geometry of one render pass.
type Layout struct {
	Width, Height int
	Margins       Margins
	PlotArea      canvas.Rect
	Legend        *canvas.Rect
	Panels        []Panel

	// ColStrip and RowStrip are the shared strip areas of a grid layout.
	ColStrip, RowStrip canvas.Rect
}

// Compute derives the full layout for the given options.
func Compute(opts Options) Layout {
	m := computeMargins(opts)

	plotW := opts.Width - m.Left - m.Right
	plotH := opts.Height - m.Top - m.Bottom
	if plotW < minPlotWidth {
		plotW = minPlotWidth
	}
	if plotH < minPlotHeight {
		plotH = minPlotHeight
	}

	if opts.AspectRatio > 0 {
		plotW, plotH = constrainAspect(plotW, plotH, opts.AspectRatio)
	}

	l := Layout{
		Width:    opts.Width,
		Height:   opts.Height,
		Margins:  m,
		PlotArea: canvas.Rect{X: m.Left, Y: m.Top, W: plotW, H: plotH},
	}

	if opts.Legend {
		l.Legend = &canvas.Rect{
			X: l.PlotArea.Right() + 2,
			Y: l.PlotArea.Y,
			W: legendWidth - 3,
			H: l.PlotArea.H,
		}
	}

	switch {
	case opts.Grid != nil:
		l.computeGridPanels(*opts.Grid)
	case opts.Wrap != nil:
		l.computeWrapPanels(*opts.Wrap)
	default:
		l.Panels = []Panel{{Rect: l.PlotArea}}
	}
	return l
}

func computeMargins(opts Options) Margins {
	m := Margins{
		Top:    marginTopPlain,
		Left:   marginLeft,
		Bottom: marginBottom,
		Right:  marginRightPlain,
	}
	if opts.Title {
		m.Top = marginTopTitle
	}
	if opts.YLabel {
		m.Left += marginLeftYLabel
	}
	if opts.XLabel {
		m.Bottom += marginBottomXLab
	}
	switch {
	case opts.Legend:
		m.Right = legendWidth
	case opts.SecondaryAxis:
		m.Right += secondaryAxis
	}
	return m
}

// constrainAspect shrinks one plot-area dimension so the drawn aspect
// matches ratio, accounting for the non-square terminal cell.
func constrainAspect(w, h int, ratio float64) (int, int) {
	targetH := int(float64(w) * ratio * cellAspect)
	if targetH < minPlotHeight {
		targetH = minPlotHeight
	}
	if targetH <= h {
		return w, targetH
	}
	targetW := int(float64(h) / (ratio * cellAspect))
	if targetW < minPlotWidth {
		targetW = minPlotWidth
	}
	if targetW < w {
		return targetW, h
	}
	return w, h
}

// WrapShape returns the facet grid shape for n panels: explicit counts
// when given, otherwise ncol = ceil(sqrt(n*1.5)), nrow = ceil(n/ncol).
func WrapShape(n, nrow, ncol int) (rows, cols int) {
	if n < 1 {
		return 0, 0
	}
	switch {
	case ncol > 0:
		cols = ncol
	case nrow > 0:
		cols = (n + nrow - 1) / nrow
	default:
		cols = int(math.Ceil(math.Sqrt(float64(n) * 1.5)))
	}
	rows = (n + cols - 1) / cols
	return rows, cols
}

func (l *Layout) computeWrapPanels(spec WrapSpec) {
	n := len(spec.Labels)
	if n == 0 {
		l.Panels = []Panel{{Rect: l.PlotArea}}
		return
	}
	nrow, ncol := WrapShape(n, spec.NRow, spec.NCol)

	// Every panel carries its own strip row; all panels share one size.
	panelW := (l.PlotArea.W - (ncol-1)*panelGapX) / ncol
	panelH := (l.PlotArea.H-(nrow-1)*panelGapY)/nrow - stripRows
	if panelW < 1 {
		panelW = 1
	}
	if panelH < 1 {
		panelH = 1
	}

	l.Panels = make([]Panel, 0, n)
	for i, label := range spec.Labels {
		row, col := i/ncol, i%ncol
		x := l.PlotArea.X + col*(panelW+panelGapX)
		y := l.PlotArea.Y + row*(panelH+stripRows+panelGapY)
		l.Panels = append(l.Panels, Panel{
			Rect:     canvas.Rect{X: x, Y: y + stripRows, W: panelW, H: panelH},
			Strip:    canvas.Rect{X: x, Y: y, W: panelW, H: stripRows},
			Label:    label,
			Row:      row,
			Col:      col,
			RowValue: label,
		})
	}
}

func (l *Layout) computeGridPanels(spec GridSpec) {
	nrow, ncol := len(spec.RowLabels), len(spec.ColLabels)
	if nrow == 0 || ncol == 0 {
		l.Panels = []Panel{{Rect: l.PlotArea}}
		return
	}

	// Grid layouts share one strip row for column labels and one strip
	// column for row labels.
	l.ColStrip = canvas.Rect{X: l.PlotArea.X, Y: l.PlotArea.Y, W: l.PlotArea.W - 1, H: stripRows}
	l.RowStrip = canvas.Rect{X: l.PlotArea.Right() - 1, Y: l.PlotArea.Y + stripRows, W: 1, H: l.PlotArea.H - stripRows}

	inner := canvas.Rect{
		X: l.PlotArea.X,
		Y: l.PlotArea.Y + stripRows,
		W: l.PlotArea.W - 1,
		H: l.PlotArea.H - stripRows,
	}

	panelW := (inner.W - (ncol-1)*panelGapX) / ncol
	panelH := (inner.H - (nrow-1)*panelGapY) / nrow
	if panelW < 1 {
		panelW = 1
	}
	if panelH < 1 {
		panelH = 1
	}

	l.Panels = make([]Panel, 0, nrow*ncol)
	for r, rv := range spec.RowLabels {
		for c, cv := range spec.ColLabels {
			x := inner.X + c*(panelW+panelGapX)
			y := inner.Y + r*(panelH+panelGapY)
			l.Panels = append(l.Panels, Panel{
				Rect:     canvas.Rect{X: x, Y: y, W: panelW, H: panelH},
				Row:      r,
				Col:      c,
				RowValue: rv,
				ColValue: cv,
			})
		}
	}
}
