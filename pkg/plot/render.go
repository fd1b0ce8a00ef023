package plot

import (
	"context"
	"time"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/layout"
	"github.com/cellplot/cellplot/pkg/observability"
	"github.com/cellplot/cellplot/pkg/scale"
)

// Render draws the plot and serializes it with the theme's color mode.
func (p *Plot) Render(ctx context.Context) (string, error) {
	c, err := p.RenderCanvas(ctx)
	if err != nil {
		return "", err
	}
	return canvas.Serialize(c, p.theme.Render.ColorMode), nil
}

// RenderCanvas draws the plot onto a fresh canvas.
func (p *Plot) RenderCanvas(ctx context.Context) (*canvas.Canvas, error) {
	width, height := p.width, p.height
	if width <= 0 {
		width = p.theme.Render.Width
	}
	if height <= 0 {
		height = p.theme.Render.Height
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, width, height, len(p.layers))
	c, err := p.render(ctx, width, height)
	observability.Render().OnRenderComplete(ctx, width, height, time.Since(start), err)
	return c, err
}

// Layout computes the panel geometry without drawing, for callers that
// overlay their own content on the rendered frame.
func (p *Plot) Layout(ctx context.Context) (layout.Layout, error) {
	width, height := p.width, p.height
	if width <= 0 {
		width = p.theme.Render.Width
	}
	if height <= 0 {
		height = p.theme.Render.Height
	}
	_, l, err := p.computeLayout(ctx, width, height)
	return l, err
}

func (p *Plot) render(ctx context.Context, width, height int) (*canvas.Canvas, error) {
	if len(p.layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "plot has no layers")
	}

	groups, l, err := p.computeLayout(ctx, width, height)
	if err != nil {
		return nil, err
	}

	resolveStart := time.Now()
	observability.Render().OnResolveStart(ctx, len(p.rows), len(p.layers))
	scales := p.resolveScales()
	observability.Render().OnResolveComplete(ctx, countScales(scales), time.Since(resolveStart), nil)

	c := canvas.New(width, height)
	if p.theme.Background.Set() {
		c.FillRect(0, 0, width, height, canvas.Cell{Char: ' ', Bg: p.theme.Background})
	}

	p.drawTitle(c, l)
	p.drawAxisLabels(c, l)
	p.drawStrips(c, l)

	for i, panel := range l.Panels {
		rows := p.rows
		if groups != nil {
			rows = groups[i].Rows
		}
		if err := p.renderPanel(c, panel, rows, scales); err != nil {
			return nil, err
		}
	}

	p.drawAxes(c, l, scales)
	if l.Legend != nil {
		p.drawLegend(c, *l.Legend, scales)
	}
	return c, nil
}

// computeLayout splits the data into facet groups and derives the panel
// geometry.
func (p *Plot) computeLayout(ctx context.Context, width, height int) ([]layout.FacetGroup, layout.Layout, error) {
	opts := layout.Options{
		Width:         width,
		Height:        height,
		Title:         p.title != "",
		XLabel:        p.xLabel != "",
		YLabel:        p.yLabel != "",
		Legend:        p.hasLegend(),
		SecondaryAxis: p.hasSecondaryAxis(),
		AspectRatio:   p.coords.AspectRatio(),
	}

	var groups []layout.FacetGroup
	switch {
	case p.wrap != nil:
		if p.wrap.field == "" {
			return nil, layout.Layout{}, errors.New(errors.ErrCodeInvalidFacet, "facet_wrap needs a field")
		}
		groups = layout.SplitWrap(p.rows, p.wrap.field)
		if len(groups) == 0 {
			// No row carries the facet field; fall back to a single
			// unfaceted panel rather than failing.
			groups = nil
			break
		}
		labels := make([]string, len(groups))
		for i, g := range groups {
			labels[i] = g.RowValue
		}
		opts.Wrap = &layout.WrapSpec{Labels: labels, NRow: p.wrap.nrow, NCol: p.wrap.ncol}
	case p.grid != nil:
		if p.grid.row == "" || p.grid.col == "" {
			return nil, layout.Layout{}, errors.New(errors.ErrCodeInvalidFacet, "facet_grid needs row and column fields")
		}
		groups = layout.SplitGrid(p.rows, p.grid.row, p.grid.col)
		if len(groups) == 0 {
			groups = nil
			break
		}
		spec := &layout.GridSpec{
			RowLabels: data.DiscreteDomain(p.rows, p.grid.row),
			ColLabels: data.DiscreteDomain(p.rows, p.grid.col),
		}
		opts.Grid = spec
	}

	start := time.Now()
	panelCount := 1
	if groups != nil {
		panelCount = len(groups)
	}
	observability.Render().OnLayoutStart(ctx, width, height, panelCount)
	l := layout.Compute(opts)
	observability.Render().OnLayoutComplete(ctx, time.Since(start), nil)

	if groups != nil && len(groups) != len(l.Panels) {
		return nil, layout.Layout{}, errors.New(errors.ErrCodeInternal,
			"facet groups (%d) and panels (%d) disagree", len(groups), len(l.Panels))
	}
	return groups, l, nil
}

// renderPanel ranges the shared scales onto the panel rect and draws
// every layer into it.
func (p *Plot) renderPanel(c *canvas.Canvas, panel layout.Panel, rows data.DataSource, r resolved) error {
	set := p.panelScales(panel.Rect, r)
	gctx := &geom.Context{
		Canvas: c,
		Panel:  panel.Rect,
		Scales: set,
		Coord:  p.coords,
	}

	p.drawGrid(c, panel.Rect, set)

	for _, l := range p.layers {
		layerRows := rows
		if l.Data != nil {
			layerRows = l.Data
		}
		aes := p.mergedAes(l)

		lctx := gctx
		if aes.Has(data.AesY2) && set.Y2 != nil {
			// Secondary-axis layers draw against y2 in place of y.
			swapped := *gctx
			swapped.Scales.Y = set.Y2
			remapped := make(data.Mapping, len(aes))
			for k, v := range aes {
				remapped[k] = v
			}
			remapped[data.AesY] = aes[data.AesY2]
			aes = remapped
			lctx = &swapped
		}

		if err := geom.Render(l.Kind, layerRows, l.Params, aes, lctx); err != nil {
			return err
		}
	}
	return nil
}

// panelScales clones the shared scales with canvas ranges spanning the
// panel. Vertical ranges run bottom row to top row so larger values land
// higher.
func (p *Plot) panelScales(rect canvas.Rect, r resolved) geom.Scales {
	ranged := func(s *scale.Scale, lo, hi float64) *scale.Scale {
		if s == nil {
			return nil
		}
		c := *s
		return c.WithRange(lo, hi)
	}
	return geom.Scales{
		X:     ranged(r.x, float64(rect.X), float64(rect.Right()-1)),
		Y:     ranged(r.y, float64(rect.Bottom()-1), float64(rect.Y)),
		Y2:    ranged(r.y2, float64(rect.Bottom()-1), float64(rect.Y)),
		Color: r.color,
		Fill:  r.fill,
		Size:  r.size,
		Alpha: r.alpha,
		Shape: r.shape,
	}
}

func countScales(r resolved) int {
	n := 0
	for _, s := range []*scale.Scale{r.x, r.y, r.y2, r.color, r.fill, r.size, r.alpha, r.shape} {
		if s != nil {
			n++
		}
	}
	return n
}
