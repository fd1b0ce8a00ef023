// Package plot is the user-facing chart builder. A Plot collects data,
// aesthetic mappings, layers, coordinates, facets, and a theme through a
// fluent API, then renders to a cell canvas or an ANSI string.
//
// The typical flow:
//
//	out, err := plot.New(rows).
//	    Aes(data.Mapping{data.AesX: "date", data.AesY: "price"}).
//	    Geom(geom.Line, geom.Params{}).
//	    Title("AAPL").
//	    Size(100, 30).
//	    Render(ctx)
package plot

import (
	"github.com/cellplot/cellplot/pkg/coord"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/scale"
	"github.com/cellplot/cellplot/pkg/theme"
)

// Layer is one geometry drawing pass. Nil Data inherits the plot's data;
// the mapping merges over the plot-level mapping.
type Layer struct {
	Kind   geom.Kind
	Data   data.DataSource
	Aes    data.Mapping
	Params geom.Params
}

type facetWrap struct {
	field      string
	nrow, ncol int
}

type facetGrid struct {
	row, col string
}

// Plot accumulates the chart description. All builder methods return the
// receiver so calls chain; nothing is validated until render time.
type Plot struct {
	rows   data.DataSource
	aes    data.Mapping
	layers []Layer

	coords coord.Coord
	wrap   *facetWrap
	grid   *facetGrid

	title  string
	xLabel string
	yLabel string

	xTrans scale.Transform
	yTrans scale.Transform

	theme         theme.Theme
	width, height int
}

// New starts a plot over the given rows.
func New(rows data.DataSource) *Plot {
	return &Plot{
		rows:   rows,
		aes:    data.Mapping{},
		coords: coord.NewCartesian(),
		xTrans: scale.TransformIdentity,
		yTrans: scale.TransformIdentity,
		theme:  theme.Default(),
	}
}

// Aes sets the plot-level aesthetic mapping, inherited by every layer.
func (p *Plot) Aes(m data.Mapping) *Plot {
	p.aes = m
	return p
}

// Geom appends a layer of the given kind drawing the plot's data.
func (p *Plot) Geom(kind geom.Kind, params geom.Params) *Plot {
	p.layers = append(p.layers, Layer{Kind: kind, Params: params})
	return p
}

// Add appends a fully specified layer, including its own data or mapping
// overrides.
func (p *Plot) Add(l Layer) *Plot {
	p.layers = append(p.layers, l)
	return p
}

// Coord sets the coordinate system.
func (p *Plot) Coord(c coord.Coord) *Plot {
	p.coords = c
	return p
}

// FacetWrap facets the plot by one field into an auto-shaped grid.
// Pass 0 for nrow/ncol to auto-size.
func (p *Plot) FacetWrap(field string, nrow, ncol int) *Plot {
	p.wrap = &facetWrap{field: field, nrow: nrow, ncol: ncol}
	p.grid = nil
	return p
}

// FacetGrid facets the plot by a row field crossed with a column field.
func (p *Plot) FacetGrid(rowField, colField string) *Plot {
	p.grid = &facetGrid{row: rowField, col: colField}
	p.wrap = nil
	return p
}

// Title sets the plot title.
func (p *Plot) Title(s string) *Plot {
	p.title = s
	return p
}

// Labs sets the axis labels. Empty strings leave an axis unlabeled.
func (p *Plot) Labs(x, y string) *Plot {
	p.xLabel, p.yLabel = x, y
	return p
}

// ScaleX applies an axis transform to the x scale.
func (p *Plot) ScaleX(t scale.Transform) *Plot {
	p.xTrans = t
	return p
}

// ScaleY applies an axis transform to the y scale.
func (p *Plot) ScaleY(t scale.Transform) *Plot {
	p.yTrans = t
	return p
}

// Theme replaces the plot theme.
func (p *Plot) Theme(t theme.Theme) *Plot {
	p.theme = t
	return p
}

// Size sets the output size in cells. Unset dimensions fall back to the
// theme's render config.
func (p *Plot) Size(width, height int) *Plot {
	p.width, p.height = width, height
	return p
}

// mergedAes is the layer's effective mapping: layer entries win over
// plot-level entries.
func (p *Plot) mergedAes(l Layer) data.Mapping {
	if len(l.Aes) == 0 {
		return p.aes
	}
	m := make(data.Mapping, len(p.aes)+len(l.Aes))
	for k, v := range p.aes {
		m[k] = v
	}
	for k, v := range l.Aes {
		m[k] = v
	}
	return m
}

// layerRows is the layer's effective data.
func (p *Plot) layerRows(l Layer) data.DataSource {
	if l.Data != nil {
		return l.Data
	}
	return p.rows
}

// hasLegend reports whether any layer maps a legend-worthy channel.
func (p *Plot) hasLegend() bool {
	for _, l := range p.layers {
		m := p.mergedAes(l)
		if m.Has(data.AesColor) || m.Has(data.AesFill) || m.Has(data.AesSize) || m.Has(data.AesShape) {
			return true
		}
	}
	return false
}

// hasSecondaryAxis reports whether any layer maps the y2 channel.
func (p *Plot) hasSecondaryAxis() bool {
	for _, l := range p.layers {
		if p.mergedAes(l).Has(data.AesY2) {
			return true
		}
	}
	return false
}
