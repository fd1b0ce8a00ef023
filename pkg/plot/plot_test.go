package plot

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/observability"
	"github.com/cellplot/cellplot/pkg/scale"
)

func scatterRows() data.DataSource {
	return data.DataSource{
		{"x": 1.0, "y": 10.0},
		{"x": 2.0, "y": 20.0},
		{"x": 3.0, "y": 15.0},
	}
}

func xyAes() data.Mapping {
	return data.Mapping{data.AesX: "x", data.AesY: "y"}
}

// find returns every position of the marker rune.
func find(c *canvas.Canvas, marker rune) [][2]int {
	var out [][2]int
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.Get(x, y).Char == marker {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

func TestScatterOrientation(t *testing.T) {
	c, err := New(scatterRows()).
		Aes(xyAes()).
		Geom(geom.Point, geom.Params{}).
		Size(40, 15).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	marks := find(c, '•')
	if len(marks) != 3 {
		t.Fatalf("found %d markers, want 3", len(marks))
	}

	// find scans top-down, so rows come back in screen order; recover the
	// data points by column order instead.
	byCol := map[int]int{} // x -> row
	minCol, maxCol := c.Width(), 0
	for _, m := range marks {
		byCol[m[0]] = m[1]
		if m[0] < minCol {
			minCol = m[0]
		}
		if m[0] > maxCol {
			maxCol = m[0]
		}
	}

	// Larger y draws at a smaller row index: y=20 (second point) sits
	// above y=10 (first point).
	if byCol[maxCol] >= byCol[minCol] {
		t.Errorf("y=15 at row %d not above y=10 at row %d", byCol[maxCol], byCol[minCol])
	}
	var midCol int
	for col := range byCol {
		if col != minCol && col != maxCol {
			midCol = col
		}
	}
	if byCol[midCol] >= byCol[minCol] {
		t.Errorf("y=20 at row %d not above y=10 at row %d", byCol[midCol], byCol[minCol])
	}
	if byCol[midCol] >= byCol[maxCol] {
		t.Errorf("y=20 at row %d not above y=15 at row %d", byCol[midCol], byCol[maxCol])
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		plot *Plot
		code errors.Code
	}{
		{
			name: "no layers",
			plot: New(scatterRows()).Aes(xyAes()),
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "missing aesthetic",
			plot: New(scatterRows()).
				Aes(data.Mapping{data.AesX: "x"}).
				Geom(geom.Point, geom.Params{}),
			code: errors.ErrCodeMissingAesthetic,
		},
		{
			name: "empty facet field",
			plot: New(scatterRows()).
				Aes(xyAes()).
				Geom(geom.Point, geom.Params{}).
				FacetWrap("", 0, 0),
			code: errors.ErrCodeInvalidFacet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.plot.RenderCanvas(context.Background())
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestTitleAndAxisLabels(t *testing.T) {
	c, err := New(scatterRows()).
		Aes(xyAes()).
		Geom(geom.Point, geom.Params{}).
		Title("growth").
		Labs("time", "value").
		Size(60, 20).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	text := c.String()
	lines := strings.Split(text, "\n")
	if !strings.Contains(lines[0], "growth") {
		t.Errorf("title missing from the first row: %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "time") {
		t.Errorf("x label missing from the last row: %q", lines[len(lines)-1])
	}

	// The y label runs vertically down column 0.
	var col strings.Builder
	for y := 0; y < c.Height(); y++ {
		col.WriteRune(c.Get(0, y).Char)
	}
	if !strings.Contains(col.String(), "value") {
		t.Errorf("y label missing from column 0: %q", col.String())
	}
}

func TestFacetWrapDrawsStrips(t *testing.T) {
	rows := data.DataSource{
		{"x": 1.0, "y": 1.0, "g": "alpha"},
		{"x": 2.0, "y": 2.0, "g": "beta"},
	}
	c, err := New(rows).
		Aes(xyAes()).
		Geom(geom.Point, geom.Params{}).
		FacetWrap("g", 0, 0).
		Size(80, 24).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	text := c.String()
	if !strings.Contains(text, "alpha") || !strings.Contains(text, "beta") {
		t.Error("facet strip labels missing")
	}
}

func TestFacetOverAbsentFieldFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		facet func(*Plot) *Plot
	}{
		{
			name:  "wrap",
			facet: func(p *Plot) *Plot { return p.FacetWrap("nope", 0, 0) },
		},
		{
			name:  "grid",
			facet: func(p *Plot) *Plot { return p.FacetGrid("nope", "alsomissing") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.facet(New(scatterRows()).
				Aes(xyAes()).
				Geom(geom.Point, geom.Params{}).
				Size(40, 15))
			c, err := p.RenderCanvas(context.Background())
			if err != nil {
				t.Fatalf("RenderCanvas() error = %v", err)
			}
			// All rows land in the single fallback panel.
			if marks := find(c, '•'); len(marks) != 3 {
				t.Errorf("found %d markers, want 3", len(marks))
			}
		})
	}
}

func TestDiscreteColorLegend(t *testing.T) {
	rows := data.DataSource{
		{"x": 1.0, "y": 1.0, "kind": "cats"},
		{"x": 2.0, "y": 2.0, "kind": "dogs"},
	}
	c, err := New(rows).
		Aes(data.Mapping{data.AesX: "x", data.AesY: "y", data.AesColor: "kind"}).
		Geom(geom.Point, geom.Params{}).
		Size(80, 24).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	text := c.String()
	if !strings.Contains(text, "kind") {
		t.Error("legend title missing")
	}
	if !strings.Contains(text, "cats") || !strings.Contains(text, "dogs") {
		t.Error("legend entries missing")
	}
	if len(find(c, '■')) != 2 {
		t.Errorf("found %d swatches, want 2", len(find(c, '■')))
	}
}

func TestBarChartDiscreteAxis(t *testing.T) {
	rows := data.DataSource{
		{"k": "aa"}, {"k": "aa"}, {"k": "bb"},
	}
	c, err := New(rows).
		Aes(data.Mapping{data.AesX: "k"}).
		Geom(geom.Bar, geom.Params{}).
		Size(40, 15).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	text := c.String()
	if !strings.Contains(text, "aa") || !strings.Contains(text, "bb") {
		t.Error("discrete tick labels missing")
	}
	if len(find(c, '█')) == 0 {
		t.Error("no bar cells drawn")
	}
}

func TestLogScaleKeepsOrder(t *testing.T) {
	rows := data.DataSource{
		{"x": 1.0, "y": 1.0},
		{"x": 2.0, "y": 100.0},
	}
	c, err := New(rows).
		Aes(xyAes()).
		Geom(geom.Point, geom.Params{}).
		ScaleY(scale.TransformLog10).
		Size(40, 15).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	marks := find(c, '•')
	if len(marks) != 2 {
		t.Fatalf("found %d markers, want 2", len(marks))
	}
	// marks come back in screen order: the higher value first.
	if marks[0][0] < marks[1][0] {
		t.Error("y=100 should be the upper marker")
	}
}

type countingHooks struct {
	observability.NoopRenderHooks
	starts, completes, resolves, layouts atomic.Int64
}

func (h *countingHooks) OnRenderStart(context.Context, int, int, int) { h.starts.Add(1) }
func (h *countingHooks) OnRenderComplete(context.Context, int, int, time.Duration, error) {
	h.completes.Add(1)
}
func (h *countingHooks) OnResolveStart(context.Context, int, int) { h.resolves.Add(1) }
func (h *countingHooks) OnLayoutStart(context.Context, int, int, int) {
	h.layouts.Add(1)
}

func TestRenderFiresHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetRenderHooks(h)
	defer observability.Reset()

	_, err := New(scatterRows()).
		Aes(xyAes()).
		Geom(geom.Point, geom.Params{}).
		RenderCanvas(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if h.starts.Load() != 1 || h.completes.Load() != 1 {
		t.Errorf("render hooks fired %d/%d times, want 1/1", h.starts.Load(), h.completes.Load())
	}
	if h.resolves.Load() != 1 || h.layouts.Load() != 1 {
		t.Errorf("resolve/layout hooks fired %d/%d times, want 1/1", h.resolves.Load(), h.layouts.Load())
	}
}

func TestRenderStringContainsEscapes(t *testing.T) {
	p := New(scatterRows()).Aes(xyAes()).Geom(geom.Point, geom.Params{})
	p.theme.Render.ColorMode = canvas.ColorTrueColor

	out, err := p.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("truecolor output carries no escape sequences")
	}
}

func TestFacetGridPanelCount(t *testing.T) {
	rows := data.DataSource{
		{"x": 1.0, "y": 1.0, "r": "r1", "c": "c1"},
		{"x": 2.0, "y": 2.0, "r": "r2", "c": "c2"},
	}
	p := New(rows).
		Aes(xyAes()).
		Geom(geom.Point, geom.Params{}).
		FacetGrid("r", "c").
		Size(100, 40)

	groups, l, err := p.computeLayout(context.Background(), 100, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 4 || len(l.Panels) != 4 {
		t.Errorf("got %d groups over %d panels, want 4 over 4", len(groups), len(l.Panels))
	}

	if _, err := p.RenderCanvas(context.Background()); err != nil {
		t.Fatal(err)
	}
}
