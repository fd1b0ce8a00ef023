package cli

import (
	"testing"

	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
	"github.com/cellplot/cellplot/pkg/scale"
)

func testRows() data.DataSource {
	return data.DataSource{
		{"x": 1.0, "y": 2.0, "kind": "a"},
		{"x": 2.0, "y": 4.0, "kind": "b"},
	}
}

func TestBuildPlot(t *testing.T) {
	opts := renderOptions{
		geomKind: "point",
		x:        "x",
		y:        "y",
		color:    "kind",
		title:    "test chart",
		scaleX:   "identity",
		scaleY:   "log10",
	}

	p, err := buildPlot(testRows(), opts)
	if err != nil {
		t.Fatalf("buildPlot() error = %v", err)
	}
	if p == nil {
		t.Fatal("buildPlot() returned nil plot")
	}
}

func TestBuildPlotErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     renderOptions
		wantCode errors.Code
	}{
		{
			name:     "unknown transform",
			opts:     renderOptions{geomKind: "point", x: "x", y: "y", scaleX: "cubic", scaleY: "identity"},
			wantCode: errors.ErrCodeInvalidScale,
		},
		{
			name:     "unknown color mode",
			opts:     renderOptions{geomKind: "point", x: "x", y: "y", scaleX: "identity", scaleY: "identity", colorMode: "cga"},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "missing theme file",
			opts:     renderOptions{geomKind: "point", x: "x", y: "y", scaleX: "identity", scaleY: "identity", themePath: "/nonexistent/theme.toml"},
			wantCode: errors.ErrCodeInvalidTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildPlot(testRows(), tt.opts)
			if err == nil {
				t.Fatal("buildPlot() expected error, got nil")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    scale.Transform
		wantErr bool
	}{
		{name: "identity", input: "identity", want: scale.TransformIdentity},
		{name: "log10", input: "log10", want: scale.TransformLog10},
		{name: "sqrt", input: "sqrt", want: scale.TransformSqrt},
		{name: "reverse", input: "reverse", want: scale.TransformReverse},
		{name: "unknown", input: "exp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTransform(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("parseTransform() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTransform() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseTransform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDemoPlots(t *testing.T) {
	names := []string{"scatter", "line", "bar", "histogram", "box", "facets"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := demoPlot(name)
			if err != nil {
				t.Fatalf("demoPlot(%q) error = %v", name, err)
			}
			if p == nil {
				t.Fatalf("demoPlot(%q) returned nil", name)
			}
		})
	}

	if _, err := demoPlot("spiral"); err == nil {
		t.Error("demoPlot() expected error for unknown name")
	}
}
