package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/errors"
)

func TestParseMergesOverDefault(t *testing.T) {
	th, err := Parse(`
name = "midnight"

[colors]
foreground = "#ff0000"
palette = ["#112233", "#445566"]

[render]
width = 120
color_mode = "256"
`)
	if err != nil {
		t.Fatal(err)
	}

	if th.Name != "midnight" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Foreground != canvas.RGB(0xff, 0, 0) {
		t.Errorf("Foreground = %+v", th.Foreground)
	}
	if len(th.Palette) != 2 || th.Palette[0] != canvas.RGB(0x11, 0x22, 0x33) {
		t.Errorf("Palette = %+v", th.Palette)
	}
	if th.Render.Width != 120 {
		t.Errorf("Width = %d, want 120", th.Render.Width)
	}
	if th.Render.ColorMode != canvas.ColorANSI256 {
		t.Errorf("ColorMode = %q", th.Render.ColorMode)
	}

	// Unset fields keep the default.
	def := Default()
	if th.Render.Height != def.Render.Height {
		t.Errorf("Height = %d, want default %d", th.Render.Height, def.Render.Height)
	}
	if th.Axis != def.Axis {
		t.Errorf("Axis = %+v, want default", th.Axis)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "malformed toml", src: `name = [`},
		{name: "bad hex color", src: "[colors]\nforeground = \"red\""},
		{name: "gradient arity", src: "[colors]\ngradient = [\"#000000\"]"},
		{name: "negative width", src: "[render]\nwidth = -2"},
		{name: "unknown color mode", src: "[render]\ncolor_mode = \"cga\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidTheme) {
				t.Errorf("error = %v, want INVALID_THEME", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte("name = \"ocean\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "ocean" {
		t.Errorf("Name = %q, want ocean", th.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("missing file error = %v, want INVALID_THEME", err)
	}
}
