// Package theme defines the visual configuration of a plot: colors,
// palette, and default render settings. Themes load from TOML files and
// merge over the built-in default, so a theme file only needs to name
// what it changes.
package theme

import (
	"os"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/errors"
)

// Theme is the resolved visual configuration a renderer draws with.
type Theme struct {
	Name string

	Background canvas.RGBA
	Foreground canvas.RGBA
	Axis       canvas.RGBA
	Grid       canvas.RGBA
	Title      canvas.RGBA

	Palette  []canvas.RGBA
	Gradient [2]canvas.RGBA

	Render RenderConfig
}

// RenderConfig carries the default output settings a theme suggests.
type RenderConfig struct {
	Width     int
	Height    int
	ColorMode canvas.ColorMode
}

// file is the TOML shape. All fields are optional; empty values keep the
// default theme's setting.
type file struct {
	Name   string `toml:"name"`
	Colors struct {
		Background string   `toml:"background"`
		Foreground string   `toml:"foreground"`
		Axis       string   `toml:"axis"`
		Grid       string   `toml:"grid"`
		Title      string   `toml:"title"`
		Palette    []string `toml:"palette"`
		Gradient   []string `toml:"gradient"`
	} `toml:"colors"`
	Render struct {
		Width     int    `toml:"width"`
		Height    int    `toml:"height"`
		ColorMode string `toml:"color_mode"`
	} `toml:"render"`
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Name:       "default",
		Background: canvas.RGBA{},
		Foreground: canvas.RGB(0xe0, 0xe0, 0xe0),
		Axis:       canvas.RGB(0x80, 0x80, 0x80),
		Grid:       canvas.RGB(0x30, 0x30, 0x30),
		Title:      canvas.RGB(0xff, 0xff, 0xff),
		Gradient: [2]canvas.RGBA{
			canvas.RGB(0x13, 0x30, 0x6d),
			canvas.RGB(0x56, 0xb1, 0xf7),
		},
		Render: RenderConfig{
			Width:     80,
			Height:    24,
			ColorMode: canvas.ColorAuto,
		},
	}
}

// Load reads a theme file and merges it over the default theme.
func Load(path string) (Theme, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "failed to read theme %s", path)
	}
	return Parse(string(raw))
}

// Parse decodes TOML theme source and merges it over the default theme.
func Parse(src string) (Theme, error) {
	var f file
	if err := toml.Unmarshal([]byte(src), &f); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "failed to decode theme")
	}

	t := Default()
	if f.Name != "" {
		t.Name = f.Name
	}

	assign := func(dst *canvas.RGBA, hex string) error {
		if hex == "" {
			return nil
		}
		c, err := parseHex(hex)
		if err != nil {
			return err
		}
		*dst = c
		return nil
	}
	if err := assign(&t.Background, f.Colors.Background); err != nil {
		return Theme{}, err
	}
	if err := assign(&t.Foreground, f.Colors.Foreground); err != nil {
		return Theme{}, err
	}
	if err := assign(&t.Axis, f.Colors.Axis); err != nil {
		return Theme{}, err
	}
	if err := assign(&t.Grid, f.Colors.Grid); err != nil {
		return Theme{}, err
	}
	if err := assign(&t.Title, f.Colors.Title); err != nil {
		return Theme{}, err
	}

	if len(f.Colors.Palette) > 0 {
		palette := make([]canvas.RGBA, 0, len(f.Colors.Palette))
		for _, hex := range f.Colors.Palette {
			c, err := parseHex(hex)
			if err != nil {
				return Theme{}, err
			}
			palette = append(palette, c)
		}
		t.Palette = palette
	}

	switch len(f.Colors.Gradient) {
	case 0:
	case 2:
		lo, err := parseHex(f.Colors.Gradient[0])
		if err != nil {
			return Theme{}, err
		}
		hi, err := parseHex(f.Colors.Gradient[1])
		if err != nil {
			return Theme{}, err
		}
		t.Gradient = [2]canvas.RGBA{lo, hi}
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme,
			"gradient needs exactly 2 colors, got %d", len(f.Colors.Gradient))
	}

	if f.Render.Width != 0 {
		if f.Render.Width < 1 {
			return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "render width must be positive, got %d", f.Render.Width)
		}
		t.Render.Width = f.Render.Width
	}
	if f.Render.Height != 0 {
		if f.Render.Height < 1 {
			return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "render height must be positive, got %d", f.Render.Height)
		}
		t.Render.Height = f.Render.Height
	}
	if f.Render.ColorMode != "" {
		mode := canvas.ColorMode(f.Render.ColorMode)
		switch mode {
		case canvas.ColorNone, canvas.ColorANSI, canvas.ColorANSI256, canvas.ColorTrueColor, canvas.ColorAuto:
			t.Render.ColorMode = mode
		default:
			return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown color mode %q", f.Render.ColorMode)
		}
	}
	return t, nil
}

func parseHex(hex string) (canvas.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return canvas.RGBA{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "bad color %q", hex)
	}
	return canvas.RGB(uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5)), nil
}
