package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/cellplot/cellplot/pkg/errors"
)

// chartSpec is the TOML shape of a declarative chart description consumed
// by the render command. Every field is optional; explicit flags override
// spec values.
type chartSpec struct {
	Data      string `toml:"data"`
	Geom      string `toml:"geom"`
	X         string `toml:"x"`
	Y         string `toml:"y"`
	Color     string `toml:"color"`
	Fill      string `toml:"fill"`
	Facet     string `toml:"facet"`
	Title     string `toml:"title"`
	XLabel    string `toml:"xlabel"`
	YLabel    string `toml:"ylabel"`
	ScaleX    string `toml:"scale_x"`
	ScaleY    string `toml:"scale_y"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Theme     string `toml:"theme"`
	ColorMode string `toml:"color_mode"`
}

// loadChartSpec reads and decodes a TOML chart description.
func loadChartSpec(path string) (chartSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return chartSpec{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read chart spec %s", path)
	}
	var s chartSpec
	if err := toml.Unmarshal(raw, &s); err != nil {
		return chartSpec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to decode chart spec %s", path)
	}
	return s, nil
}

// applySpec copies spec values into the options for every flag the user
// did not set explicitly.
func (opts *renderOptions) applySpec(s chartSpec, flags *pflag.FlagSet) {
	set := func(name string, dst *string, v string) {
		if v != "" && !flags.Changed(name) {
			*dst = v
		}
	}
	set("geom", &opts.geomKind, s.Geom)
	set("x", &opts.x, s.X)
	set("y", &opts.y, s.Y)
	set("color", &opts.color, s.Color)
	set("fill", &opts.fill, s.Fill)
	set("facet", &opts.facet, s.Facet)
	set("title", &opts.title, s.Title)
	set("xlabel", &opts.xLabel, s.XLabel)
	set("ylabel", &opts.yLabel, s.YLabel)
	set("scale-x", &opts.scaleX, s.ScaleX)
	set("scale-y", &opts.scaleY, s.ScaleY)
	set("theme", &opts.themePath, s.Theme)
	set("color-mode", &opts.colorMode, s.ColorMode)

	if s.Width != 0 && !flags.Changed("width") {
		opts.width = s.Width
	}
	if s.Height != 0 && !flags.Changed("height") {
		opts.height = s.Height
	}
}
