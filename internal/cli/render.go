package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/plot"
	"github.com/cellplot/cellplot/pkg/scale"
	"github.com/cellplot/cellplot/pkg/theme"
)

// renderOptions collects the render command's flags.
type renderOptions struct {
	geomKind  string
	x, y      string
	color     string
	fill      string
	facet     string
	title     string
	xLabel    string
	yLabel    string
	scaleX    string
	scaleY    string
	width     int
	height    int
	themePath string
	colorMode string
	output    string
	chart     string
}

// renderCommand creates the render subcommand: data file in, chart out.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [data-file]",
		Short: "Render a chart from a CSV or JSON data file",
		Long: `Render reads rows from a data file, maps the named fields onto
visual channels, and writes the chart to stdout or a file.

Pass "-" as the data file to read CSV from stdin. With --chart, the data
file and mappings can come from a TOML chart description instead; explicit
flags override spec values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return c.runRender(cmd, path, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.geomKind, "geom", "g", "point", "geometry kind (point, line, bar, area, ...)")
	flags.StringVarP(&opts.x, "x", "x", "", "field mapped to the x axis")
	flags.StringVarP(&opts.y, "y", "y", "", "field mapped to the y axis")
	flags.StringVar(&opts.color, "color", "", "field mapped to stroke color")
	flags.StringVar(&opts.fill, "fill", "", "field mapped to fill color")
	flags.StringVar(&opts.facet, "facet", "", "field to facet panels by")
	flags.StringVarP(&opts.title, "title", "t", "", "chart title")
	flags.StringVar(&opts.xLabel, "xlabel", "", "x axis label")
	flags.StringVar(&opts.yLabel, "ylabel", "", "y axis label")
	flags.StringVar(&opts.scaleX, "scale-x", "identity", "x axis transform (identity, log10, sqrt, reverse)")
	flags.StringVar(&opts.scaleY, "scale-y", "identity", "y axis transform (identity, log10, sqrt, reverse)")
	flags.IntVarP(&opts.width, "width", "W", 0, "output width in columns (0 = theme default)")
	flags.IntVarP(&opts.height, "height", "H", 0, "output height in rows (0 = theme default)")
	flags.StringVar(&opts.themePath, "theme", "", "TOML theme file")
	flags.StringVar(&opts.colorMode, "color-mode", "", "color mode (none, 16, 256, truecolor, auto)")
	flags.StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	flags.StringVar(&opts.chart, "chart", "", "TOML chart description file")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOptions) error {
	prog := newProgress(c.Logger)

	if opts.chart != "" {
		spec, err := loadChartSpec(opts.chart)
		if err != nil {
			return err
		}
		opts.applySpec(spec, cmd.Flags())
		if path == "" {
			path = spec.Data
		}
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no data file: pass one as an argument or set data in the chart spec")
	}

	rows, err := loadData(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded data", "rows", len(rows), "path", path)

	p, err := buildPlot(rows, opts)
	if err != nil {
		return err
	}

	out, err := p.Render(cmd.Context())
	if err != nil {
		return fmt.Errorf("render failed: %s", errors.UserMessage(err))
	}
	prog.done(fmt.Sprintf("Rendered %d rows", len(rows)))

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out+"\n"), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", opts.output)
		}
		printSuccess("chart written")
		printFile(opts.output)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// buildPlot translates command flags into a plot description.
func buildPlot(rows data.DataSource, opts renderOptions) (*plot.Plot, error) {
	aes := data.Mapping{}
	if opts.x != "" {
		aes[data.AesX] = opts.x
	}
	if opts.y != "" {
		aes[data.AesY] = opts.y
	}
	if opts.color != "" {
		aes[data.AesColor] = opts.color
	}
	if opts.fill != "" {
		aes[data.AesFill] = opts.fill
	}

	th := theme.Default()
	if opts.themePath != "" {
		loaded, err := theme.Load(opts.themePath)
		if err != nil {
			return nil, err
		}
		th = loaded
	}
	if opts.colorMode != "" {
		mode := canvas.ColorMode(opts.colorMode)
		switch mode {
		case canvas.ColorNone, canvas.ColorANSI, canvas.ColorANSI256, canvas.ColorTrueColor, canvas.ColorAuto:
			th.Render.ColorMode = mode
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown color mode %q", opts.colorMode)
		}
	}

	sx, err := parseTransform(opts.scaleX)
	if err != nil {
		return nil, err
	}
	sy, err := parseTransform(opts.scaleY)
	if err != nil {
		return nil, err
	}

	p := plot.New(rows).
		Aes(aes).
		Geom(geom.Kind(opts.geomKind), geom.Params{}).
		Title(opts.title).
		Labs(opts.xLabel, opts.yLabel).
		ScaleX(sx).
		ScaleY(sy).
		Theme(th).
		Size(opts.width, opts.height)

	if opts.facet != "" {
		p.FacetWrap(opts.facet, 0, 0)
	}
	return p, nil
}

func parseTransform(name string) (scale.Transform, error) {
	t := scale.Transform(name)
	if !t.Valid() {
		return "", errors.New(errors.ErrCodeInvalidScale, "unknown axis transform %q", name)
	}
	return t, nil
}
