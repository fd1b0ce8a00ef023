package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/geom"
	"github.com/cellplot/cellplot/pkg/plot"
	"github.com/cellplot/cellplot/pkg/stat"
)

// demoCommand creates the demo subcommand rendering built-in sample charts.
func (c *CLI) demoCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:       "demo [scatter|line|bar|histogram|box|facets]",
		Short:     "Render a built-in sample chart",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"scatter", "line", "bar", "histogram", "box", "facets"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "scatter"
			if len(args) > 0 {
				name = args[0]
			}
			p, err := demoPlot(name)
			if err != nil {
				return err
			}
			out, err := p.Size(width, height).Render(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "W", 0, "output width in columns (0 = theme default)")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "output height in rows (0 = theme default)")
	return cmd
}

func demoPlot(name string) (*plot.Plot, error) {
	switch name {
	case "scatter":
		return plot.New(waveRows(60)).
			Aes(data.Mapping{data.AesX: "t", data.AesY: "value", data.AesColor: "series"}).
			Geom(geom.Point, geom.Params{}).
			Title("two phased waves").
			Labs("t", "value"), nil

	case "line":
		return plot.New(walkRows(120)).
			Aes(data.Mapping{data.AesX: "t", data.AesY: "value"}).
			Geom(geom.Line, geom.Params{}).
			Geom(geom.HLine, geom.Params{YIntercept: 0}).
			Title("random-ish walk").
			Labs("t", ""), nil

	case "bar":
		return plot.New(animalRows()).
			Aes(data.Mapping{data.AesX: "animal"}).
			Geom(geom.Bar, geom.Params{}).
			Title("sightings by animal"), nil

	case "histogram":
		binned, err := stat.Bin(walkRows(400), "value", 18)
		if err != nil {
			return nil, err
		}
		return plot.New(binned).
			Aes(data.Mapping{data.AesX: "value", data.AesY: "count"}).
			Geom(geom.Histogram, geom.Params{}).
			Title("walk value distribution"), nil

	case "box":
		summaries := stat.Summary(waveRows(90), "series", "value")
		rows := stat.Records(summaries, "series")
		return plot.New(rows).
			Aes(data.Mapping{
				data.AesX:      "series",
				data.AesYMin:   "ymin",
				data.AesLower:  "lower",
				data.AesMiddle: "middle",
				data.AesUpper:  "upper",
				data.AesYMax:   "ymax",
			}).
			Geom(geom.BoxPlot, geom.Params{}).
			Title("value spread per series"), nil

	case "facets":
		return plot.New(waveRows(60)).
			Aes(data.Mapping{data.AesX: "t", data.AesY: "value"}).
			Geom(geom.Line, geom.Params{}).
			FacetWrap("series", 0, 0).
			Title("one panel per series"), nil
	}
	return nil, fmt.Errorf("unknown demo %q", name)
}

// waveRows produces two interleaved sine series.
func waveRows(n int) data.DataSource {
	rows := make(data.DataSource, 0, 2*n)
	for i := 0; i < n; i++ {
		t := float64(i)
		rows = append(rows,
			data.Record{"t": t, "value": math.Sin(t / 6), "series": "sin"},
			data.Record{"t": t, "value": 0.8 * math.Cos(t/6), "series": "cos"},
		)
	}
	return rows
}

// walkRows produces a deterministic meandering series.
func walkRows(n int) data.DataSource {
	rows := make(data.DataSource, n)
	v := 0.0
	for i := 0; i < n; i++ {
		v += math.Sin(float64(i)*0.7) + 0.3*math.Cos(float64(i)*2.3)
		rows[i] = data.Record{"t": float64(i), "value": v}
	}
	return rows
}

func animalRows() data.DataSource {
	var rows data.DataSource
	for animal, count := range map[string]int{"heron": 7, "otter": 3, "fox": 5, "badger": 2} {
		for i := 0; i < count; i++ {
			rows = append(rows, data.Record{"animal": animal})
		}
	}
	return rows
}
