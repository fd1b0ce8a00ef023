// Package pkg provides the core libraries for cellplot terminal chart rendering.
//
// # Overview
//
// Cellplot turns tabular data into charts drawn on a grid of terminal cells.
// Each chart is a stack of layers: a mapping from data fields to visual
// channels, a geometry that draws marks, and scales that place values on the
// grid. The pkg directory follows the stages of that pipeline:
//
//  1. [data] - Rows, records, and aesthetic mappings
//  2. [scale] - Continuous and discrete scales, axis transforms, color ramps
//  3. [coord] - Coordinate systems (cartesian, flipped, polar, transformed)
//  4. [layout] - Panel splitting and facet grids
//  5. [stat] - Statistical transforms (bin, count, density, summary, rolling)
//  6. [geom] - Geometry renderers (points, lines, bars, boxplots, ...)
//  7. [canvas] - The cell grid, ANSI serialization, and frame diffing
//  8. [plot] - The fluent chart builder tying everything together
//  9. [theme] - TOML themes for colors and default output size
//
// # Architecture
//
// The typical data flow through cellplot:
//
//	Rows + Mapping
//	         ↓
//	    [stat] package (optional transforms)
//	         ↓
//	    [scale] package (infer domains, map to cell ranges)
//	         ↓
//	    [layout] package (split the canvas into panels)
//	         ↓
//	    [geom] package (draw marks into the canvas)
//	         ↓
//	    [canvas] package (serialize to ANSI, diff frames)
//
// # Quick Start
//
// Render a scatter plot to an ANSI string:
//
//	rows := data.DataSource{
//		{"x": 1.0, "y": 2.0},
//		{"x": 2.0, "y": 4.0},
//		{"x": 3.0, "y": 3.0},
//	}
//	out, err := plot.New(rows).
//		Aes(data.Mapping{data.AesX: "x", data.AesY: "y"}).
//		Geom(geom.Point, geom.Params{}).
//		Title("example").
//		Render(context.Background())
//
// For live displays, render to a canvas and feed successive frames through a
// [canvas.Differ] to repaint only the cells that changed.
//
// Supporting packages: [errors] for coded errors, [observability] for render
// and diff hooks, and [buildinfo] for build-time version metadata.
//
// [data]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/data
// [scale]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/scale
// [coord]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/coord
// [layout]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/layout
// [stat]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/stat
// [geom]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/geom
// [canvas]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/canvas
// [plot]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/plot
// [theme]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/theme
// [errors]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/buildinfo
// [canvas.Differ]: https://pkg.go.dev/github.com/cellplot/cellplot/pkg/canvas#Differ
package pkg
