// Package stat provides the statistical transforms layers apply to their
// data before drawing: binning, tallying, kernel density estimation,
// five-number summaries, and smoothing. Every transform consumes a
// DataSource and produces a new one; input rows are never mutated.
package stat

import (
	"math"
	"sort"

	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
)

// numbers extracts the coercible numeric values of field, skipping rows
// where it is missing or non-numeric.
func numbers(rows data.DataSource, field string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := data.NumberField(r, field); ok {
			out = append(out, v)
		}
	}
	return out
}

// Bin partitions the numeric values of field into count equal-width bins
// over the observed extent. Output rows carry the bin center as field and
// the tally as "count"; empty bins are included so bar layers leave gaps.
func Bin(rows data.DataSource, field string, count int) (data.DataSource, error) {
	if count < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bin count must be positive, got %d", count)
	}
	vals := numbers(rows, field)
	if len(vals) == 0 {
		return data.DataSource{}, nil
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return data.DataSource{{field: lo, "count": float64(len(vals))}}, nil
	}

	width := (hi - lo) / float64(count)
	tallies := make([]int, count)
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= count { // the maximum lands in the last bin
			i = count - 1
		}
		tallies[i]++
	}

	out := make(data.DataSource, count)
	for i, n := range tallies {
		center := lo + (float64(i)+0.5)*width
		out[i] = data.Record{field: center, "count": float64(n)}
	}
	return out, nil
}

// Count tallies rows per distinct stringified value of field, in
// lexicographic level order. Output rows carry field and "count".
func Count(rows data.DataSource, field string) data.DataSource {
	levels := data.DiscreteDomain(rows, field)
	tallies := make(map[string]int, len(levels))
	for _, r := range rows {
		if v, ok := data.StringField(r, field); ok {
			tallies[v]++
		}
	}
	out := make(data.DataSource, len(levels))
	for i, l := range levels {
		out[i] = data.Record{field: l, "count": float64(tallies[l])}
	}
	return out
}

// Density estimates the distribution of field with a gaussian kernel,
// evaluated at points equally spaced positions across the padded extent.
// Output rows carry field and "density". Bandwidth follows Silverman's
// rule of thumb when bw <= 0.
func Density(rows data.DataSource, field string, points int, bw float64) (data.DataSource, error) {
	if points < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "density needs at least 2 evaluation points, got %d", points)
	}
	vals := numbers(rows, field)
	if len(vals) == 0 {
		return data.DataSource{}, nil
	}

	if bw <= 0 {
		bw = silverman(vals)
	}
	if bw <= 0 {
		bw = 1
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bw
	hi += 3 * bw

	out := make(data.DataSource, points)
	norm := 1 / (float64(len(vals)) * bw * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*(hi-lo)/float64(points-1)
		sum := 0.0
		for _, v := range vals {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = data.Record{field: x, "density": sum * norm}
	}
	return out, nil
}

func silverman(vals []float64) float64 {
	n := float64(len(vals))
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= n
	ss := 0.0
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	sd := math.Sqrt(ss / (n - 1))
	return 1.06 * sd * math.Pow(n, -0.2)
}

// FiveNumber is a Tukey summary of one group.
type FiveNumber struct {
	Group                          string
	Min, Lower, Median, Upper, Max float64
	N                              int
}

// Summary computes a five-number summary of value per distinct group
// level, in lexicographic order. Groups with no numeric values are
// omitted. Quartiles use linear interpolation between order statistics.
func Summary(rows data.DataSource, group, value string) []FiveNumber {
	levels := data.DiscreteDomain(rows, group)
	out := make([]FiveNumber, 0, len(levels))
	for _, l := range levels {
		var vals []float64
		for _, r := range rows {
			g, ok := data.StringField(r, group)
			if !ok || g != l {
				continue
			}
			if v, ok := data.NumberField(r, value); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		out = append(out, FiveNumber{
			Group:  l,
			Min:    vals[0],
			Lower:  quantile(vals, 0.25),
			Median: quantile(vals, 0.5),
			Upper:  quantile(vals, 0.75),
			Max:    vals[len(vals)-1],
			N:      len(vals),
		})
	}
	return out
}

// Records converts summaries into rows drawable by a boxplot layer.
func Records(summaries []FiveNumber, group string) data.DataSource {
	out := make(data.DataSource, len(summaries))
	for i, s := range summaries {
		out[i] = data.Record{
			group:    s.Group,
			"ymin":   s.Min,
			"lower":  s.Lower,
			"middle": s.Median,
			"upper":  s.Upper,
			"ymax":   s.Max,
		}
	}
	return out
}

// quantile interpolates the q-th quantile of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// Smooth fits a simple linear regression of y on x and evaluates it at
// points positions across the x extent, with a standard-error band.
// Output rows carry x, "y", "ymin", and "ymax".
func Smooth(rows data.DataSource, x, y string, points int) (data.DataSource, error) {
	if points < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "smooth needs at least 2 evaluation points, got %d", points)
	}
	var xs, ys []float64
	for _, r := range rows {
		xv, ok := data.NumberField(r, x)
		if !ok {
			continue
		}
		yv, ok := data.NumberField(r, y)
		if !ok {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	n := float64(len(xs))
	if n < 2 {
		return data.DataSource{}, nil
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i := range xs {
		sxx += (xs[i] - meanX) * (xs[i] - meanX)
		sxy += (xs[i] - meanX) * (ys[i] - meanY)
	}
	slope := 0.0
	if sxx != 0 {
		slope = sxy / sxx
	}
	intercept := meanY - slope*meanX

	// Residual standard error for the confidence band.
	var sse float64
	for i := range xs {
		resid := ys[i] - (intercept + slope*xs[i])
		sse += resid * resid
	}
	se := 0.0
	if n > 2 {
		se = math.Sqrt(sse / (n - 2))
	}

	lo, hi := xs[0], xs[0]
	for _, v := range xs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return data.DataSource{{x: lo, "y": meanY, "ymin": meanY - se, "ymax": meanY + se}}, nil
	}

	out := make(data.DataSource, points)
	for i := 0; i < points; i++ {
		xv := lo + float64(i)*(hi-lo)/float64(points-1)
		fit := intercept + slope*xv
		out[i] = data.Record{x: xv, "y": fit, "ymin": fit - se, "ymax": fit + se}
	}
	return out, nil
}
