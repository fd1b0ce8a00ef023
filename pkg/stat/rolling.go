package stat

import (
	"math"

	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
)

// RollingStat names an aggregate applied over a sliding window.
type RollingStat string

const (
	RollingMean   RollingStat = "mean"
	RollingMin    RollingStat = "min"
	RollingMax    RollingStat = "max"
	RollingStdDev RollingStat = "stddev"
)

// Rolling applies the aggregate over a trailing window of the given size
// across the numeric values of field, preserving row order. The first
// window-1 positions aggregate over the shorter prefix. Output rows keep
// the source record's fields plus the aggregate under out.
func Rolling(rows data.DataSource, field, out string, window int, stat RollingStat) (data.DataSource, error) {
	if window < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "window must be positive, got %d", window)
	}

	// Keep only rows with a usable value so window arithmetic stays
	// aligned with what gets drawn.
	kept := make(data.DataSource, 0, len(rows))
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := data.NumberField(r, field); ok {
			kept = append(kept, r)
			vals = append(vals, v)
		}
	}

	result := make(data.DataSource, len(kept))
	for i, r := range kept {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		agg := aggregate(vals[start:i+1], stat)

		row := make(data.Record, len(r)+1)
		for k, v := range r {
			row[k] = v
		}
		row[out] = agg
		result[i] = row
	}
	return result, nil
}

func aggregate(win []float64, stat RollingStat) float64 {
	switch stat {
	case RollingMin:
		m := win[0]
		for _, v := range win[1:] {
			m = math.Min(m, v)
		}
		return m
	case RollingMax:
		m := win[0]
		for _, v := range win[1:] {
			m = math.Max(m, v)
		}
		return m
	case RollingStdDev:
		return math.Sqrt(variance(win))
	default:
		return mean(win)
	}
}

func mean(win []float64) float64 {
	sum := 0.0
	for _, v := range win {
		sum += v
	}
	return sum / float64(len(win))
}

// variance is the population variance of the window.
func variance(win []float64) float64 {
	if len(win) < 2 {
		return 0
	}
	m := mean(win)
	ss := 0.0
	for _, v := range win {
		ss += (v - m) * (v - m)
	}
	return ss / float64(len(win))
}
