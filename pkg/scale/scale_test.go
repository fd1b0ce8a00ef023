package scale

import (
	"math"
	"testing"

	"github.com/cellplot/cellplot/pkg/canvas"
	"github.com/cellplot/cellplot/pkg/data"
)

const eps = 1e-9

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name  string
		trans Transform
		in    float64
		want  float64
	}{
		{name: "identity", trans: TransformIdentity, in: 3.5, want: 3.5},
		{name: "log10", trans: TransformLog10, in: 100, want: 2},
		{name: "log10 of zero", trans: TransformLog10, in: 0, want: math.Inf(-1)},
		{name: "log10 of negative", trans: TransformLog10, in: -5, want: math.Inf(-1)},
		{name: "sqrt", trans: TransformSqrt, in: 16, want: 4},
		{name: "sqrt of negative", trans: TransformSqrt, in: -4, want: 0},
		{name: "reverse", trans: TransformReverse, in: 2, want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.trans.Apply(tt.in)
			if math.IsInf(tt.want, -1) {
				if !math.IsInf(got, -1) {
					t.Errorf("Apply(%v) = %v, want -Inf", tt.in, got)
				}
				return
			}
			if math.Abs(got-tt.want) > eps {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEndpointsAllTransforms(t *testing.T) {
	// For every transform and a min<max domain, normalize(min)==0 and
	// normalize(max)==1 within floating tolerance.
	transforms := []Transform{TransformIdentity, TransformLog10, TransformSqrt, TransformReverse}
	for _, tr := range transforms {
		s := NewContinuous(data.AesX, 1, 100, tr)
		lo, ok := s.Normalize(1.0)
		if !ok || math.Abs(lo) > eps {
			t.Errorf("%s: Normalize(min) = %v, %v, want 0", tr, lo, ok)
		}
		hi, ok := s.Normalize(100.0)
		if !ok || math.Abs(hi-1) > eps {
			t.Errorf("%s: Normalize(max) = %v, %v, want 1", tr, hi, ok)
		}
	}
}

func TestNormalizeLogDegenerate(t *testing.T) {
	// Domain touching zero under log10: the transformed span is infinite
	// but ordering must survive.
	s := NewContinuous(data.AesX, 0, 100, TransformLog10)

	lo, ok := s.Normalize(0.0)
	if !ok || lo != 0 {
		t.Errorf("Normalize(0) = %v, %v, want 0", lo, ok)
	}
	hi, ok := s.Normalize(100.0)
	if !ok || hi != 1 {
		t.Errorf("Normalize(100) = %v, %v, want 1", hi, ok)
	}
}

func TestNormalizeMissing(t *testing.T) {
	s := NewContinuous(data.AesX, 0, 10, TransformIdentity)
	if _, ok := s.Normalize("not a number"); ok {
		t.Error("continuous scale normalized a string")
	}
	if _, ok := s.Normalize(math.NaN()); ok {
		t.Error("continuous scale normalized NaN")
	}

	d := NewDiscrete(data.AesColor, []string{"a", "b"})
	if _, ok := d.Normalize("c"); ok {
		t.Error("discrete scale normalized an out-of-domain level")
	}
}

func TestDiscreteMapPositions(t *testing.T) {
	// map of the i-th element equals range[0] + i/(N-1)*(range[1]-range[0]).
	levels := []string{"a", "b", "c", "d"}
	s := NewDiscrete(data.AesX, levels).WithRange(10, 40)

	for i, l := range levels {
		want := 10 + float64(i)/3*30
		got, ok := s.Map(l)
		if !ok || math.Abs(got-want) > eps {
			t.Errorf("Map(%q) = %v, %v, want %v", l, got, ok, want)
		}
	}
}

func TestDiscreteSingleLevelMidpoint(t *testing.T) {
	s := NewDiscrete(data.AesX, []string{"only"}).WithRange(0, 100)
	got, ok := s.Map("only")
	if !ok || got != 50 {
		t.Errorf("Map(single level) = %v, %v, want range midpoint 50", got, ok)
	}
}

func TestInvertedVerticalRange(t *testing.T) {
	// Vertical ranges run bottom-to-top: larger values map to smaller rows.
	s := NewContinuous(data.AesY, 0, 10, TransformIdentity).WithRange(9, 0)

	lo, _ := s.Map(0.0)
	hi, _ := s.Map(10.0)
	if lo != 9 || hi != 0 {
		t.Errorf("Map(0)=%v Map(10)=%v, want 9 and 0", lo, hi)
	}
}

func TestDiscreteColorCycles(t *testing.T) {
	levels := make([]string, 12)
	for i := range levels {
		levels[i] = string(rune('a' + i))
	}
	s := NewDiscreteColor(data.AesColor, levels, nil)

	first, _ := s.MapColor("a")
	eleventh, _ := s.MapColor("k") // index 10 wraps to palette[0]
	if first != eleventh {
		t.Errorf("palette did not wrap: %v vs %v", first, eleventh)
	}

	second, _ := s.MapColor("b")
	if first == second {
		t.Error("adjacent levels share a color")
	}
}

func TestContinuousColorInterpolation(t *testing.T) {
	lo := canvas.RGB(0, 0, 0)
	hi := canvas.RGB(200, 100, 50)
	s := NewContinuousColor(data.AesColor, 0, 10, lo, hi)

	start, _ := s.MapColor(0.0)
	end, _ := s.MapColor(10.0)
	if start != lo || end != hi {
		t.Errorf("endpoints: got %v..%v, want %v..%v", start, end, lo, hi)
	}

	mid, _ := s.MapColor(5.0)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 {
		t.Errorf("midpoint = %v, want {100 50 25 255}", mid)
	}

	// Out-of-domain values clamp rather than extrapolate.
	over, _ := s.MapColor(99.0)
	if over != hi {
		t.Errorf("over-domain = %v, want clamped %v", over, hi)
	}
}

func TestMapSizeQuantizes(t *testing.T) {
	s := NewSize(data.AesSize, 0, 100)

	seen := map[float64]bool{}
	for v := 0.0; v <= 100; v += 5 {
		size, ok := s.MapSize(v)
		if !ok {
			t.Fatalf("MapSize(%v) failed", v)
		}
		seen[size] = true
	}
	if len(seen) != 4 {
		t.Errorf("size scale produced %d distinct outputs, want 4 buckets", len(seen))
	}

	min, _ := s.MapSize(0.0)
	max, _ := s.MapSize(100.0)
	if min != 1 || max != 4 {
		t.Errorf("bucket extremes = %v..%v, want 1..4", min, max)
	}
}

func TestMapAlphaRange(t *testing.T) {
	s := NewAlpha(data.AesAlpha, 0, 10)

	lo, _ := s.MapAlpha(0.0)
	hi, _ := s.MapAlpha(10.0)
	if math.Abs(lo-0.1) > eps || math.Abs(hi-1) > eps {
		t.Errorf("alpha extremes = %v..%v, want 0.1..1", lo, hi)
	}
}
