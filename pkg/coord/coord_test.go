package coord

import (
	"math"
	"testing"

	"github.com/cellplot/cellplot/pkg/scale"
)

const eps = 1e-9

func TestCartesianIdentity(t *testing.T) {
	c := NewCartesian()
	x, y := c.Apply(3.2, -7.1)
	if x != 3.2 || y != -7.1 {
		t.Errorf("Apply(3.2, -7.1) = (%v, %v)", x, y)
	}
}

func TestFlipInvolution(t *testing.T) {
	c := NewFlip()
	points := [][2]float64{{0, 0}, {1, 2}, {-3.5, 7}, {1e9, -1e-9}}

	for _, p := range points {
		x1, y1 := c.Apply(p[0], p[1])
		if x1 != p[1] || y1 != p[0] {
			t.Errorf("Apply(%v, %v) = (%v, %v), want swapped", p[0], p[1], x1, y1)
		}
		x2, y2 := c.Apply(x1, y1)
		if x2 != p[0] || y2 != p[1] {
			t.Errorf("flip twice of (%v, %v) = (%v, %v), want original", p[0], p[1], x2, y2)
		}
	}
}

func TestPolarAngles(t *testing.T) {
	c := NewPolar("x")
	for _, r := range []float64{0, 0.5, 1, 10} {
		x, y := c.Apply(0, r)
		if math.Abs(x-r) > eps || math.Abs(y) > eps {
			t.Errorf("polar(0, r=%v) = (%v, %v), want (r, 0)", r, x, y)
		}

		x, y = c.Apply(math.Pi/2, r)
		if math.Abs(x) > eps || math.Abs(y-r) > eps {
			t.Errorf("polar(pi/2, r=%v) = (%v, %v), want (0, r)", r, x, y)
		}
	}
}

func TestPolarThetaY(t *testing.T) {
	c := NewPolar("y")
	x, y := c.Apply(2, math.Pi) // radius 2, angle pi
	if math.Abs(x+2) > eps || math.Abs(y) > eps {
		t.Errorf("polar theta=y (r=2, pi) = (%v, %v), want (-2, 0)", x, y)
	}
}

func TestPolarInvalidThetaDefaultsToX(t *testing.T) {
	c := NewPolar("z")
	if c.Theta != "x" {
		t.Errorf("Theta = %q, want x", c.Theta)
	}
}

func TestTransFallbacks(t *testing.T) {
	c := NewTrans(scale.TransformLog10, scale.TransformSqrt)

	x, y := c.Apply(0, -4)
	if !math.IsInf(x, -1) {
		t.Errorf("log10(0) under trans = %v, want -Inf", x)
	}
	if y != 0 {
		t.Errorf("sqrt(-4) under trans = %v, want 0", y)
	}

	x, y = c.Apply(100, 16)
	if x != 2 || y != 4 {
		t.Errorf("Apply(100, 16) = (%v, %v), want (2, 4)", x, y)
	}
}

func TestTransReverse(t *testing.T) {
	c := NewTrans(scale.TransformReverse, scale.TransformIdentity)
	x, y := c.Apply(5, 5)
	if x != -5 || y != 5 {
		t.Errorf("Apply(5, 5) = (%v, %v), want (-5, 5)", x, y)
	}
}

func TestFixedAspect(t *testing.T) {
	c := NewFixed(2)
	x, y := c.Apply(1, 2)
	if x != 1 || y != 2 {
		t.Error("fixed is not an identity transform")
	}
	if c.AspectRatio() != 2 {
		t.Errorf("AspectRatio() = %v, want 2", c.AspectRatio())
	}
	if NewCartesian().AspectRatio() != 0 {
		t.Error("cartesian reports an aspect ratio")
	}
	if NewFixed(-1).Ratio != 1 {
		t.Error("non-positive ratio not defaulted to 1")
	}
}
