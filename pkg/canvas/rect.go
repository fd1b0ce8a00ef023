package canvas

// Rect is an axis-aligned cell rectangle: top-left corner plus size.
type Rect struct {
	X, Y, W, H int
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect clamps r to the canvas bounds of c.
func (r Rect) Intersect(c *Canvas) Rect {
	w, h := c.Size()
	out := r
	if out.X < 0 {
		out.W += out.X
		out.X = 0
	}
	if out.Y < 0 {
		out.H += out.Y
		out.Y = 0
	}
	if out.Right() > w {
		out.W = w - out.X
	}
	if out.Bottom() > h {
		out.H = h - out.Y
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}
