package canvas

import (
	"context"
	"time"

	"github.com/cellplot/cellplot/pkg/observability"
)

// RedrawThreshold is the fraction of changed cells above which patching a
// previous frame costs more than redrawing it.
const RedrawThreshold = 0.5

// CellChange records a single changed cell: its position and new content.
type CellChange struct {
	X, Y int
	Cell Cell
}

// RegionChange is a run of changed cells merged into a rectangle. Merging
// is row-local: a region never spans more than one row.
type RegionChange struct {
	Rect  Rect
	Cells []Cell // new contents, left to right
}

// DiffResult is the outcome of comparing two same-sized frames.
type DiffResult struct {
	// HasChanges reports whether any cell differs.
	HasChanges bool

	// FullRender is set when no incremental patch is possible: the first
	// diff after construction or reset, or a frame size mismatch.
	FullRender bool

	// ChangedCells and TotalCells describe the change volume.
	ChangedCells int
	TotalCells   int

	// ChangePercent is ChangedCells / TotalCells in [0, 1].
	ChangePercent float64

	// CellChanges lists every changed cell in row-major order.
	CellChanges []CellChange

	// RegionChanges holds the row-local rectangle merge of CellChanges.
	// Populated only when the differ was built WithRegions.
	RegionChanges []RegionChange

	// Patch is the minimal escape sequence repainting only the changed
	// cells. Empty when FullRender is set.
	Patch string
}

// Differ computes incremental updates between successive frames of one
// redraw stream. It owns exactly one cached previous frame and must not be
// shared between concurrent streams; each stream gets its own Differ.
type Differ struct {
	prev      *Canvas
	tolerance uint8
	mode      ColorMode
	regions   bool
	window    *Rect
}

// DifferOption configures a Differ.
type DifferOption func(*Differ)

// WithTolerance sets the per-channel color tolerance below which two cells
// count as equal. Default 0 (exact comparison).
func WithTolerance(tol uint8) DifferOption {
	return func(d *Differ) { d.tolerance = tol }
}

// WithColorMode sets the color mode used when rendering patch escapes.
// Default truecolor.
func WithColorMode(mode ColorMode) DifferOption {
	return func(d *Differ) { d.mode = mode }
}

// WithRegions enables row-local region merging in diff results.
func WithRegions() DifferOption {
	return func(d *Differ) { d.regions = true }
}

// WithWindow restricts comparison to a sub-rectangle of the frame. Cells
// outside the window are treated as unchanged.
func WithWindow(r Rect) DifferOption {
	return func(d *Differ) { d.window = &r }
}

// NewDiffer creates a differ in the empty state (no cached frame).
func NewDiffer(opts ...DifferOption) *Differ {
	d := &Differ{mode: ColorTrueColor}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Primed reports whether the differ holds a cached previous frame.
func (d *Differ) Primed() bool {
	return d.prev != nil
}

// Reset clears the cached frame, returning the differ to the empty state.
func (d *Differ) Reset() {
	d.prev = nil
	observability.Diff().OnReset(context.Background())
}

// Diff compares frame against the cached previous frame and caches a clone
// of frame for the next call.
//
// In the empty state the whole grid is reported changed and FullRender is
// set. A size mismatch against the cached frame likewise forces FullRender.
// Otherwise cells are compared one by one under the configured tolerance
// and window, and the result carries cell changes, optional region
// changes, and the escape patch.
func (d *Differ) Diff(frame *Canvas) *DiffResult {
	start := time.Now()
	res := d.diff(frame)
	d.prev = frame.Clone()
	observability.Diff().OnDiff(context.Background(), res.ChangedCells, res.TotalCells, time.Since(start))
	return res
}

func (d *Differ) diff(frame *Canvas) *DiffResult {
	w, h := frame.Size()
	total := w * h

	if d.prev == nil {
		return &DiffResult{
			HasChanges:    true,
			FullRender:    true,
			ChangedCells:  total,
			TotalCells:    total,
			ChangePercent: 1,
		}
	}
	if pw, ph := d.prev.Size(); pw != w || ph != h {
		return &DiffResult{
			HasChanges:    true,
			FullRender:    true,
			ChangedCells:  total,
			TotalCells:    total,
			ChangePercent: 1,
		}
	}

	window := Rect{X: 0, Y: 0, W: w, H: h}
	if d.window != nil {
		window = d.window.Intersect(frame)
	}

	var changes []CellChange
	for y := window.Y; y < window.Bottom(); y++ {
		for x := window.X; x < window.Right(); x++ {
			cur := frame.Get(x, y)
			if !cur.EqualTolerant(d.prev.Get(x, y), d.tolerance) {
				changes = append(changes, CellChange{X: x, Y: y, Cell: cur})
			}
		}
	}

	res := &DiffResult{
		HasChanges:   len(changes) > 0,
		ChangedCells: len(changes),
		TotalCells:   total,
		CellChanges:  changes,
	}
	if total > 0 {
		res.ChangePercent = float64(len(changes)) / float64(total)
	}
	if d.regions {
		res.RegionChanges = mergeRegions(changes)
	}
	if len(changes) > 0 {
		res.Patch = renderPatch(changes, d.mode)
	}
	return res
}

// mergeRegions merges horizontally adjacent changes on the same row into
// rectangles. Merging never crosses rows.
func mergeRegions(changes []CellChange) []RegionChange {
	var regions []RegionChange
	for _, ch := range changes {
		if n := len(regions); n > 0 {
			last := &regions[n-1]
			if last.Rect.Y == ch.Y && last.Rect.Right() == ch.X {
				last.Rect.W++
				last.Cells = append(last.Cells, ch.Cell)
				continue
			}
		}
		regions = append(regions, RegionChange{
			Rect:  Rect{X: ch.X, Y: ch.Y, W: 1, H: 1},
			Cells: []Cell{ch.Cell},
		})
	}
	return regions
}

// FramesDiffer answers whether two frames differ at all, without building
// a full diff. Different sizes always differ.
func FramesDiffer(a, b *Canvas) bool {
	if a == nil || b == nil {
		return a != b
	}
	return !a.Equal(b)
}

// Patch decides between patching and redrawing. Given the text currently
// on screen and a diff result it returns:
//
//   - (current, false) when there are no changes
//   - (patch, false) when changed cells are at most RedrawThreshold of the
//     total
//   - ("", true) when a full redraw is cheaper, or when the result demands
//     a full render
func Patch(current string, d *DiffResult) (string, bool) {
	if !d.HasChanges {
		return current, false
	}
	if d.FullRender || d.ChangePercent > RedrawThreshold {
		return "", true
	}
	return d.Patch, false
}
