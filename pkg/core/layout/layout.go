// Package layout computes the placement grid for glyph tiles.
//
// # Overview
//
// Tiles of a fixed size are spread evenly over a display, one axis at a time.
// The first tile sits at the canvas edge and the last tile ends exactly at the
// far edge; the remaining space is shared between tiles as spacing:
//
//	spacing = (D - N*S) / (N - 1)
//	tile i  = [i*(S+spacing), i*(S+spacing) + S]
//
// The Cartesian product of the two axes yields a [Grid] of non-overlapping
// rectangles, monotonically increasing along each axis.
//
// # Fit
//
// If N*S > D the spacing would be negative and tiles would overlap. This is a
// configuration error, reported by [Axis] and [NewGrid] with code
// INVALID_LAYOUT, never corrected silently.
package layout

import (
	"image"
	"math"

	"github.com/matzehuels/hierletters/pkg/errors"
)

// Axis names used in fit errors.
const (
	AxisHorizontal = "horizontal"
	AxisVertical   = "vertical"
)

// Span is a half-open interval [Start, End) along one axis.
type Span struct {
	Start, End float64
}

// Length returns End - Start.
func (s Span) Length() float64 { return s.End - s.Start }

// Axis returns the offset and spacing for n tiles of size tile inside display.
// Offset is always 0. Spacing is 0 when n == 1.
func Axis(display, tile, n int) (offset, spacing float64, err error) {
	if err := checkAxis("", display, tile, n); err != nil {
		return 0, 0, err
	}
	return axis(display, tile, n)
}

func axis(display, tile, n int) (offset, spacing float64, err error) {
	if n == 1 {
		return 0, 0, nil
	}
	return 0, float64(display-n*tile) / float64(n-1), nil
}

// Spans returns the n tile intervals along one axis.
func Spans(display, tile, n int) ([]Span, error) {
	return spans("", display, tile, n)
}

func spans(name string, display, tile, n int) ([]Span, error) {
	if err := checkAxis(name, display, tile, n); err != nil {
		return nil, err
	}
	offset, spacing, _ := axis(display, tile, n)
	out := make([]Span, n)
	step := float64(tile) + spacing
	for i := range out {
		start := offset + float64(i)*step
		out[i] = Span{Start: start, End: start + float64(tile)}
	}
	return out, nil
}

func checkAxis(name string, display, tile, n int) error {
	on := ""
	if name != "" {
		on = " on " + name + " axis"
	}
	switch {
	case n < 1:
		return errors.New(errors.ErrCodeInvalidLayout, "tile count must be positive%s, got %d", on, n)
	case tile < 1:
		return errors.New(errors.ErrCodeInvalidLayout, "tile size must be positive%s, got %d", on, tile)
	case display < 1:
		return errors.New(errors.ErrCodeInvalidLayout, "display size must be positive%s, got %d", on, display)
	case tile*n > display:
		return errors.New(errors.ErrCodeInvalidLayout,
			"tiles do not fit%s: %d tiles of %d px need %d px, display is %d px",
			on, n, tile, tile*n, display)
	}
	return nil
}

// Rect is a tile rectangle in display coordinates.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Image converts r to pixel coordinates. The origin is floored and the size
// is kept, so floored tiles stay disjoint whenever spacing is non-negative.
func (r Rect) Image() image.Rectangle {
	x := int(math.Floor(r.X0))
	y := int(math.Floor(r.Y0))
	return image.Rect(x, y, x+int(math.Round(r.Width())), y+int(math.Round(r.Height())))
}

// Grid is the placement grid: one rectangle per (column, row).
type Grid struct {
	cols, rows int
	xs, ys     []Span
}

// NewGrid builds the placement grid for counts.X columns and counts.Y rows of
// tile-sized cells inside display. The error names the offending axis.
func NewGrid(display, tile, counts image.Point) (Grid, error) {
	xs, err := spans(AxisHorizontal, display.X, tile.X, counts.X)
	if err != nil {
		return Grid{}, err
	}
	ys, err := spans(AxisVertical, display.Y, tile.Y, counts.Y)
	if err != nil {
		return Grid{}, err
	}
	return Grid{cols: counts.X, rows: counts.Y, xs: xs, ys: ys}, nil
}

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// At returns the rectangle of the cell at (col, row).
func (g Grid) At(col, row int) Rect {
	x, y := g.xs[col], g.ys[row]
	return Rect{X0: x.Start, Y0: y.Start, X1: x.End, Y1: y.End}
}

// Columns returns the horizontal spans.
func (g Grid) Columns() []Span { return append([]Span(nil), g.xs...) }

// RowSpans returns the vertical spans.
func (g Grid) RowSpans() []Span { return append([]Span(nil), g.ys...) }
