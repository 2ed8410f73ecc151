// Package raster realizes letter strokes as pixels on a canvas.
//
// The [Renderer] paints every stroke of the segment vocabulary as a filled
// band inside its bounding box:
//
//   - Edge strokes are bands of stroke thickness along one edge.
//   - Half-edge strokes split the box at y0 + ceil(H/2), the rule the grid
//     renderer uses, so upper and lower halves partition the edge.
//   - Center strokes cover [mid-half-1, mid+half] around the midline, with
//     half = thickness/2.
//   - Diagonals are hexagonal bands through opposite corners whose vertices
//     are offset from the corners by thickness/2 + diagonal offset.
//
// The diagonal bands only approximate the grid renderer's cell diagonals.
package raster

import (
	"image"
	"image/color"

	"github.com/matzehuels/hierletters/pkg/core/render/canvas"
	"github.com/matzehuels/hierletters/pkg/core/segment"
)

// Thickness holds stroke widths in pixels.
type Thickness struct {
	// Horizontal is the height of horizontal strokes (Top, Bottom,
	// HorizontalCenter).
	Horizontal int `json:"horizontal" toml:"horizontal"`

	// Vertical is the width of vertical and diagonal strokes.
	Vertical int `json:"vertical" toml:"vertical"`
}

// Style configures stroke geometry and colors.
type Style struct {
	Thickness      Thickness
	DiagonalOffset float64
	Foreground     color.Color
	Background     color.Color
}

// Renderer paints strokes into a box of a canvas.
type Renderer struct {
	c     canvas.Canvas
	box   image.Rectangle
	style Style
}

// New returns a renderer over the whole canvas.
func New(c canvas.Canvas, style Style) *Renderer {
	return NewInBox(c, c.Bounds(), style)
}

// NewInBox returns a renderer restricted to box.
func NewInBox(c canvas.Canvas, box image.Rectangle, style Style) *Renderer {
	if style.Foreground == nil {
		style.Foreground = color.Black
	}
	if style.Background == nil {
		style.Background = color.White
	}
	return &Renderer{c: c, box: box.Canon(), style: style}
}

// Box returns the bounding box strokes are drawn in.
func (r *Renderer) Box() image.Rectangle { return r.box }

func (r *Renderer) fill(rect image.Rectangle) {
	r.c.FillRect(rect.Intersect(r.box), r.style.Foreground)
}

// split is the first row of the lower half.
func (r *Renderer) split() int { return r.box.Min.Y + (r.box.Dy()+1)/2 }

func (r *Renderer) midY() int { return r.box.Min.Y + r.box.Dy()/2 }

func (r *Renderer) midX() int { return r.box.Min.X + r.box.Dx()/2 }

// band returns the closed interval [mid-half-1, mid+half] as a half-open range.
func band(mid, thickness int) (lo, hi int) {
	half := thickness / 2
	return mid - half - 1, mid + half + 1
}

func (r *Renderer) leftBand(y0, y1 int) image.Rectangle {
	return image.Rect(r.box.Min.X, y0, r.box.Min.X+r.style.Thickness.Vertical, y1)
}

func (r *Renderer) rightBand(y0, y1 int) image.Rectangle {
	return image.Rect(r.box.Max.X-r.style.Thickness.Vertical, y0, r.box.Max.X, y1)
}

func (r *Renderer) Top() {
	b := r.box
	r.fill(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+r.style.Thickness.Horizontal))
}

func (r *Renderer) Bottom() {
	b := r.box
	r.fill(image.Rect(b.Min.X, b.Max.Y-r.style.Thickness.Horizontal, b.Max.X, b.Max.Y))
}

func (r *Renderer) Left()       { r.fill(r.leftBand(r.box.Min.Y, r.box.Max.Y)) }
func (r *Renderer) Right()      { r.fill(r.rightBand(r.box.Min.Y, r.box.Max.Y)) }
func (r *Renderer) UpperLeft()  { r.fill(r.leftBand(r.box.Min.Y, r.split())) }
func (r *Renderer) LowerLeft()  { r.fill(r.leftBand(r.split(), r.box.Max.Y)) }
func (r *Renderer) UpperRight() { r.fill(r.rightBand(r.box.Min.Y, r.split())) }
func (r *Renderer) LowerRight() { r.fill(r.rightBand(r.split(), r.box.Max.Y)) }

func (r *Renderer) HorizontalCenter() {
	lo, hi := band(r.midY(), r.style.Thickness.Horizontal)
	r.fill(image.Rect(r.box.Min.X, lo, r.box.Max.X, hi))
}

func (r *Renderer) VerticalCenter() {
	lo, hi := band(r.midX(), r.style.Thickness.Vertical)
	r.fill(image.Rect(lo, r.box.Min.Y, hi, r.box.Max.Y))
}

func (r *Renderer) LowerVerticalCenter() {
	lo, hi := band(r.midX(), r.style.Thickness.Vertical)
	r.fill(image.Rect(lo, r.midY(), hi, r.box.Max.Y))
}

// offset is the corner offset of diagonal band vertices.
func (r *Renderer) offset() float64 {
	return float64(r.style.Thickness.Vertical/2) + r.style.DiagonalOffset
}

func (r *Renderer) LeftDiagonal() {
	r.c.FillPolygon(descending(r.box, r.offset()), r.style.Foreground)
}

func (r *Renderer) RightDiagonal() {
	r.c.FillPolygon(ascending(r.box, r.offset()), r.style.Foreground)
}

// UpperV draws two arms from the top corners that meet at the box center.
func (r *Renderer) UpperV() {
	b := r.box
	mx, my := r.midX(), r.midY()
	d := r.offset()
	r.c.FillPolygon(descending(image.Rect(b.Min.X, b.Min.Y, mx, my), d), r.style.Foreground)
	r.c.FillPolygon(ascending(image.Rect(mx, b.Min.Y, b.Max.X, my), d), r.style.Foreground)
}

func (r *Renderer) Fill()  { r.c.FillRect(r.box, r.style.Foreground) }
func (r *Renderer) Reset() { r.c.FillRect(r.box, r.style.Background) }

// descending returns the band from the top-left to the bottom-right corner.
func descending(b image.Rectangle, d float64) []canvas.Point {
	if b.Empty() {
		return nil
	}
	x0, y0 := float64(b.Min.X), float64(b.Min.Y)
	x1, y1 := float64(b.Max.X), float64(b.Max.Y)
	return []canvas.Point{
		{X: x0, Y: y0},
		{X: x0 + d, Y: y0},
		{X: x1, Y: y1 - d},
		{X: x1, Y: y1},
		{X: x1 - d, Y: y1},
		{X: x0, Y: y0 + d},
	}
}

// ascending returns the band from the top-right to the bottom-left corner.
func ascending(b image.Rectangle, d float64) []canvas.Point {
	if b.Empty() {
		return nil
	}
	x0, y0 := float64(b.Min.X), float64(b.Min.Y)
	x1, y1 := float64(b.Max.X), float64(b.Max.Y)
	return []canvas.Point{
		{X: x1, Y: y0},
		{X: x1, Y: y0 + d},
		{X: x0 + d, Y: y1},
		{X: x0, Y: y1},
		{X: x0, Y: y1 - d},
		{X: x1 - d, Y: y0},
	}
}

// Ensure Renderer implements segment.Renderer.
var _ segment.Renderer = (*Renderer)(nil)
