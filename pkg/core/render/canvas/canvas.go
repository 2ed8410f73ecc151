// Package canvas is the raster-drawing collaborator used by the renderers.
//
// The rest of hierletters only depends on the six primitives of [Canvas]:
// create with a background, fill a rectangle, fill a polygon, fill an
// ellipse, paste an image and save. [New] returns the default implementation
// backed by github.com/fogleman/gg. Polygons are rasterized with
// golang.org/x/image/vector and thresholded at half coverage, so strokes are
// binary and repainting a polygon never changes its edge pixels. Files are
// written with github.com/disintegration/imaging, which picks the encoder
// from the extension.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/vector"

	"github.com/matzehuels/hierletters/pkg/errors"
)

// Point is a vertex in canvas coordinates. Pixel (x, y) covers [x, x+1).
type Point struct {
	X, Y float64
}

// Canvas is a mutable raster target.
type Canvas interface {
	// Bounds returns the canvas rectangle, always anchored at (0, 0).
	Bounds() image.Rectangle

	// FillRect paints r. Empty rectangles are no-ops.
	FillRect(r image.Rectangle, c color.Color)

	// FillPolygon paints the closed polygon through pts. Fewer than three
	// points is a no-op.
	FillPolygon(pts []Point, c color.Color)

	// FillEllipse paints the ellipse inscribed in r.
	FillEllipse(r image.Rectangle, c color.Color)

	// Paste copies img into r. r must have the same size as img and lie inside
	// the canvas; otherwise nothing is drawn and an INVALID_PLACEMENT error is
	// returned.
	Paste(img image.Image, r image.Rectangle) error

	// Image returns the current pixels.
	Image() image.Image

	// Save writes the canvas to path; the format follows the extension.
	Save(path string) error
}

// Factory creates a canvas of the given size filled with bg.
type Factory func(width, height int, bg color.Color) Canvas

// GG is the gg-backed Canvas.
type GG struct {
	dc *gg.Context
}

// New creates a width×height canvas filled with bg.
func New(width, height int, bg color.Color) Canvas {
	dc := gg.NewContext(max(width, 0), max(height, 0))
	dc.SetColor(bg)
	dc.Clear()
	return &GG{dc: dc}
}

// Bounds returns the canvas rectangle.
func (g *GG) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.dc.Width(), g.dc.Height())
}

// FillRect paints r.
func (g *GG) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(g.Bounds())
	if r.Empty() {
		return
	}
	g.dc.SetColor(c)
	g.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	g.dc.Fill()
}

// coverageThreshold is the minimum polygon coverage that paints a pixel.
const coverageThreshold = 0x80

// FillPolygon paints every pixel at least half covered by the polygon
// through pts.
func (g *GG) FillPolygon(pts []Point, c color.Color) {
	b := g.Bounds()
	if len(pts) < 3 || b.Empty() {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()

	mask := image.NewAlpha(b)
	z.Draw(mask, b, image.Opaque, image.Point{})
	for i, a := range mask.Pix {
		if a >= coverageThreshold {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}

	dst, ok := g.dc.Image().(draw.Image)
	if !ok {
		return
	}
	draw.DrawMask(dst, b, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// FillEllipse paints the ellipse inscribed in r.
func (g *GG) FillEllipse(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	g.dc.SetColor(c)
	g.dc.DrawEllipse(cx, cy, float64(r.Dx())/2, float64(r.Dy())/2)
	g.dc.Fill()
}

// Paste copies img into r.
func (g *GG) Paste(img image.Image, r image.Rectangle) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidPlacement, "nothing to paste")
	}
	if r.Empty() {
		return errors.New(errors.ErrCodeInvalidPlacement, "empty placement %v", r)
	}
	if size := img.Bounds().Size(); size != r.Size() {
		return errors.New(errors.ErrCodeInvalidPlacement,
			"placement %v is %dx%d, image is %dx%d", r, r.Dx(), r.Dy(), size.X, size.Y)
	}
	if !r.In(g.Bounds()) {
		return errors.New(errors.ErrCodeInvalidPlacement, "placement %v outside canvas %v", r, g.Bounds())
	}
	g.dc.DrawImage(img, r.Min.X-img.Bounds().Min.X, r.Min.Y-img.Bounds().Min.Y)
	return nil
}

// Image returns the underlying image.
func (g *GG) Image() image.Image {
	return g.dc.Image()
}

// Save writes the canvas to path.
func (g *GG) Save(path string) error {
	if err := imaging.Save(g.dc.Image(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "save %s", path)
	}
	return nil
}

// Ensure GG implements Canvas.
var _ Canvas = (*GG)(nil)
