package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/hierletters/pkg/core/render/canvas"
	"github.com/matzehuels/hierletters/pkg/core/segment"
)

var testStyle = Style{
	Thickness:      Thickness{Horizontal: 6, Vertical: 6},
	DiagonalOffset: 1,
	Foreground:     color.Black,
	Background:     color.White,
}

func isFG(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

// foreground returns the set of painted pixels of c.
func foreground(c canvas.Canvas) map[image.Point]bool {
	img := c.Image()
	out := map[image.Point]bool{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isFG(img, x, y) {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func draw(w, h int, segs ...segment.Segment) canvas.Canvas {
	c := canvas.New(w, h, color.White)
	segment.Apply(New(c, testStyle), segs)
	return c
}

// rows returns the set of rows that contain painted pixels in column x.
func rows(c canvas.Canvas, x int) []int {
	img := c.Image()
	var out []int
	for y := 0; y < img.Bounds().Dy(); y++ {
		if isFG(img, x, y) {
			out = append(out, y)
		}
	}
	return out
}

func TestEdgeBands(t *testing.T) {
	tests := []struct {
		name string
		seg  segment.Segment
		want image.Rectangle
	}{
		{"top", segment.Top, image.Rect(0, 0, 28, 6)},
		{"bottom", segment.Bottom, image.Rect(0, 30, 28, 36)},
		{"left", segment.Left, image.Rect(0, 0, 6, 36)},
		{"right", segment.Right, image.Rect(22, 0, 28, 36)},
		{"upper left", segment.UpperLeft, image.Rect(0, 0, 6, 18)},
		{"lower left", segment.LowerLeft, image.Rect(0, 18, 6, 36)},
		{"upper right", segment.UpperRight, image.Rect(22, 0, 28, 18)},
		{"lower right", segment.LowerRight, image.Rect(22, 18, 28, 36)},
		{"horizontal center", segment.HorizontalCenter, image.Rect(0, 14, 28, 22)},
		{"vertical center", segment.VerticalCenter, image.Rect(10, 0, 18, 36)},
		{"lower vertical center", segment.LowerVerticalCenter, image.Rect(10, 18, 18, 36)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := foreground(draw(28, 36, tt.seg))
			for p := range fg {
				if !p.In(tt.want) {
					t.Fatalf("pixel %v painted outside %v", p, tt.want)
				}
			}
			if got, want := len(fg), tt.want.Dx()*tt.want.Dy(); got != want {
				t.Errorf("painted %d pixels, want %d", got, want)
			}
		})
	}
}

func TestCenterBandIsClosedInterval(t *testing.T) {
	c := draw(28, 36, segment.HorizontalCenter)
	got := rows(c, 5)
	// mid = 18, half = 3: [14, 21]
	if len(got) != 8 || got[0] != 14 || got[len(got)-1] != 21 {
		t.Errorf("HorizontalCenter rows = %v, want 14..21", got)
	}
}

func TestHalvesPartitionEdges(t *testing.T) {
	for _, h := range []int{7, 8, 35, 36} {
		upper := foreground(draw(10, h, segment.UpperLeft))
		lower := foreground(draw(10, h, segment.LowerLeft))
		full := foreground(draw(10, h, segment.Left))

		for p := range upper {
			if lower[p] {
				t.Errorf("h=%d: pixel %v in both halves", h, p)
			}
		}
		if len(upper)+len(lower) != len(full) {
			t.Errorf("h=%d: halves cover %d pixels, Left covers %d", h, len(upper)+len(lower), len(full))
		}
	}
}

func TestDiagonals(t *testing.T) {
	left := draw(28, 36, segment.LeftDiagonal).Image()
	if !isFG(left, 14, 18) || !isFG(left, 1, 1) || !isFG(left, 26, 34) {
		t.Error("LeftDiagonal should cover the top-left to bottom-right diagonal")
	}
	if isFG(left, 26, 1) || isFG(left, 1, 34) {
		t.Error("LeftDiagonal should leave the other corners empty")
	}

	right := draw(28, 36, segment.RightDiagonal).Image()
	if !isFG(right, 14, 18) || !isFG(right, 26, 1) || !isFG(right, 1, 34) {
		t.Error("RightDiagonal should cover the top-right to bottom-left diagonal")
	}
	if isFG(right, 1, 1) || isFG(right, 26, 34) {
		t.Error("RightDiagonal should leave the other corners empty")
	}
}

func TestUpperV(t *testing.T) {
	img := draw(28, 36, segment.UpperV).Image()
	if !isFG(img, 1, 1) || !isFG(img, 26, 1) {
		t.Error("UpperV arms should start at the top corners")
	}
	if !isFG(img, 14, 17) {
		t.Error("UpperV arms should meet at the center")
	}
	if isFG(img, 14, 2) {
		t.Error("UpperV should leave the top middle empty")
	}
	for x := 0; x < 28; x++ {
		if isFG(img, x, 30) {
			t.Fatalf("UpperV painted the lower half at (%d,30)", x)
		}
	}
}

func TestFillAndReset(t *testing.T) {
	c := canvas.New(12, 10, color.White)
	r := New(c, testStyle)

	r.Fill()
	if got := len(foreground(c)); got != 120 {
		t.Errorf("after Fill %d pixels painted, want 120", got)
	}
	r.Reset()
	if got := len(foreground(c)); got != 0 {
		t.Errorf("after Reset %d pixels painted, want 0", got)
	}
}

func TestStrokesStayInBox(t *testing.T) {
	c := canvas.New(40, 40, color.White)
	box := image.Rect(10, 10, 30, 30)
	segment.Apply(NewInBox(c, box, testStyle), segment.All()[:14])

	for p := range foreground(c) {
		if !p.In(box) {
			t.Fatalf("pixel %v painted outside box %v", p, box)
		}
	}
}

func TestDegenerateBox(t *testing.T) {
	c := canvas.New(10, 10, color.White)
	segment.Apply(NewInBox(c, image.Rect(5, 5, 5, 5), testStyle), segment.All())

	if got := len(foreground(c)); got != 0 {
		t.Errorf("degenerate box painted %d pixels", got)
	}
}

func TestStrokesIdempotent(t *testing.T) {
	set := segment.Set{segment.Top, segment.LeftDiagonal, segment.HorizontalCenter}

	once := canvas.New(28, 36, color.White)
	segment.Apply(New(once, testStyle), set)
	twice := canvas.New(28, 36, color.White)
	segment.Apply(New(twice, testStyle), set)
	segment.Apply(New(twice, testStyle), set)

	a, b := foreground(once), foreground(twice)
	if len(a) != len(b) {
		t.Fatalf("painting twice changed the glyph: %d vs %d pixels", len(a), len(b))
	}
	for p := range a {
		if !b[p] {
			t.Fatalf("pixel %v differs", p)
		}
	}
}

func TestDefaultColors(t *testing.T) {
	c := canvas.New(4, 4, color.White)
	r := New(c, Style{Thickness: Thickness{Horizontal: 1, Vertical: 1}})
	r.Top()

	if !isFG(c.Image(), 0, 0) {
		t.Error("default foreground should be black")
	}
}
