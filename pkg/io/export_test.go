package io

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/hierletters/pkg/errors"
)

func checker() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if (x+y)%2 == 0 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{".jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{"gif", GIF, false},
		{"tiff", TIFF, false},
		{"tif", TIFF, false},
		{"bmp", BMP, false},
		{"svg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want INVALID_FORMAT", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("out/A-E.JPEG"); err != nil || f != JPEG {
		t.Errorf("FormatFromPath = %q, %v", f, err)
	}
	if _, err := FormatFromPath("out/A-E"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("missing extension error = %v", err)
	}
}

func TestContentType(t *testing.T) {
	if got := PNG.ContentType(); got != "image/png" {
		t.Errorf("PNG.ContentType() = %q", got)
	}
	if got := Format("xyz").ContentType(); got != "application/octet-stream" {
		t.Errorf("unknown ContentType() = %q", got)
	}
}

func TestScaleNearestNeighbour(t *testing.T) {
	src := checker()
	got := Scale(src, 3)

	if got.Bounds().Size() != image.Pt(12, 9) {
		t.Fatalf("scaled size = %v", got.Bounds().Size())
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			r1, _, _, _ := got.At(x, y).RGBA()
			r2, _, _, _ := src.At(x/3, y/3).RGBA()
			if r1 != r2 {
				t.Fatalf("pixel (%d,%d) = %d, want source (%d,%d) = %d", x, y, r1, x/3, y/3, r2)
			}
		}
	}

	if Scale(src, 1) != src {
		t.Error("factor 1 should return the image unchanged")
	}
}

func TestEncodeEveryFormat(t *testing.T) {
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, checker(), f); err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			img, err := imaging.Decode(&buf)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if img.Bounds().Size() != image.Pt(4, 3) {
				t.Errorf("decoded size = %v", img.Bounds().Size())
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checker(), "webp"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode error = %v, want INVALID_FORMAT", err)
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "A-E.png")
	if err := Save(checker(), path, PNG); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r != 0 {
		t.Error("saved pixel (0,0) should be black")
	}
}
