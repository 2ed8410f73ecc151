package io

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/hierletters/pkg/errors"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	GIF  Format = "gif"
	TIFF Format = "tif"
	BMP  Format = "bmp"
)

var formats = map[string]Format{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
}

var contentTypes = map[Format]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	GIF:  "image/gif",
	TIFF: "image/tiff",
	BMP:  "image/bmp",
}

// Formats returns the canonical format names.
func Formats() []Format { return []Format{PNG, JPEG, GIF, TIFF, BMP} }

// ParseFormat normalizes a format name. A leading dot is ignored.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if f, ok := formats[key]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (want png, jpg, gif, tif or bmp)", name)
}

// FormatFromPath infers the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format: %s has no extension", path)
	}
	return ParseFormat(ext)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (f Format) imaging() (imaging.Format, error) {
	switch f {
	case PNG:
		return imaging.PNG, nil
	case JPEG:
		return imaging.JPEG, nil
	case GIF:
		return imaging.GIF, nil
	case TIFF:
		return imaging.TIFF, nil
	case BMP:
		return imaging.BMP, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", string(f))
}

// Scale enlarges img by an integer factor using nearest-neighbour
// resampling. Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	imf, err := f.imaging()
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, imf); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Bytes returns img encoded in format f.
func Bytes(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img to path in format f, creating parent directories.
func Save(img image.Image, path string, f Format) error {
	data, err := Bytes(img, f)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
