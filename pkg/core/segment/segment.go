// Package segment defines the stroke vocabulary shared by every letter shape.
//
// # Overview
//
// A letter is drawn as an ordered [Set] of named strokes. Each [Segment] is a
// coarse axis-aligned or diagonal region of a bounding box: an edge, a half
// edge, a center line or a diagonal band. The same Set can be realized by any
// [Renderer]: the raster renderer paints pixels, the grid renderer flips cells
// of an activation mask. Both go through [Apply], so a letter's macro shape and
// its micro glyph are always derived from identical stroke sequences.
//
// Strokes are idempotent and commutative: painting the same region twice
// leaves the target unchanged, so the order of a Set only matters for
// reproducibility of call logs.
package segment

import (
	"fmt"
	"strings"
)

// Segment identifies one named stroke.
type Segment uint8

// The stroke vocabulary. Reset is listed for completeness; letter shapes never
// contain it, renderers call it directly to clear their target.
const (
	Top Segment = iota
	Bottom
	Left
	Right
	UpperLeft
	LowerLeft
	UpperRight
	LowerRight
	HorizontalCenter
	VerticalCenter
	LowerVerticalCenter
	LeftDiagonal
	RightDiagonal
	UpperV
	Fill
	Reset
)

var names = [...]string{
	Top:                 "Top",
	Bottom:              "Bottom",
	Left:                "Left",
	Right:               "Right",
	UpperLeft:           "UpperLeft",
	LowerLeft:           "LowerLeft",
	UpperRight:          "UpperRight",
	LowerRight:          "LowerRight",
	HorizontalCenter:    "HorizontalCenter",
	VerticalCenter:      "VerticalCenter",
	LowerVerticalCenter: "LowerVerticalCenter",
	LeftDiagonal:        "LeftDiagonal",
	RightDiagonal:       "RightDiagonal",
	UpperV:              "UpperV",
	Fill:                "Fill",
	Reset:               "Reset",
}

// All returns every segment of the vocabulary in declaration order.
func All() []Segment {
	all := make([]Segment, len(names))
	for i := range names {
		all[i] = Segment(i)
	}
	return all
}

// String returns the segment name.
func (s Segment) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("Segment(%d)", uint8(s))
}

// Valid reports whether s belongs to the vocabulary.
func (s Segment) Valid() bool { return int(s) < len(names) }

// Parse looks up a segment by name, ignoring case.
func Parse(name string) (Segment, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Segment(i), nil
		}
	}
	return 0, fmt.Errorf("unknown segment: %q", name)
}

// Set is an ordered sequence of segments that draws one letter.
type Set []Segment

// Strings returns the segment names in order.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, seg := range s {
		out[i] = seg.String()
	}
	return out
}

// String joins the segment names with commas.
func (s Set) String() string { return strings.Join(s.Strings(), ",") }

// Contains reports whether seg is part of the set.
func (s Set) Contains(seg Segment) bool {
	for _, v := range s {
		if v == seg {
			return true
		}
	}
	return false
}
