// Package grid realizes letter strokes as a boolean activation mask.
//
// The [Renderer] maps every stroke of the segment vocabulary onto the cells of
// a cols×rows [Mask], one cell of thickness. The mask decides which positions
// of the placement grid receive a glyph tile.
package grid

import "strings"

// Mask is a cols×rows matrix of activation flags indexed by (col, row).
type Mask struct {
	cols, rows int
	cells      []bool
}

// NewMask returns an all-false mask. Negative dimensions are treated as 0.
func NewMask(cols, rows int) *Mask {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Mask{cols: cols, rows: rows, cells: make([]bool, cols*rows)}
}

// Cols returns the number of columns.
func (m *Mask) Cols() int { return m.cols }

// Rows returns the number of rows.
func (m *Mask) Rows() int { return m.rows }

// At reports whether (col, row) is active. Out-of-range cells are inactive.
func (m *Mask) At(col, row int) bool {
	if !m.in(col, row) {
		return false
	}
	return m.cells[row*m.cols+col]
}

// Set assigns (col, row). Out-of-range cells are ignored.
func (m *Mask) Set(col, row int, v bool) {
	if m.in(col, row) {
		m.cells[row*m.cols+col] = v
	}
}

func (m *Mask) in(col, row int) bool {
	return col >= 0 && col < m.cols && row >= 0 && row < m.rows
}

// Count returns the number of active cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.cells {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether m and o have the same shape and flags.
func (m *Mask) Equal(o *Mask) bool {
	if m.cols != o.cols || m.rows != o.rows {
		return false
	}
	for i, v := range m.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	return &Mask{cols: m.cols, rows: m.rows, cells: append([]bool(nil), m.cells...)}
}

// Each calls fn for every active cell in row-major order.
func (m *Mask) Each(fn func(col, row int)) {
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if m.cells[row*m.cols+col] {
				fn(col, row)
			}
		}
	}
}

func (m *Mask) fill(v bool) {
	for i := range m.cells {
		m.cells[i] = v
	}
}

// Format renders the mask as text, one line per row, using on and off for
// active and inactive cells.
func (m *Mask) Format(on, off string) string {
	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if m.At(col, row) {
				b.WriteString(on)
			} else {
				b.WriteString(off)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the mask with '#' and '.'.
func (m *Mask) String() string { return m.Format("#", ".") }
