package grid

import "github.com/matzehuels/hierletters/pkg/core/segment"

// Renderer draws strokes into a Mask. Half edges split at ceil(rows/2), the
// same rule the raster renderer uses for pixels; center lines sit on row
// rows/2 and column cols/2.
type Renderer struct {
	mask *Mask
}

// NewRenderer returns a renderer over a fresh cols×rows mask.
func NewRenderer(cols, rows int) *Renderer {
	return &Renderer{mask: NewMask(cols, rows)}
}

// Mask returns the mask being drawn into.
func (r *Renderer) Mask() *Mask { return r.mask }

func (r *Renderer) split() int { return (r.mask.rows + 1) / 2 }

func (r *Renderer) midRow() int { return r.mask.rows / 2 }

func (r *Renderer) midCol() int { return r.mask.cols / 2 }

func (r *Renderer) row(row, from, to int) {
	for col := from; col < to; col++ {
		r.mask.Set(col, row, true)
	}
}

func (r *Renderer) col(col, from, to int) {
	for row := from; row < to; row++ {
		r.mask.Set(col, row, true)
	}
}

// line marks the cells of a digital straight line between two cells,
// stepping along the longer axis.
func (r *Renderer) line(c0, r0, c1, r1 int) {
	dc, dr := c1-c0, r1-r0
	steps := max(abs(dc), abs(dr))
	if steps == 0 {
		r.mask.Set(c0, r0, true)
		return
	}
	for i := 0; i <= steps; i++ {
		col := c0 + roundDiv(i*dc, steps)
		row := r0 + roundDiv(i*dr, steps)
		r.mask.Set(col, row, true)
	}
}

func (r *Renderer) Top()    { r.row(0, 0, r.mask.cols) }
func (r *Renderer) Bottom() { r.row(r.mask.rows-1, 0, r.mask.cols) }
func (r *Renderer) Left()   { r.col(0, 0, r.mask.rows) }
func (r *Renderer) Right()  { r.col(r.mask.cols-1, 0, r.mask.rows) }

func (r *Renderer) UpperLeft()  { r.col(0, 0, r.split()) }
func (r *Renderer) LowerLeft()  { r.col(0, r.split(), r.mask.rows) }
func (r *Renderer) UpperRight() { r.col(r.mask.cols-1, 0, r.split()) }
func (r *Renderer) LowerRight() { r.col(r.mask.cols-1, r.split(), r.mask.rows) }

func (r *Renderer) HorizontalCenter()    { r.row(r.midRow(), 0, r.mask.cols) }
func (r *Renderer) VerticalCenter()      { r.col(r.midCol(), 0, r.mask.rows) }
func (r *Renderer) LowerVerticalCenter() { r.col(r.midCol(), r.midRow(), r.mask.rows) }

func (r *Renderer) LeftDiagonal() {
	if r.empty() {
		return
	}
	r.line(0, 0, r.mask.cols-1, r.mask.rows-1)
}

func (r *Renderer) RightDiagonal() {
	if r.empty() {
		return
	}
	r.line(r.mask.cols-1, 0, 0, r.mask.rows-1)
}

func (r *Renderer) UpperV() {
	if r.empty() {
		return
	}
	r.line(0, 0, r.midCol(), r.midRow())
	r.line(r.mask.cols-1, 0, r.midCol(), r.midRow())
}

func (r *Renderer) Fill()  { r.mask.fill(true) }
func (r *Renderer) Reset() { r.mask.fill(false) }

func (r *Renderer) empty() bool { return r.mask.cols == 0 || r.mask.rows == 0 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// roundDiv returns n/d rounded half away from zero, d > 0.
func roundDiv(n, d int) int {
	if n >= 0 {
		return (2*n + d) / (2 * d)
	}
	return -((-2*n + d) / (2 * d))
}

// Ensure Renderer implements segment.Renderer.
var _ segment.Renderer = (*Renderer)(nil)
