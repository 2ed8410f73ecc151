package segment

// Renderer realizes the stroke vocabulary against a concrete target.
//
// Every method marks its region of the target's bounding box as foreground,
// except Reset which returns the whole target to background. Methods are total:
// a degenerate box yields a no-op stroke.
type Renderer interface {
	Top()
	Bottom()
	Left()
	Right()
	UpperLeft()
	LowerLeft()
	UpperRight()
	LowerRight()
	HorizontalCenter()
	VerticalCenter()
	LowerVerticalCenter()
	LeftDiagonal()
	RightDiagonal()
	UpperV()
	Fill()
	Reset()
}

// Apply invokes the renderer method for every segment of set, in order.
// It is the only place where segment names are bound to renderer methods.
func Apply(r Renderer, set Set) {
	for _, s := range set {
		Draw(r, s)
	}
}

// Draw invokes the renderer method for a single segment.
// Segments outside the vocabulary are ignored.
func Draw(r Renderer, s Segment) {
	switch s {
	case Top:
		r.Top()
	case Bottom:
		r.Bottom()
	case Left:
		r.Left()
	case Right:
		r.Right()
	case UpperLeft:
		r.UpperLeft()
	case LowerLeft:
		r.LowerLeft()
	case UpperRight:
		r.UpperRight()
	case LowerRight:
		r.LowerRight()
	case HorizontalCenter:
		r.HorizontalCenter()
	case VerticalCenter:
		r.VerticalCenter()
	case LowerVerticalCenter:
		r.LowerVerticalCenter()
	case LeftDiagonal:
		r.LeftDiagonal()
	case RightDiagonal:
		r.RightDiagonal()
	case UpperV:
		r.UpperV()
	case Fill:
		r.Fill()
	case Reset:
		r.Reset()
	}
}
