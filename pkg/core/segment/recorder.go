package segment

// Recorder is a Renderer that logs every call before forwarding it to an
// optional inner renderer. Two recorders fed the same Set produce identical
// logs regardless of what they wrap.
type Recorder struct {
	inner Renderer
	calls []Segment
}

// NewRecorder wraps inner. A nil inner only records.
func NewRecorder(inner Renderer) *Recorder {
	return &Recorder{inner: inner}
}

// Calls returns the recorded segments in call order.
func (r *Recorder) Calls() Set {
	return append(Set(nil), r.calls...)
}

// Clear forgets recorded calls.
func (r *Recorder) Clear() { r.calls = r.calls[:0] }

func (r *Recorder) record(s Segment) {
	r.calls = append(r.calls, s)
	if r.inner != nil {
		Draw(r.inner, s)
	}
}

func (r *Recorder) Top()                 { r.record(Top) }
func (r *Recorder) Bottom()              { r.record(Bottom) }
func (r *Recorder) Left()                { r.record(Left) }
func (r *Recorder) Right()               { r.record(Right) }
func (r *Recorder) UpperLeft()           { r.record(UpperLeft) }
func (r *Recorder) LowerLeft()           { r.record(LowerLeft) }
func (r *Recorder) UpperRight()          { r.record(UpperRight) }
func (r *Recorder) LowerRight()          { r.record(LowerRight) }
func (r *Recorder) HorizontalCenter()    { r.record(HorizontalCenter) }
func (r *Recorder) VerticalCenter()      { r.record(VerticalCenter) }
func (r *Recorder) LowerVerticalCenter() { r.record(LowerVerticalCenter) }
func (r *Recorder) LeftDiagonal()        { r.record(LeftDiagonal) }
func (r *Recorder) RightDiagonal()       { r.record(RightDiagonal) }
func (r *Recorder) UpperV()              { r.record(UpperV) }
func (r *Recorder) Fill()                { r.record(Fill) }
func (r *Recorder) Reset()               { r.record(Reset) }

// Ensure Recorder implements Renderer.
var _ Renderer = (*Recorder)(nil)
