package throwsim

// DrawOp is one recorded submission: exactly one of Batch or Text is set.
type DrawOp struct {
	Batch *Batch
	Text  *TextDraw
}

// Frame is everything submitted between a Clear and the following Present.
type Frame struct {
	Background Color
	Ops        []DrawOp
}

// Batches returns the frame's batches in submission order.
func (f *Frame) Batches() []Batch {
	var out []Batch
	for _, op := range f.Ops {
		if op.Batch != nil {
			out = append(out, *op.Batch)
		}
	}
	return out
}

// Texts returns the frame's text draws in submission order.
func (f *Frame) Texts() []TextDraw {
	var out []TextDraw
	for _, op := range f.Ops {
		if op.Text != nil {
			out = append(out, *op.Text)
		}
	}
	return out
}

// Recorder is a headless Surface that keeps every submission in memory.
// It backs the headless demo mode and the test suite.
type Recorder struct {
	// MaxFrames closes the recorder after that many presents. Zero means
	// no limit.
	MaxFrames int
	// KeepFrames bounds how many presented frames are retained, oldest
	// dropped first. Zero keeps all of them.
	KeepFrames int

	frames    []Frame
	current   Frame
	presented int
	closed    bool
	labels    []string
}

// NewRecorder returns an open recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear starts a new frame.
func (r *Recorder) Clear(c Color) {
	r.current = Frame{Background: c}
}

// DrawBatch records a copy of b.
func (r *Recorder) DrawBatch(b Batch) {
	cp := Batch{Primitive: b.Primitive, Vertices: append([]Vertex(nil), b.Vertices...)}
	r.current.Ops = append(r.current.Ops, DrawOp{Batch: &cp})
}

// DrawText records t.
func (r *Recorder) DrawText(t TextDraw) {
	r.current.Ops = append(r.current.Ops, DrawOp{Text: &t})
}

// Present stores the current frame.
func (r *Recorder) Present() {
	r.frames = append(r.frames, r.current)
	if r.KeepFrames > 0 && len(r.frames) > r.KeepFrames {
		r.frames = append(r.frames[:0], r.frames[len(r.frames)-r.KeepFrames:]...)
	}
	r.current = Frame{}
	r.presented++
	if r.MaxFrames > 0 && r.presented >= r.MaxFrames {
		r.closed = true
	}
}

// IsOpen reports whether Close has been called or MaxFrames reached.
func (r *Recorder) IsOpen() bool { return !r.closed }

// Close closes the recorder.
func (r *Recorder) Close() { r.closed = true }

// Frames returns the retained presented frames, oldest first.
func (r *Recorder) Frames() []Frame { return r.frames }

// Presented returns how many frames have been presented in total.
func (r *Recorder) Presented() int { return r.presented }

// Last returns the most recently presented frame, or nil.
func (r *Recorder) Last() *Frame {
	if len(r.frames) == 0 {
		return nil
	}
	return &r.frames[len(r.frames)-1]
}

// Pending returns the frame being built since the last Clear.
func (r *Recorder) Pending() *Frame { return &r.current }

// Screenshot records label; there is no image to capture.
func (r *Recorder) Screenshot(label string) {
	r.labels = append(r.labels, label)
}

// Screenshots returns every label passed to Screenshot.
func (r *Recorder) Screenshots() []string { return r.labels }

// recordedFont is the Font handed out by Recorder.LoadFont.
type recordedFont struct {
	size int
}

func (f recordedFont) LineHeight(size uint) float64 { return float64(size) * 1.2 }

// LoadFont accepts any data and returns a metrics-only font.
func (r *Recorder) LoadFont(data []byte) (Font, error) {
	return recordedFont{size: len(data)}, nil
}
