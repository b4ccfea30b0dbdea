package plot

import (
	"github.com/iburimskiy/crt-visualization/internal/crt"
)

// Recorder keeps the most recent frames for export. It implements
// crt.Renderer so it can sit directly behind the scheduler.
type Recorder struct {
	max    int
	frames []crt.Frame
	total  int
}

// NewRecorder keeps up to n frames. An n of zero or less keeps none.
func NewRecorder(n int) *Recorder {
	return &Recorder{max: max(n, 0)}
}

func (r *Recorder) Render(f crt.Frame) {
	f.Trail = nil
	r.frames = append(r.frames, f)
	if len(r.frames) > r.max {
		r.frames = r.frames[len(r.frames)-r.max:]
	}
	r.total++
}

// Frames returns the retained frames, oldest first.
func (r *Recorder) Frames() []crt.Frame {
	return r.frames
}

// First is the index of the oldest retained frame since recording began.
func (r *Recorder) First() int {
	return r.total - len(r.frames)
}

func (r *Recorder) Reset() {
	r.frames = nil
	r.total = 0
}
