package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/crt-visualization/internal/crt"
)

// Tone plays the Lissajous plate signals as a stereo signal: the
// horizontal signal on the left channel and the vertical one on the right,
// each frequency multiplied by Pitch. Fed into a real oscilloscope in XY mode
// it draws the same figure as the simulated screen.
type Tone struct {
	Pitch float64

	rate   beep.SampleRate
	mu     sync.Mutex
	params crt.DriveParameters

	// accumulated phase per channel, radians
	left, right float64
}

func NewTone(rate beep.SampleRate, pitch float64, p crt.DriveParameters) *Tone {
	return &Tone{Pitch: pitch, rate: rate, params: p}
}

// SetParams replaces the frequencies and phases used from the next sample
// on. Phase is accumulated, so frequency changes do not click.
func (t *Tone) SetParams(p crt.DriveParameters) {
	t.mu.Lock()
	t.params = p
	t.mu.Unlock()
}

func (t *Tone) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	p := t.params
	t.mu.Unlock()

	dt := 1 / float64(t.rate)
	stepL := 2 * math.Pi * p.HorizontalFreq * t.Pitch * dt
	stepR := 2 * math.Pi * p.VerticalFreq * t.Pitch * dt

	for i := range samples {
		samples[i][0] = crt.SignalHeadroom * math.Sin(t.left+p.HorizontalPhase)
		samples[i][1] = crt.SignalHeadroom * math.Sin(t.right+p.VerticalPhase)
		t.left = math.Mod(t.left+stepL, 2*math.Pi)
		t.right = math.Mod(t.right+stepR, 2*math.Pi)
	}
	return len(samples), true
}

func (t *Tone) Err() error { return nil }

// Format is the beep format of the tone stream.
func (t *Tone) Format() beep.Format {
	return beep.Format{SampleRate: t.rate, NumChannels: 2, Precision: 2}
}
