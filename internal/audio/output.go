package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	log "github.com/sirupsen/logrus"
)

// Output owns the speaker. Only one stream plays at a time; starting a new
// one replaces the previous.
type Output struct {
	mu       sync.Mutex
	rate     beep.SampleRate
	initDone bool
	ctrl     *beep.Ctrl
}

// Play starts s at the given sample rate, (re)initialising the speaker when
// the rate changes.
func (o *Output) Play(rate beep.SampleRate, s beep.Streamer) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	bufferSize := rate.N(time.Second / 20)
	switch {
	case !o.initDone:
		if err := speaker.Init(rate, bufferSize); err != nil {
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		o.initDone = true
	case o.rate != rate:
		speaker.Clear()
		if err := speaker.Init(rate, bufferSize); err != nil {
			return fmt.Errorf("failed to reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	o.rate = rate

	log.WithFields(log.Fields{
		"rate":   int(rate),
		"buffer": bufferSize,
	}).Debug("Speaker playing")

	o.ctrl = &beep.Ctrl{Streamer: s}
	speaker.Play(o.ctrl)
	return nil
}

// TogglePause pauses or resumes the current stream and reports whether it
// is now paused.
func (o *Output) TogglePause() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctrl == nil {
		return true
	}
	speaker.Lock()
	o.ctrl.Paused = !o.ctrl.Paused
	paused := o.ctrl.Paused
	speaker.Unlock()
	return paused
}

// Stop silences the speaker.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initDone {
		return
	}
	speaker.Clear()
	o.ctrl = nil
}

// Playing reports whether a stream has been started and not stopped.
func (o *Output) Playing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ctrl != nil
}
