package audio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// WriteWAV encodes d worth of s to w as a WAV file.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, format beep.Format, d time.Duration) error {
	n := format.SampleRate.N(d)
	if err := wav.Encode(w, beep.Take(n, s), format); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}

// WriteToneFile writes d of the tone to path.
func WriteToneFile(path string, t *Tone, d time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return WriteWAV(f, t, t.Format(), d)
}
