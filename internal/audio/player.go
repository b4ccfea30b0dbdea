package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	log "github.com/sirupsen/logrus"
)

// ErrUnsupported is returned for files that are not wav, mp3 or flac.
var ErrUnsupported = errors.New("unsupported file type")

// Patterns lists the file patterns Open accepts.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Player decodes an audio file and plays it through a Tap whose latest
// sample steers the beam in audio mode.
type Player struct {
	out      *Output
	ringSize int

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *Tap
	path     string
}

func NewPlayer(out *Output, ringSize int) *Player {
	return &Player{out: out, ringSize: ringSize}
}

// Open decodes path and starts playing it, replacing any previous file.
func (p *Player) Open(path string) error {
	f, streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"path":     path,
		"rate":     int(format.SampleRate),
		"channels": format.NumChannels,
	}).Info("Audio file loaded")

	p.Close()

	t := NewTap(streamer, p.ringSize)
	if err := p.out.Play(format.SampleRate, beep.Seq(t, beep.Callback(p.finished))); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}

	p.mu.Lock()
	p.file = f
	p.streamer = streamer
	p.format = format
	p.tap = t
	p.path = path
	p.mu.Unlock()
	return nil
}

// Latest implements crt.SignalSource. Silence when nothing is loaded.
func (p *Player) Latest() [2]float64 {
	p.mu.Lock()
	t := p.tap
	p.mu.Unlock()

	if t == nil {
		return [2]float64{}
	}
	return t.Latest()
}

// Name is the base name of the loaded file, empty when none is loaded.
func (p *Player) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == "" {
		return ""
	}
	return filepath.Base(p.path)
}

// Close stops playback and releases the file.
func (p *Player) Close() {
	p.out.Stop()
	p.release()
}

func (p *Player) finished() {
	log.Debug("Audio file finished")
	p.release()
}

func (p *Player) release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.tap = nil
	p.path = ""
}

func decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		decoder  func(*os.File) (beep.StreamSeekCloser, beep.Format, error)
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, nil, format, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, format, fmt.Errorf("failed to open audio file: %w", err)
	}
	streamer, format, err = decoder(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, format, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}
