package game

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/crt-visualization/internal/audio"
	"github.com/iburimskiy/crt-visualization/internal/config"
	"github.com/iburimskiy/crt-visualization/internal/crt"
	"github.com/iburimskiy/crt-visualization/internal/plot"
)

// length of the tone written by the WAV export
const wavExportLength = 10 * time.Second

var (
	ratioKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}
	phaseKeys = []ebiten.Key{ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9}
)

// repeating is true on the first frame a key is down and then at a steady
// rate while it is held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 20 && d%4 == 0)
}

// nudge returns +n, -n or 0 for a pair of keys. Shift multiplies by ten.
func nudge(up, down ebiten.Key) int {
	n := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		n = 10
	}
	switch {
	case repeating(up):
		return n
	case repeating(down):
		return -n
	}
	return 0
}

// handleInput applies this frame's key presses and reports whether the user
// asked to quit.
func (g *Game) handleInput() bool {
	justPressed := inpututil.IsKeyJustPressed

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return true
	}

	switch {
	case justPressed(ebiten.KeySpace):
		g.toggleRunning()
	case justPressed(ebiten.KeyR):
		g.reset()
	case justPressed(ebiten.KeyC):
		g.clearScreen()
	case justPressed(ebiten.KeyM):
		g.setMode(g.params.Mode.Next())
	case justPressed(ebiten.KeyO):
		g.openAudio()
	case justPressed(ebiten.KeyP):
		g.out.TogglePause()
	case justPressed(ebiten.KeyT):
		g.toggleTone()
	case justPressed(ebiten.KeyE):
		g.exportTrace()
	case justPressed(ebiten.KeyW):
		g.exportWAV()
	}

	for i, k := range ratioKeys {
		if justPressed(k) {
			g.applyRatio(i)
		}
	}
	for i, k := range phaseKeys {
		if justPressed(k) {
			g.applyPhase(i)
		}
	}

	p := g.params
	if n := nudge(ebiten.KeyA, ebiten.KeyZ); n != 0 {
		p.AccelerationVoltage = config.Acceleration.Nudge(p.AccelerationVoltage, n)
	}
	if n := nudge(ebiten.KeyBracketRight, ebiten.KeyBracketLeft); n != 0 {
		ms := float64(p.Persistence) / float64(time.Millisecond)
		p.Persistence = time.Duration(config.Persistence.Nudge(ms, n) * float64(time.Millisecond))
	}
	if n := nudge(ebiten.KeyArrowUp, ebiten.KeyArrowDown); n != 0 {
		p.VerticalVoltage = config.PlateVoltage.Nudge(p.VerticalVoltage, n)
	}
	if n := nudge(ebiten.KeyArrowRight, ebiten.KeyArrowLeft); n != 0 {
		p.HorizontalVoltage = config.PlateVoltage.Nudge(p.HorizontalVoltage, n)
	}
	if n := nudge(ebiten.KeyF, ebiten.KeyV); n != 0 {
		p.VerticalFreq = config.Frequency.Nudge(p.VerticalFreq, n)
	}
	if n := nudge(ebiten.KeyG, ebiten.KeyB); n != 0 {
		p.HorizontalFreq = config.Frequency.Nudge(p.HorizontalFreq, n)
	}
	if n := nudge(ebiten.KeyU, ebiten.KeyJ); n != 0 {
		p.VerticalPhase = config.Phase.Nudge(p.VerticalPhase, n)
	}
	if n := nudge(ebiten.KeyI, ebiten.KeyK); n != 0 {
		p.HorizontalPhase = config.Phase.Nudge(p.HorizontalPhase, n)
	}
	g.params = p

	return false
}

func (g *Game) toggleRunning() {
	state := g.sched.Toggle()
	log.WithFields(log.Fields{
		"state": state,
		"clock": g.sched.Driver().Clock(),
	}).Info("Simulation toggled")
}

// reset stops the simulation, zeroes the clock and blanks the screen.
func (g *Game) reset() {
	g.sched.Reset()
	g.frame = crt.Frame{}
	g.hasFrame = false
	g.recorder.Reset()
	g.lastErr = nil
	log.Info("Simulation reset")
}

// clearScreen blanks the phosphor only.
func (g *Game) clearScreen() {
	g.sched.ClearScreen()
	g.frame.Trail = nil
	log.Debug("Screen cleared")
}

func (g *Game) setMode(m crt.Mode) {
	g.params.Mode = m
	log.WithField("mode", m).Info("Mode changed")
}

func (g *Game) applyRatio(i int) {
	r := config.RatioPresets[i]
	g.params = config.ApplyRatio(g.params, r)
	log.WithField("ratio", r.Name).Debug("Frequency ratio preset")
}

func (g *Game) applyPhase(i int) {
	ph := config.PhasePresets[i]
	g.params = config.ApplyPhase(g.params, ph)
	log.WithField("phase", ph.Name).Debug("Phase preset")
}

func (g *Game) openAudio() {
	path, err := selectAudioFile()
	if err != nil {
		g.fail("File dialog failed", err)
		return
	}
	if path == "" {
		return
	}

	g.toneOn = false
	if err := g.player.Open(path); err != nil {
		g.fail("Failed to open audio", err)
		return
	}
	g.lastErr = nil
	g.setMode(crt.Audio)
}

// toggleTone starts or stops the audible Lissajous tone. It shares the
// speaker with the audio player.
func (g *Game) toggleTone() {
	if g.toneOn {
		g.out.Stop()
		g.toneOn = false
		log.Info("Tone stopped")
		return
	}

	g.player.Close()
	g.tone.SetParams(g.params)
	if err := g.out.Play(g.tone.Format().SampleRate, g.tone); err != nil {
		g.fail("Failed to start tone", err)
		return
	}
	g.toneOn = true
	log.WithField("pitch", g.tone.Pitch).Info("Tone started")
}

func (g *Game) exportTrace() {
	if len(g.recorder.Frames()) == 0 {
		g.fail("Nothing to export", plot.ErrEmpty)
		return
	}
	path, err := selectSaveFile("Export Trace", "crt-trace.html", "HTML", "*.html")
	if err != nil || path == "" {
		if err != nil {
			g.fail("File dialog failed", err)
		}
		return
	}

	if err := plot.WriteFile(path, g.recorder, config.Geometry); err != nil {
		g.fail("Export failed", err)
		return
	}
	log.WithFields(log.Fields{
		"path":   path,
		"frames": len(g.recorder.Frames()),
	}).Info("Trace exported")
}

func (g *Game) exportWAV() {
	path, err := selectSaveFile("Export Tone", "crt-tone.wav", "WAV", "*.wav")
	if err != nil || path == "" {
		if err != nil {
			g.fail("File dialog failed", err)
		}
		return
	}

	// a fresh tone, the live one may be streaming on the speaker
	t := audio.NewTone(beep.SampleRate(config.ToneSampleRate), config.TonePitch, g.params)
	if err := audio.WriteToneFile(path, t, wavExportLength); err != nil {
		g.fail("Export failed", fmt.Errorf("%s: %w", filepath.Base(path), err))
		return
	}
	log.WithField("path", path).Info("Tone exported")
}
