package game

import (
	"errors"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/crt-visualization/internal/audio"
	"github.com/iburimskiy/crt-visualization/internal/config"
	"github.com/iburimskiy/crt-visualization/internal/crt"
	"github.com/iburimskiy/crt-visualization/internal/plot"
)

// Options configures a new Game.
type Options struct {
	Params crt.DriveParameters
	// Hue of the phosphor in degrees
	Phosphor float64
	// Frames kept for chart export
	Record int
	Start  bool
}

// Game hosts the simulation in an ebiten window. Update ticks the scheduler
// once per frame; Draw paints the side, top and screen views from the last
// frame the scheduler rendered.
type Game struct {
	sched  *crt.Scheduler
	params crt.DriveParameters

	// last rendered frame
	frame    crt.Frame
	hasFrame bool

	// audio
	out    *audio.Output
	player *audio.Player
	tone   *audio.Tone
	toneOn bool

	recorder *plot.Recorder

	hue     float64
	lastErr error
}

func New(opts Options) *Game {
	g := &Game{
		params:   config.Sanitize(opts.Params),
		hue:      opts.Phosphor,
		out:      &audio.Output{},
		recorder: plot.NewRecorder(opts.Record),
	}
	g.player = audio.NewPlayer(g.out, config.AudioRingSize)
	g.tone = audio.NewTone(beep.SampleRate(config.ToneSampleRate), config.TonePitch, g.params)
	g.sched = crt.NewScheduler(
		config.Geometry,
		crt.Projection{Width: config.ScreenPixels, Height: config.ScreenPixels},
		crt.WithStep(config.SimulationStep),
		crt.WithRenderer(g),
		crt.WithSource(g.player),
	)
	if opts.Start {
		g.sched.Start()
	}
	return g
}

// Render implements crt.Renderer.
func (g *Game) Render(f crt.Frame) {
	g.frame = f
	g.hasFrame = true
	g.recorder.Render(f)
}

func (g *Game) Update() error {
	if g.handleInput() {
		return ebiten.Termination
	}

	g.step()
	return nil
}

// step runs one frame of the simulation with the current controls.
func (g *Game) step() {
	if g.toneOn {
		g.tone.SetParams(g.params)
	}

	if !g.sched.Running() {
		return
	}
	if _, err := g.sched.Tick(g.params); err != nil {
		g.sched.Stop()
		g.fail("Tick failed", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawSideView(screen)
	g.drawTopView(screen)
	g.drawScreen(screen)
	g.drawStatus(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close releases the audio device and any open file.
func (g *Game) Close() {
	g.player.Close()
	g.out.Stop()
}

func (g *Game) fail(msg string, err error) {
	if errors.Is(err, crt.ErrInvalidInput) {
		log.WithError(err).Warn(msg)
	} else {
		log.WithError(err).Error(msg)
	}
	g.lastErr = err
}
