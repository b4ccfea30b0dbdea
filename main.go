package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/crt-visualization/internal/audio"
	"github.com/iburimskiy/crt-visualization/internal/config"
	"github.com/iburimskiy/crt-visualization/internal/crt"
	"github.com/iburimskiy/crt-visualization/internal/game"
	"github.com/iburimskiy/crt-visualization/internal/plot"
)

type options struct {
	params   crt.DriveParameters
	phosphor float64
	record   int
	start    bool

	headless bool
	frames   int
	export   string
	wav      string
	seconds  float64
}

func parseFlags(args []string) (options, error) {
	var (
		o        options
		mode     string
		logLevel string
	)
	p := config.DefaultParameters()

	fs := flag.NewFlagSet("crt", flag.ContinueOnError)
	fs.Float64Var(&p.AccelerationVoltage, "accel", p.AccelerationVoltage, "acceleration voltage (V)")
	fs.Float64Var(&p.VerticalVoltage, "vvert", p.VerticalVoltage, "vertical plate voltage in manual mode (V)")
	fs.Float64Var(&p.HorizontalVoltage, "vhor", p.HorizontalVoltage, "horizontal plate voltage in manual mode (V)")
	fs.StringVar(&mode, "mode", p.Mode.String(), "plate drive: manual, lissajous or audio")
	fs.Float64Var(&p.VerticalFreq, "fv", p.VerticalFreq, "vertical frequency in lissajous mode (Hz)")
	fs.Float64Var(&p.HorizontalFreq, "fh", p.HorizontalFreq, "horizontal frequency in lissajous mode (Hz)")
	fs.Float64Var(&p.VerticalPhase, "pv", p.VerticalPhase, "vertical phase in lissajous mode (rad)")
	fs.Float64Var(&p.HorizontalPhase, "ph", p.HorizontalPhase, "horizontal phase in lissajous mode (rad)")
	fs.DurationVar(&p.Persistence, "persist", p.Persistence, "phosphor persistence")
	fs.Float64Var(&o.phosphor, "phosphor", 120, "phosphor hue in degrees")
	fs.IntVar(&o.record, "record", 3600, "frames kept for chart export")
	fs.BoolVar(&o.start, "start", false, "start the simulation immediately")
	fs.BoolVar(&o.headless, "headless", false, "run without a window")
	fs.IntVar(&o.frames, "frames", 600, "frames to simulate in headless mode")
	fs.StringVar(&o.export, "export", "", "write the trace chart to this HTML file (headless)")
	fs.StringVar(&o.wav, "wav", "", "write the Lissajous tone to this WAV file (headless)")
	fs.Float64Var(&o.seconds, "seconds", 10, "length of the WAV export in seconds")
	fs.StringVar(&logLevel, "log-level", "info", "log level")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return o, fmt.Errorf("failed to parse log level: %w", err)
	}
	log.SetLevel(level)

	p.Mode, err = crt.ParseMode(mode)
	if err != nil {
		return o, err
	}
	o.params = config.Sanitize(p)
	return o, nil
}

// runHeadless steps the simulation frame by frame on a manual clock and
// writes whatever exports were requested.
func runHeadless(o options) error {
	start := time.Now()
	clock := crt.NewManualClock(start)
	rec := plot.NewRecorder(o.record)
	sched := crt.NewScheduler(
		config.Geometry,
		crt.Projection{Width: config.ScreenPixels, Height: config.ScreenPixels},
		crt.WithClock(clock),
		crt.WithStep(config.SimulationStep),
		crt.WithRenderer(rec),
	)

	sched.Start()
	var last crt.Frame
	for i := 0; i < o.frames; i++ {
		f, err := sched.Tick(o.params)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		last = f
		clock.Advance(time.Second / config.FrameRate)
	}
	sched.Stop()

	log.WithFields(log.Fields{
		"frames": o.frames,
		"clock":  sched.Driver().Clock(),
		"points": len(last.Trail),
		"x_mm":   last.Sample.X * 1000,
		"y_mm":   last.Sample.Y * 1000,
		"time":   time.Since(start),
	}).Info("Headless run finished")

	if o.export != "" {
		if err := plot.WriteFile(o.export, rec, config.Geometry); err != nil {
			return err
		}
		log.WithField("path", o.export).Info("Trace exported")
	}
	if o.wav != "" {
		tone := audio.NewTone(beep.SampleRate(config.ToneSampleRate), config.TonePitch, o.params)
		d := time.Duration(o.seconds * float64(time.Second))
		if err := audio.WriteToneFile(o.wav, tone, d); err != nil {
			return err
		}
		log.WithFields(log.Fields{"path": o.wav, "length": d}).Info("Tone exported")
	}
	return nil
}

func runWindow(o options) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("CRT Simulation - Space: start/pause, R: reset, C: clear, M: mode, Esc/Q: quit")

	g := game.New(game.Options{
		Params:   o.params,
		Phosphor: o.phosphor,
		Record:   o.record,
		Start:    o.start,
	})
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	log.WithFields(log.Fields{
		"mode":     o.params.Mode,
		"accel":    o.params.AccelerationVoltage,
		"persist":  o.params.Persistence,
		"headless": o.headless,
	}).Debug("Starting")

	if o.headless {
		err = runHeadless(o)
	} else {
		err = runWindow(o)
	}
	if err != nil {
		log.Fatal(err)
	}
}
