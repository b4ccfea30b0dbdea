package crt

import (
	"errors"
	"fmt"
	"time"
)

// DefaultStep is the simulation time added per tick, in seconds.
const DefaultStep = 0.05

// ErrStopped is returned by Tick while the scheduler is not running.
var ErrStopped = errors.New("scheduler stopped")

type State uint8

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Projection maps physical screen coordinates onto a Width x Height pixel
// surface. The usable area is 80% of the surface and y grows downwards.
type Projection struct {
	Width  float64
	Height float64
}

const projectionFill = 0.8

func (p Projection) Project(s ElectronSample, g Geometry) (x, y float64) {
	x = p.Width/2 + (s.X/g.ScreenSize)*p.Width*projectionFill
	y = p.Height/2 - (s.Y/g.ScreenSize)*p.Height*projectionFill
	return x, y
}

// Frame is everything produced by one tick.
type Frame struct {
	VerticalVoltage   float64
	HorizontalVoltage float64
	Sample            ElectronSample
	Point             ScreenPoint
	Trail             []ScreenPoint
	Now               time.Time
	Persistence       time.Duration
	Clock             float64
}

// Renderer consumes the output of every tick.
type Renderer interface {
	Render(f Frame)
}

// Scheduler runs one pass of the simulation pipeline per Tick while running.
// It is not safe for concurrent use; the host calls it from a single frame
// callback.
type Scheduler struct {
	geometry   Geometry
	projection Projection
	step       float64

	driver   *WaveformDriver
	buffer   *PersistenceBuffer
	clock    Clock
	renderer Renderer

	state State
}

type Option func(*Scheduler)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithStep sets the simulation time added per tick.
func WithStep(step float64) Option {
	return func(s *Scheduler) { s.step = step }
}

func WithRenderer(r Renderer) Option {
	return func(s *Scheduler) { s.renderer = r }
}

func WithSource(src SignalSource) Option {
	return func(s *Scheduler) { s.driver.SetSource(src) }
}

func NewScheduler(g Geometry, proj Projection, opts ...Option) *Scheduler {
	s := &Scheduler{
		geometry:   g,
		projection: proj,
		step:       DefaultStep,
		driver:     NewWaveformDriver(g.MaxVoltage),
		buffer:     NewPersistenceBuffer(),
		clock:      SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Start() {
	s.state = Running
}

func (s *Scheduler) Stop() {
	s.state = Stopped
}

// Pause is Stop under the name used by the start/pause control. The trail is
// kept.
func (s *Scheduler) Pause() {
	s.Stop()
}

// Toggle flips between Running and Stopped and returns the new state.
func (s *Scheduler) Toggle() State {
	if s.state == Running {
		s.Stop()
	} else {
		s.Start()
	}
	return s.state
}

// Reset stops the scheduler, zeroes the simulation clock and empties the
// trail.
func (s *Scheduler) Reset() {
	s.state = Stopped
	s.driver.Reset()
	s.buffer.Clear()
}

// ClearScreen empties the trail without touching state or clock.
func (s *Scheduler) ClearScreen() {
	s.buffer.Clear()
}

func (s *Scheduler) State() State {
	return s.state
}

func (s *Scheduler) Running() bool {
	return s.state == Running
}

func (s *Scheduler) Driver() *WaveformDriver {
	return s.driver
}

func (s *Scheduler) Buffer() *PersistenceBuffer {
	return s.buffer
}

func (s *Scheduler) Geometry() Geometry {
	return s.geometry
}

// Tick runs the pipeline once with the parameters as they are now. On error
// the clock and trail are left as they were before the call.
func (s *Scheduler) Tick(p DriveParameters) (Frame, error) {
	if s.state != Running {
		return Frame{}, ErrStopped
	}

	prevClock := s.driver.Clock()
	vVert, vHor := s.driver.Tick(p, s.step)

	sample, err := ComputeDeflection(p.AccelerationVoltage, vVert, vHor, s.geometry)
	if err != nil {
		s.driver.restore(prevClock)
		return Frame{}, fmt.Errorf("tick: %w", err)
	}

	now := s.clock.Now()
	px, py := s.projection.Project(sample, s.geometry)
	point := ScreenPoint{X: px, Y: py, Brightness: sample.Brightness, Created: now}

	s.buffer.Push(point)
	s.buffer.Evict(now, p.Persistence)

	f := Frame{
		VerticalVoltage:   vVert,
		HorizontalVoltage: vHor,
		Sample:            sample,
		Point:             point,
		Trail:             s.buffer.Snapshot(),
		Now:               now,
		Persistence:       p.Persistence,
		Clock:             s.driver.Clock(),
	}
	if s.renderer != nil {
		s.renderer.Render(f)
	}
	return f, nil
}
