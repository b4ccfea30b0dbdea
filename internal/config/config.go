package config

import (
	"math"
	"time"

	"github.com/iburimskiy/crt-visualization/internal/crt"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Phosphor screen surface the trail is projected onto
	ScreenPixels = 300

	// Simulation seconds added per frame
	SimulationStep = crt.DefaultStep
	FrameRate      = 60

	AudioRingSize = 8192
	// Audible tone is the plate frequency scaled into hearing range
	TonePitch      = 110.0
	ToneSampleRate = 44100

	// Panel layout
	PanelMargin = 20
	ViewWidth   = 420
	ViewHeight  = 200
	ScreenX     = 470
	ScreenY     = 40
	ScreenSide  = 400

	// Beam spot radius in screen pixels
	BeamRadius = 2
)

// Geometry is the modelled tube.
var Geometry = crt.Geometry{
	ScreenSize:                 0.3,
	PlateArea:                  0.01,
	PlateSeparation:            0.02,
	GunToVerticalPlates:        0.1,
	VerticalToHorizontalPlates: 0.05,
	PlatesToScreen:             0.15,
	ElectronCharge:             -1.6e-19,
	ElectronMass:               9.11e-31,
	MaxVoltage:                 1000,
}

// Range is the set of values a control accepts.
type Range struct {
	Min, Max, Step float64
}

// Clamp bounds v to the range and snaps it to the nearest step from Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	v = math.Max(r.Min, math.Min(r.Max, v))
	v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	// Max may sit off the step grid
	if v > r.Max+1e-9 {
		v -= r.Step
	}
	return math.Min(r.Max, v)
}

// Nudge moves v by n steps and clamps the result.
func (r Range) Nudge(v float64, n int) float64 {
	return r.Clamp(v + float64(n)*r.Step)
}

var (
	Acceleration = Range{Min: 500, Max: 5000, Step: 100}
	PlateVoltage = Range{Min: -Geometry.MaxVoltage, Max: Geometry.MaxVoltage, Step: 10}
	// milliseconds
	Persistence = Range{Min: 50, Max: 1000, Step: 25}
	Frequency   = Range{Min: 0.1, Max: 5, Step: 0.1}
	Phase       = Range{Min: 0, Max: 2 * math.Pi, Step: 0.1}
)

// Ratio sets the vertical and horizontal frequencies together.
type Ratio struct {
	Name       string
	Vertical   float64
	Horizontal float64
}

var RatioPresets = []Ratio{
	{Name: "1:1", Vertical: 1, Horizontal: 1},
	{Name: "1:2", Vertical: 1, Horizontal: 2},
	{Name: "1:3", Vertical: 1, Horizontal: 3},
	{Name: "2:3", Vertical: 2, Horizontal: 3},
}

// PhasePreset sets the horizontal phase.
type PhasePreset struct {
	Name  string
	Value float64
}

var PhasePresets = []PhasePreset{
	{Name: "0", Value: 0},
	{Name: "π/4", Value: math.Pi / 4},
	{Name: "π/2", Value: math.Pi / 2},
	{Name: "3π/4", Value: 3 * math.Pi / 4},
	{Name: "π", Value: math.Pi},
}

// DefaultParameters is the state of the controls at start-up.
func DefaultParameters() crt.DriveParameters {
	return crt.DriveParameters{
		AccelerationVoltage: 2000,
		Mode:                crt.Manual,
		VerticalFreq:        1,
		HorizontalFreq:      1,
		Persistence:         100 * time.Millisecond,
	}
}

// Sanitize brings every control value inside its range. The kernel does not
// coerce its inputs, so parameters from flags pass through here first.
func Sanitize(p crt.DriveParameters) crt.DriveParameters {
	p.AccelerationVoltage = Acceleration.Clamp(p.AccelerationVoltage)
	p.VerticalVoltage = PlateVoltage.Clamp(p.VerticalVoltage)
	p.HorizontalVoltage = PlateVoltage.Clamp(p.HorizontalVoltage)
	p.VerticalFreq = Frequency.Clamp(p.VerticalFreq)
	p.HorizontalFreq = Frequency.Clamp(p.HorizontalFreq)
	p.VerticalPhase = Phase.Clamp(p.VerticalPhase)
	p.HorizontalPhase = Phase.Clamp(p.HorizontalPhase)
	ms := Persistence.Clamp(float64(p.Persistence) / float64(time.Millisecond))
	p.Persistence = time.Duration(ms * float64(time.Millisecond))
	return p
}

// ApplyRatio returns p with the preset frequency pair applied.
func ApplyRatio(p crt.DriveParameters, r Ratio) crt.DriveParameters {
	p.VerticalFreq, p.HorizontalFreq = r.Vertical, r.Horizontal
	return p
}

// ApplyPhase returns p with the preset horizontal phase applied. Preset
// phases are exact and do not snap to the slider step.
func ApplyPhase(p crt.DriveParameters, ph PhasePreset) crt.DriveParameters {
	p.HorizontalPhase = ph.Value
	return p
}
