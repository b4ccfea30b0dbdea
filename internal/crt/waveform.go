package crt

import "math"

// SignalHeadroom scales synthesized plate signals below MaxVoltage.
const SignalHeadroom = 0.8

// SignalSource supplies the most recent stereo sample, each channel in
// [-1, 1]. Left drives the horizontal plates and right the vertical plates.
type SignalSource interface {
	Latest() [2]float64
}

// WaveformDriver owns the simulation clock and produces the instantaneous
// plate voltages for each tick.
type WaveformDriver struct {
	maxVoltage float64
	clock      float64
	source     SignalSource
}

func NewWaveformDriver(maxVoltage float64) *WaveformDriver {
	return &WaveformDriver{maxVoltage: maxVoltage}
}

// SetSource attaches the signal used in Audio mode. A nil source silences
// the plates in that mode.
func (d *WaveformDriver) SetSource(src SignalSource) {
	d.source = src
}

// Tick advances the clock by dt, unless p is in Manual mode, and returns the
// plate voltages at the new clock.
func (d *WaveformDriver) Tick(p DriveParameters, dt float64) (vVert, vHor float64) {
	if p.Mode != Manual {
		d.clock += dt
	}
	return d.Voltages(p)
}

// Voltages evaluates the plate voltages at the current clock.
func (d *WaveformDriver) Voltages(p DriveParameters) (vVert, vHor float64) {
	amp := d.maxVoltage * SignalHeadroom

	switch p.Mode {
	case Lissajous:
		vVert = amp * math.Sin(2*math.Pi*p.VerticalFreq*d.clock+p.VerticalPhase)
		vHor = amp * math.Sin(2*math.Pi*p.HorizontalFreq*d.clock+p.HorizontalPhase)
	case Audio:
		if d.source == nil {
			return 0, 0
		}
		s := d.source.Latest()
		vHor = amp * clampUnit(s[0])
		vVert = amp * clampUnit(s[1])
	default:
		vVert, vHor = p.VerticalVoltage, p.HorizontalVoltage
	}
	return vVert, vHor
}

// Clock returns the simulation time in seconds.
func (d *WaveformDriver) Clock() float64 {
	return d.clock
}

// Reset zeroes the clock. Mode, frequencies and phases live in
// DriveParameters and are not affected.
func (d *WaveformDriver) Reset() {
	d.clock = 0
}

func (d *WaveformDriver) restore(clock float64) {
	d.clock = clock
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
