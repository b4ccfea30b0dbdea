package crt

import (
	"math"
	"testing"
)

type fixedSource [2]float64

func (s fixedSource) Latest() [2]float64 { return s }

func lissajousParams() DriveParameters {
	return DriveParameters{
		AccelerationVoltage: 2000,
		Mode:                Lissajous,
		VerticalFreq:        1,
		HorizontalFreq:      1,
	}
}

func TestWaveformDriverManualPassThrough(t *testing.T) {
	d := NewWaveformDriver(1000)
	p := DriveParameters{Mode: Manual, VerticalVoltage: 120, HorizontalVoltage: -340}

	for i := 0; i < 5; i++ {
		vv, vh := d.Tick(p, 0.05)
		if vv != 120 || vh != -340 {
			t.Errorf("Expected (120, -340), got (%v, %v)", vv, vh)
		}
	}
	if d.Clock() != 0 {
		t.Errorf("Expected clock to stay at 0 in manual mode, got %v", d.Clock())
	}
}

func TestWaveformDriverLissajousQuarterPeriod(t *testing.T) {
	d := NewWaveformDriver(1000)
	p := lissajousParams()

	vv, vh := d.Voltages(p)
	if vv != 0 || vh != 0 {
		t.Errorf("Expected zero at clock 0, got (%v, %v)", vv, vh)
	}

	vv, vh = d.Tick(p, 0.25)
	if !almostEqual(vv, 800, 1e-9) || !almostEqual(vh, 800, 1e-9) {
		t.Errorf("Expected peak 800 V at quarter period, got (%v, %v)", vv, vh)
	}
	if d.Clock() != 0.25 {
		t.Errorf("Expected clock 0.25, got %v", d.Clock())
	}
}

func TestWaveformDriverLissajousPhase(t *testing.T) {
	d := NewWaveformDriver(1000)
	p := lissajousParams()
	p.HorizontalPhase = math.Pi / 2

	vv, vh := d.Voltages(p)
	if vv != 0 {
		t.Errorf("Expected vertical 0, got %v", vv)
	}
	if !almostEqual(vh, 800, 1e-9) {
		t.Errorf("Expected horizontal 800 with π/2 phase, got %v", vh)
	}
}

func TestWaveformDriverBounded(t *testing.T) {
	d := NewWaveformDriver(1000)
	p := lissajousParams()
	p.VerticalFreq, p.HorizontalFreq = 2, 3

	for i := 0; i < 1000; i++ {
		vv, vh := d.Tick(p, 0.013)
		if math.Abs(vv) > 800+1e-9 || math.Abs(vh) > 800+1e-9 {
			t.Fatalf("voltage out of headroom at clock %v: (%v, %v)", d.Clock(), vv, vh)
		}
	}
}

func TestWaveformDriverReset(t *testing.T) {
	d := NewWaveformDriver(1000)
	p := lissajousParams()
	d.Tick(p, 0.3)
	d.Tick(p, 0.3)

	d.Reset()
	if d.Clock() != 0 {
		t.Errorf("Expected clock 0 after reset, got %v", d.Clock())
	}
	vv, vh := d.Voltages(p)
	if vv != 0 || vh != 0 {
		t.Errorf("Expected zero voltages after reset, got (%v, %v)", vv, vh)
	}
}

func TestWaveformDriverAudio(t *testing.T) {
	d := NewWaveformDriver(1000)
	p := DriveParameters{Mode: Audio}

	vv, vh := d.Tick(p, 0.05)
	if vv != 0 || vh != 0 {
		t.Errorf("Expected silence without source, got (%v, %v)", vv, vh)
	}

	d.SetSource(fixedSource{0.5, -0.25})
	vv, vh = d.Tick(p, 0.05)
	if vh != 400 || vv != -200 {
		t.Errorf("Expected left->horizontal 400, right->vertical -200, got h=%v v=%v", vh, vv)
	}

	d.SetSource(fixedSource{3, -7})
	vv, vh = d.Voltages(p)
	if vh != 800 || vv != -800 {
		t.Errorf("Expected clamped (800, -800), got h=%v v=%v", vh, vv)
	}

	if !almostEqual(d.Clock(), 0.1, 1e-12) {
		t.Errorf("Expected clock to advance in audio mode, got %v", d.Clock())
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{"manual": Manual, "l": Lissajous, "audio": Audio}
	for text, want := range tests {
		got, err := ParseMode(text)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; expected %v", text, got, err, want)
		}
	}
	if _, err := ParseMode("scope"); err == nil {
		t.Error("Expected error for unknown mode")
	}
	if Audio.Next() != Manual {
		t.Errorf("Expected mode cycle to wrap to manual, got %v", Audio.Next())
	}
}
