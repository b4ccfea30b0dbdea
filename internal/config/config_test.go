package config

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/crt-visualization/internal/crt"
)

func TestRangeClamp(t *testing.T) {
	tests := []struct {
		r    Range
		in   float64
		want float64
	}{
		{Acceleration, 100, 500},
		{Acceleration, 9000, 5000},
		{Acceleration, 2049, 2000},
		{Acceleration, 2051, 2100},
		{PlateVoltage, -1234, -1000},
		{PlateVoltage, 14, 10},
		{Persistence, 60, 50},
		{Persistence, 70, 75},
		{Frequency, 0, 0.1},
		{Phase, 7, 6.2},
		{Acceleration, math.NaN(), 500},
	}
	for _, tt := range tests {
		if got := tt.r.Clamp(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%+v.Clamp(%v): expected %v, got %v", tt.r, tt.in, tt.want, got)
		}
	}
}

func TestRangeNudge(t *testing.T) {
	if got := Acceleration.Nudge(2000, 3); got != 2300 {
		t.Errorf("Expected 2300, got %v", got)
	}
	if got := Acceleration.Nudge(600, -5); got != 500 {
		t.Errorf("Expected nudge to stop at the minimum, got %v", got)
	}
	if got := PlateVoltage.Nudge(990, 5); got != 1000 {
		t.Errorf("Expected nudge to stop at the maximum, got %v", got)
	}
}

func TestSanitize(t *testing.T) {
	p := crt.DriveParameters{
		AccelerationVoltage: -5,
		VerticalVoltage:     5000,
		HorizontalVoltage:   -5000,
		VerticalFreq:        9,
		HorizontalFreq:      0,
		Persistence:         time.Hour,
	}
	p = Sanitize(p)

	if p.AccelerationVoltage != 500 {
		t.Errorf("Expected acceleration 500, got %v", p.AccelerationVoltage)
	}
	if p.VerticalVoltage != 1000 || p.HorizontalVoltage != -1000 {
		t.Errorf("Expected plates at ±1000, got %v / %v", p.VerticalVoltage, p.HorizontalVoltage)
	}
	if math.Abs(p.VerticalFreq-5) > 1e-9 || math.Abs(p.HorizontalFreq-0.1) > 1e-9 {
		t.Errorf("Expected frequencies 5 / 0.1, got %v / %v", p.VerticalFreq, p.HorizontalFreq)
	}
	if p.Persistence != time.Second {
		t.Errorf("Expected persistence 1s, got %v", p.Persistence)
	}

	if _, err := crt.ComputeDeflection(p.AccelerationVoltage, p.VerticalVoltage, p.HorizontalVoltage, Geometry); err != nil {
		t.Errorf("Expected sanitized parameters to be accepted by the kernel, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	p := DefaultParameters()

	p = ApplyRatio(p, RatioPresets[3])
	if p.VerticalFreq != 2 || p.HorizontalFreq != 3 {
		t.Errorf("Expected 2:3, got %v:%v", p.VerticalFreq, p.HorizontalFreq)
	}

	p = ApplyPhase(p, PhasePresets[2])
	if p.HorizontalPhase != math.Pi/2 {
		t.Errorf("Expected π/2, got %v", p.HorizontalPhase)
	}
	if p.VerticalPhase != 0 {
		t.Errorf("Expected vertical phase untouched, got %v", p.VerticalPhase)
	}
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	if Sanitize(p) != p {
		t.Errorf("Expected defaults to be inside every range, got %+v", Sanitize(p))
	}
}
