package crt

import (
	"fmt"
	"time"
)

// Mode selects where the plate voltages come from.
type Mode uint8

const (
	Manual Mode = iota
	Lissajous
	Audio
)

func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Lissajous:
		return "lissajous"
	case Audio:
		return "audio"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Next returns the mode that follows m, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

func ParseMode(text string) (Mode, error) {
	switch text {
	case "manual", "m":
		return Manual, nil
	case "lissajous", "l":
		return Lissajous, nil
	case "audio", "a":
		return Audio, nil
	default:
		return 0, fmt.Errorf("invalid mode: %q", text)
	}
}

// DriveParameters is the full set of inputs read by the kernel on every
// tick. It is passed by value and never modified by the kernel.
type DriveParameters struct {
	AccelerationVoltage float64
	VerticalVoltage     float64
	HorizontalVoltage   float64

	Mode            Mode
	VerticalFreq    float64
	HorizontalFreq  float64
	VerticalPhase   float64
	HorizontalPhase float64

	Persistence time.Duration
}
