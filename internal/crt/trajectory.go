package crt

import (
	"errors"
	"fmt"
	"math"
)

// FullBrightnessVoltage is the acceleration voltage at which the beam
// reaches full intensity.
const FullBrightnessVoltage = 5000.0

// ErrInvalidInput is matched by every *InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a kernel input outside its physical domain.
type InvalidInputError struct {
	Name  string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s = %v", e.Name, e.Value)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ElectronSample is the landing position of the beam on the screen in
// metres, relative to the screen centre, and its intensity.
type ElectronSample struct {
	X          float64
	Y          float64
	Brightness float64
}

// ComputeDeflection returns where an electron accelerated through vAcc
// lands after passing the vertical plates at vVert and the horizontal
// plates at vHor. Each stage is either free drift at the axial speed or
// constant transverse acceleration between the plates.
func ComputeDeflection(vAcc, vVert, vHor float64, g Geometry) (ElectronSample, error) {
	if !(vAcc > 0) {
		return ElectronSample{}, &InvalidInputError{Name: "acceleration voltage", Value: vAcc}
	}

	e := math.Abs(g.ElectronCharge)
	m := g.ElectronMass

	// axial speed after the acceleration gap
	v0 := math.Sqrt(2 * e * vAcc / m)

	aVert := e * (vVert / g.PlateSeparation) / m
	aHor := e * (vHor / g.PlateSeparation) / m

	tVertPlates := g.PlateSeparation / v0
	tBetween := g.VerticalToHorizontalPlates / v0
	tHorPlates := g.PlateSeparation / v0
	tToScreen := g.PlatesToScreen / v0

	vy := aVert * tVertPlates
	y := 0.5 * aVert * tVertPlates * tVertPlates
	y += vy * tBetween

	vx := aHor * tHorPlates
	x := 0.5*aHor*tHorPlates*tHorPlates + vx*tToScreen

	// vertical drift continues through and past the horizontal plates
	y += vy * (tHorPlates + tToScreen)

	return ElectronSample{
		X:          x,
		Y:          y,
		Brightness: Brightness(vAcc),
	}, nil
}

// Brightness is the beam intensity for an acceleration voltage, saturating
// at FullBrightnessVoltage.
func Brightness(vAcc float64) float64 {
	return math.Min(vAcc/FullBrightnessVoltage, 1)
}
