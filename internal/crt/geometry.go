package crt

// Geometry describes the physical tube. Lengths are in metres, charge in
// coulombs, mass in kilograms and voltage in volts.
type Geometry struct {
	ScreenSize                 float64
	PlateArea                  float64
	PlateSeparation            float64
	GunToVerticalPlates        float64
	VerticalToHorizontalPlates float64
	PlatesToScreen             float64
	ElectronCharge             float64
	ElectronMass               float64
	MaxVoltage                 float64
}
