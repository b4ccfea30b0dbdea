package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/crt-visualization/internal/config"
	"github.com/iburimskiy/crt-visualization/internal/crt"
)

// The side and top views are laid out on a 200x120 unit canvas and scaled
// to their panel.
const (
	canvasW = 200
	canvasH = 120

	// deflection drawn at 40% of the canvas height per screen size
	viewFill = 0.4
)

var (
	viewBackground = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 255}
	gunColor       = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	plateColor     = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}
	screenColor    = color.RGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255}
	beamColor      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	spotColor      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	borderColor    = color.RGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 255}
	gridColor      = color.RGBA{R: 0, G: 60, B: 0, A: 255}
)

const textX = config.ScreenX + config.ScreenSide + 15

// panel is a screen rectangle drawn in canvas units.
type panel struct {
	x, y, w, h float64
}

func (p panel) sx() float64 { return p.w / canvasW }
func (p panel) sy() float64 { return p.h / canvasH }

func (p panel) rect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst,
		float32(p.x+x*p.sx()), float32(p.y+y*p.sy()),
		float32(w*p.sx()), float32(h*p.sy()), c, false)
}

func (p panel) line(dst *ebiten.Image, x0, y0, x1, y1 float64, c color.Color) {
	vector.StrokeLine(dst,
		float32(p.x+x0*p.sx()), float32(p.y+y0*p.sy()),
		float32(p.x+x1*p.sx()), float32(p.y+y1*p.sy()), 1, c, true)
}

func (p panel) dot(dst *ebiten.Image, x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(dst, float32(p.x+x*p.sx()), float32(p.y+y*p.sy()), float32(r), c, true)
}

var (
	sidePanel = panel{x: config.PanelMargin, y: 40, w: config.ViewWidth, h: config.ViewHeight}
	topPanel  = panel{x: config.PanelMargin, y: 70 + config.ViewHeight, w: config.ViewWidth, h: config.ViewHeight}
)

// deflection converts metres on the screen to canvas units. Both views scale
// by the canvas height.
func deflection(m float64) float64 {
	return m * canvasH * viewFill / config.Geometry.ScreenSize
}

func (g *Game) drawSideView(screen *ebiten.Image) {
	p := sidePanel
	cy := canvasH / 2.0

	p.rect(screen, 0, 0, canvasW, canvasH, viewBackground)
	p.rect(screen, 10, cy-8, 20, 16, gunColor)
	// vertical deflection plates above and below the beam
	p.rect(screen, 50, cy-20, 6, 12, plateColor)
	p.rect(screen, 50, cy+8, 6, 12, plateColor)
	// horizontal plates seen edge-on
	p.rect(screen, 80, cy-20, 12, 6, plateColor)
	p.rect(screen, 80, cy+14, 12, 6, plateColor)
	p.rect(screen, canvasW-15, 15, 10, canvasH-30, screenColor)
	ebitenutil.DebugPrintAt(screen, "Side view", int(p.x), int(p.y)-16)

	if !g.hasFrame {
		return
	}
	// screen y grows downwards
	d := -deflection(g.frame.Sample.Y)
	p.line(screen, 30, cy, 50, cy, beamColor)
	p.line(screen, 50, cy, 80, cy+d, beamColor)
	p.line(screen, 80, cy+d, canvasW-15, cy+d, beamColor)
	p.dot(screen, canvasW-10, cy+d, 2, spotColor)
}

func (g *Game) drawTopView(screen *ebiten.Image) {
	p := topPanel
	cx := canvasH / 2.0

	p.rect(screen, 0, 0, canvasW, canvasH, viewBackground)
	p.rect(screen, 10, cx-8, 20, 16, gunColor)
	p.rect(screen, 80, cx-20, 6, 12, plateColor)
	p.rect(screen, 80, cx+8, 6, 12, plateColor)
	p.rect(screen, canvasW-15, 15, 10, canvasH-30, screenColor)
	ebitenutil.DebugPrintAt(screen, "Top view", int(p.x), int(p.y)-16)

	if !g.hasFrame {
		return
	}
	d := deflection(g.frame.Sample.X)
	p.line(screen, 30, cx, 80, cx, beamColor)
	p.line(screen, 80, cx, canvasW-15, cx+d, beamColor)
	p.dot(screen, canvasW-10, cx+d, 2, spotColor)
}

// drawScreen paints the phosphor trail. Points are in config.ScreenPixels
// space; anything beyond the glass is clipped.
func (g *Game) drawScreen(screen *ebiten.Image) {
	x0, y0 := float64(config.ScreenX), float64(config.ScreenY)
	side := float64(config.ScreenSide)
	scale := side / config.ScreenPixels

	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(side), float32(side), color.Black, false)
	vector.StrokeLine(screen, float32(x0+side/2), float32(y0), float32(x0+side/2), float32(y0+side), 1, gridColor, false)
	vector.StrokeLine(screen, float32(x0), float32(y0+side/2), float32(x0+side), float32(y0+side/2), 1, gridColor, false)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(side), float32(side), 2, borderColor, false)
	ebitenutil.DebugPrintAt(screen, "CRT screen", int(x0), int(y0)-16)

	f := g.frame
	for _, pt := range f.Trail {
		intensity := pt.Intensity(f.Now, f.Persistence)
		if intensity <= 0 {
			continue
		}
		x, y := x0+pt.X*scale, y0+pt.Y*scale
		if x < x0 || x > x0+side || y < y0 || y > y0+side {
			continue
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(config.BeamRadius*scale), phosphor(g.hue, intensity), true)
		glow := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(255 * clamp01(intensity*0.5))}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(scale), glow, true)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	p := g.params

	status := "Stopped - Space to start"
	if g.sched.Running() {
		status = "Running - Space to pause"
	}
	status += " | R reset | C clear | M mode | Esc quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 4)

	lines := []string{
		fmt.Sprintf("Mode: %v", p.Mode),
		fmt.Sprintf("Clock: %s", formatClock(g.sched.Driver().Clock())),
		"",
		fmt.Sprintf("Vacc: %.0f V", p.AccelerationVoltage),
		fmt.Sprintf("Persist: %d ms", p.Persistence.Milliseconds()),
	}
	switch p.Mode {
	case crt.Manual:
		lines = append(lines,
			fmt.Sprintf("Vvert: %.0f V", p.VerticalVoltage),
			fmt.Sprintf("Vhor: %.0f V", p.HorizontalVoltage),
		)
	case crt.Lissajous:
		lines = append(lines,
			fmt.Sprintf("fv: %.1f Hz", p.VerticalFreq),
			fmt.Sprintf("fh: %.1f Hz", p.HorizontalFreq),
			fmt.Sprintf("phv: %.0f deg", degrees(p.VerticalPhase)),
			fmt.Sprintf("phh: %.0f deg", degrees(p.HorizontalPhase)),
		)
	case crt.Audio:
		name := g.player.Name()
		if name == "" {
			name = "O to open"
		}
		lines = append(lines, "File:", name)
	}
	if g.hasFrame {
		lines = append(lines, "",
			fmt.Sprintf("x: %.1f mm", g.frame.Sample.X*1000),
			fmt.Sprintf("y: %.1f mm", g.frame.Sample.Y*1000),
			fmt.Sprintf("Points: %d", len(g.frame.Trail)),
		)
	}
	if g.toneOn {
		lines = append(lines, "", "Tone on")
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, textX, config.ScreenY+i*16)
	}

	ebitenutil.DebugPrintAt(screen,
		"A/Z Vacc  [/] persist  arrows plates  F/V G/B freq  U/J I/K phase  1-4 ratio  5-9 phase",
		config.PanelMargin, config.WindowHeight-32)
	ebitenutil.DebugPrintAt(screen,
		"O open audio  P pause audio  T tone  E export chart  W export wav  Shift x10",
		config.PanelMargin, config.WindowHeight-16)
}
