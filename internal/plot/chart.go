package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/iburimskiy/crt-visualization/internal/crt"
)

// ErrEmpty is returned when there is nothing to plot.
var ErrEmpty = errors.New("no frames recorded")

const mm = 1000

// Write renders the recorded beam path and plate voltages as an HTML page.
func Write(w io.Writer, r *Recorder, g crt.Geometry) error {
	frames := r.Frames()
	if len(frames) == 0 {
		return ErrEmpty
	}

	page := components.NewPage()
	page.PageTitle = "CRT beam trace"
	page.AddCharts(
		traceChart(frames, g),
		voltageChart(frames, r.First(), g),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func traceChart(frames []crt.Frame, g crt.Geometry) *charts.Scatter {
	half := g.ScreenSize / 2 * mm

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#000000",
			Width:           "600px",
			Height:          "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Screen",
			TitleStyle: &opts.TextStyle{
				Color: "#33ff33",
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x, mm",
			Type: "value",
			Min:  -half,
			Max:  half,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "y, mm",
			Type: "value",
			Min:  -half,
			Max:  half,
		}),
	)

	data := make([]opts.ScatterData, 0, len(frames))
	for _, f := range frames {
		data = append(data, opts.ScatterData{
			Value:      []float64{round3(f.Sample.X * mm), round3(f.Sample.Y * mm)},
			SymbolSize: 3,
		})
	}
	scatter.AddSeries("beam", data)
	return scatter
}

func voltageChart(frames []crt.Frame, first int, g crt.Geometry) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Plate voltages",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "frame",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "V",
			Type: "value",
			Min:  -g.MaxVoltage,
			Max:  g.MaxVoltage,
		}),
	)

	x := make([]int, len(frames))
	vert := make([]opts.LineData, len(frames))
	hor := make([]opts.LineData, len(frames))
	for i, f := range frames {
		x[i] = first + i
		vert[i] = opts.LineData{Value: round3(f.VerticalVoltage)}
		hor[i] = opts.LineData{Value: round3(f.HorizontalVoltage)}
	}
	line.SetXAxis(x)
	line.AddSeries("vertical", vert)
	line.AddSeries("horizontal", hor)
	return line
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// WriteFile renders the chart page to path.
func WriteFile(path string, r *Recorder, g crt.Geometry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return Write(f, r, g)
}
