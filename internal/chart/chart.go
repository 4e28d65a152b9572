// Package chart builds gonum/plot figures for the dashboard outputs.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size of every rendered output.
const (
	Width  = 8 * vg.Inch
	Height = 8 * vg.Inch
)

// New returns an empty plot with the dashboard title style.
func New(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	return p
}

// Series is one named line.
type Series struct {
	Name string
	XYs  plotter.XYs
}

// Lines draws each series in its own colour. A legend is added when there
// is more than one series.
func Lines(p *plot.Plot, series ...Series) error {
	for i, s := range series {
		line, err := plotter.NewLine(s.XYs)
		if err != nil {
			return fmt.Errorf("line %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		p.Add(line)
		if len(series) > 1 {
			p.Legend.Add(s.Name, line)
		}
	}
	p.Add(plotter.NewGrid())
	return nil
}

// Error returns a blank figure carrying the error message, used when one
// output fails to render.
func Error(title string, err error) *plot.Plot {
	p := New(title)
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels, lerr := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{err.Error()},
	})
	if lerr == nil {
		labels.TextStyle[0].Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
		labels.TextStyle[0].XAlign = draw.XCenter
		p.Add(labels)
	}
	return p
}

// Encode renders p in the given format ("png" or "svg").
func Encode(p *plot.Plot, format string) ([]byte, error) {
	w, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// MultipleTicker places major ticks at every multiple of Step inside the
// axis range. Label returns the text for a tick position.
type MultipleTicker struct {
	Step  float64
	Label func(x float64) string
}

// Ticks implements plot.Ticker.
func (t MultipleTicker) Ticks(min, max float64) []plot.Tick {
	if t.Step <= 0 || math.IsNaN(t.Step) || math.IsInf(t.Step, 0) {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	for x := math.Ceil(min/t.Step) * t.Step; x <= max+t.Step*1e-9; x += t.Step {
		label := fmt.Sprintf("%g", x)
		if t.Label != nil {
			label = t.Label(x)
		}
		ticks = append(ticks, plot.Tick{Value: x, Label: label})
	}
	return ticks
}

// CategoryLabel maps a tick position to the category at that index. Ticks
// that do not fall on a category get no label.
func CategoryLabel(categories []string) func(x float64) string {
	return func(x float64) string {
		i := math.Round(x)
		if math.Abs(x-i) > 1e-9 || i < 0 || int(i) >= len(categories) {
			return ""
		}
		return categories[int(i)]
	}
}
