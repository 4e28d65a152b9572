package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bars draws one bar per value at x = 0, 1, 2, ... with a width measured
// in data units, so adjacent bars of width 1 touch. plotter.BarChart sizes
// bars in canvas units instead.
type Bars struct {
	Values plotter.Values
	Width  float64
	Color  color.Color
	draw.LineStyle
}

// NewBars returns bars with a white 0.7pt edge.
func NewBars(values plotter.Valuer, width float64) (*Bars, error) {
	vs, err := plotter.CopyValues(values)
	if err != nil {
		return nil, err
	}
	return &Bars{
		Values: vs,
		Width:  width,
		Color:  color.RGBA{R: 70, G: 130, B: 180, A: 255},
		LineStyle: draw.LineStyle{
			Color: color.White,
			Width: vg.Points(0.7),
		},
	}, nil
}

// Plot implements plot.Plotter.
func (b *Bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := b.Width / 2

	for i, v := range b.Values {
		x0, x1 := trX(float64(i)-half), trX(float64(i)+half)
		y0, y1 := trY(0), trY(v)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}

		c.FillPolygon(b.Color, c.ClipPolygonXY(pts))
		c.StrokeLines(b.LineStyle, c.ClipLinesXY(append(pts, pts[0]))...)
	}
}

// DataRange implements plot.DataRanger.
func (b *Bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -b.Width/2, float64(len(b.Values)-1)+b.Width/2
	for _, v := range b.Values {
		ymin = min(ymin, v)
		ymax = max(ymax, v)
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements plot.Thumbnailer.
func (b *Bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.Color, c.ClipPolygonY(pts))
}
