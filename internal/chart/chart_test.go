package chart

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestMultipleTicker(t *testing.T) {
	ticker := MultipleTicker{Step: 3}
	ticks := ticker.Ticks(0, 8)

	var values []float64
	for _, tk := range ticks {
		values = append(values, tk.Value)
	}
	assert.Equal(t, []float64{0, 3, 6}, values)
	assert.Equal(t, "3", ticks[1].Label)
}

func TestMultipleTicker_Labels(t *testing.T) {
	ticker := MultipleTicker{Step: 1.2, Label: CategoryLabel([]string{"A", "B", "C", "D", "E", "F"})}
	ticks := ticker.Ticks(-0.5, 5.5)

	require.Len(t, ticks, 5)
	assert.Equal(t, "A", ticks[0].Label)
	assert.Equal(t, "", ticks[1].Label, "1.2 is between categories")
	assert.InDelta(t, 4.8, ticks[4].Value, 1e-9)
}

func TestMultipleTicker_FallsBackOnBadStep(t *testing.T) {
	ticks := MultipleTicker{Step: 0}.Ticks(0, 10)
	assert.NotEmpty(t, ticks)
}

func TestCategoryLabel(t *testing.T) {
	label := CategoryLabel([]string{"Africa", "Asia"})
	assert.Equal(t, "Africa", label(0))
	assert.Equal(t, "Asia", label(1))
	assert.Equal(t, "", label(2))
	assert.Equal(t, "", label(-1))
	assert.Equal(t, "", label(0.5))
}

func TestBars(t *testing.T) {
	bars, err := NewBars(plotter.Values{4, 9, 2}, 1)
	require.NoError(t, err)

	xmin, xmax, ymin, ymax := bars.DataRange()
	assert.Equal(t, -0.5, xmin)
	assert.Equal(t, 2.5, xmax)
	assert.Equal(t, 0.0, ymin)
	assert.Equal(t, 9.0, ymax)
	assert.InDelta(t, 0.7, bars.LineStyle.Width.Points(), 1e-9)

	p := New("bars")
	p.Add(bars)
	img, err := Encode(p, "png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestLines(t *testing.T) {
	p := New("lines")
	err := Lines(p,
		Series{Name: "cases", XYs: plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 3}}},
		Series{Name: "deaths", XYs: plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}}},
	)
	require.NoError(t, err)

	svg, err := Encode(p, "svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestChoropleth(t *testing.T) {
	square := orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	regions := []Region{
		{Name: "a", Value: 0.1, Geometry: square},
		{Name: "b", Value: 0.9, Geometry: orb.MultiPolygon{square, square}},
		{Name: "c", Value: 0.5, Geometry: orb.Point{3, 3}},
	}

	p := New("map")
	var labels []string
	format := func(v float64) string {
		s := fmt.Sprintf("%.2f", v)
		labels = append(labels, s)
		return s
	}
	require.NoError(t, Choropleth(p, regions, format))
	assert.Len(t, labels, 2*legendBins)
	assert.Equal(t, []string{"0.10", "0.26"}, labels[:2])
	assert.True(t, p.Legend.Top)

	img, err := Encode(p, "png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestChoropleth_SingleValue(t *testing.T) {
	square := orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	p := New("flat")
	assert.NoError(t, Choropleth(p, []Region{{Name: "only", Value: 1, Geometry: square}}, func(v float64) string { return "" }))
}

func TestError(t *testing.T) {
	p := Error("Population of Peru", errors.New("unknown country"))
	assert.Equal(t, "Population of Peru", p.Title.Text)

	img, err := Encode(p, "png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(New("x"), "bmp")
	assert.Error(t, err)
}
