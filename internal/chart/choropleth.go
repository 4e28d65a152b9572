package chart

import (
	"fmt"
	"image/color"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Region is one shaded area of a choropleth.
type Region struct {
	Name     string
	Value    float64
	Geometry orb.Geometry
}

const legendBins = 5

// Choropleth shades each region by value on a blue-red scale and adds a
// legend of evenly spaced value bins. Geometries other than polygons and
// multipolygons are ignored.
func Choropleth(p *plot.Plot, regions []Region, format func(float64) string) error {
	if len(regions) == 0 {
		return nil
	}

	lo, hi := regions[0].Value, regions[0].Value
	for _, r := range regions[1:] {
		lo = min(lo, r.Value)
		hi = max(hi, r.Value)
	}
	if hi <= lo {
		hi = lo + 1e-12
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(lo)
	cm.SetMax(hi)

	for _, r := range regions {
		fill, err := cm.At(r.Value)
		if err != nil {
			return fmt.Errorf("colour for %s: %w", r.Name, err)
		}
		for _, rings := range polygons(r.Geometry) {
			poly, err := plotter.NewPolygon(rings...)
			if err != nil {
				return fmt.Errorf("polygon for %s: %w", r.Name, err)
			}
			poly.Color = fill
			poly.LineStyle.Color = color.White
			poly.LineStyle.Width = vg.Points(0.3)
			p.Add(poly)
		}
	}

	return addLegend(p, cm, lo, hi, format)
}

func addLegend(p *plot.Plot, cm palette.ColorMap, lo, hi float64, format func(float64) string) error {
	step := (hi - lo) / legendBins
	for i := 0; i < legendBins; i++ {
		from, to := lo+float64(i)*step, lo+float64(i+1)*step
		fill, err := cm.At((from + to) / 2)
		if err != nil {
			return err
		}
		swatch, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
		if err != nil {
			return err
		}
		swatch.Color = fill
		swatch.LineStyle.Width = 0
		p.Legend.Add(fmt.Sprintf("%s - %s", format(from), format(to)), swatch)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return nil
}

// polygons flattens a geometry into rings per polygon, outer ring first.
func polygons(g orb.Geometry) [][]plotter.XYer {
	switch geom := g.(type) {
	case orb.Polygon:
		return [][]plotter.XYer{ringsOf(geom)}
	case orb.MultiPolygon:
		out := make([][]plotter.XYer, 0, len(geom))
		for _, poly := range geom {
			out = append(out, ringsOf(poly))
		}
		return out
	default:
		return nil
	}
}

func ringsOf(poly orb.Polygon) []plotter.XYer {
	rings := make([]plotter.XYer, 0, len(poly))
	for _, ring := range poly {
		xys := make(plotter.XYs, len(ring))
		for i, pt := range ring {
			xys[i] = plotter.XY{X: pt.X(), Y: pt.Y()}
		}
		rings = append(rings, xys)
	}
	return rings
}
