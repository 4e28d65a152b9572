package view

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"popdash/internal/aggregate"
	"popdash/internal/chart"
	"popdash/internal/domain"
)

const (
	excludedContinent = "Antarctica"
	dateLabelLayout   = "2006-01-02"

	epidemicTickDivisor  = 3
	continentTickDivisor = 5
)

// Show draws the world population share map, or the density series of the
// selected country when the world toggle is off.
func (m *Model) Show(in Inputs) (*plot.Plot, error) {
	world, err := in.World()
	if err != nil {
		return nil, err
	}
	if world {
		return m.worldShare()
	}
	country, err := in.Country()
	if err != nil {
		return nil, err
	}
	return m.countryDensity(country)
}

func (m *Model) worldShare() (*plot.Plot, error) {
	p := chart.New("Share of World Population")
	p.HideAxes()

	regions := make([]chart.Region, 0, len(m.tables.Countries))
	for _, c := range m.tables.Countries {
		if c.Continent == excludedContinent {
			continue
		}
		regions = append(regions, chart.Region{Name: c.Name, Value: c.WorldPopShare, Geometry: c.Geometry})
	}

	if err := chart.Choropleth(p, regions, func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }); err != nil {
		return nil, fmt.Errorf("world share map: %w", err)
	}
	return p, nil
}

func (m *Model) countryDensity(country string) (*plot.Plot, error) {
	series := aggregate.CountrySeries(m.tables.Series, country)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no population series for %q", domain.ErrUnknownCountry, country)
	}

	p := chart.New("Population of " + country)
	p.X.Label.Text = "year"
	p.Y.Label.Text = "population density (people per sq. km)"

	xys := make(plotter.XYs, len(series))
	for i, pt := range series {
		xys[i] = plotter.XY{X: float64(pt.Year), Y: pt.Density}
	}
	if err := chart.Lines(p, chart.Series{Name: country, XYs: xys}); err != nil {
		return nil, err
	}
	return p, nil
}

// InitEpidemic draws the per-date US totals, one line per numeric field.
func (m *Model) InitEpidemic(Inputs) (*plot.Plot, error) {
	daily := m.tables.Daily
	p := chart.New("Analysis of the U.S. Epidemic")

	series := make([]chart.Series, len(daily.Fields))
	for j, field := range daily.Fields {
		xys := make(plotter.XYs, len(daily.Dates))
		for i := range daily.Dates {
			xys[i] = plotter.XY{X: float64(i), Y: daily.Rows[i][j]}
		}
		series[j] = chart.Series{Name: field, XYs: xys}
	}
	if err := chart.Lines(p, series...); err != nil {
		return nil, err
	}

	labels := make([]string, len(daily.Dates))
	for i, d := range daily.Dates {
		labels[i] = d.Format(dateLabelLayout)
	}
	p.X.Tick.Marker = chart.MultipleTicker{
		Step:  TickSpacing(len(daily.Dates), epidemicTickDivisor),
		Label: chart.CategoryLabel(labels),
	}
	return p, nil
}

// PopContinent draws total population per continent as touching bars.
func (m *Model) PopContinent(Inputs) (*plot.Plot, error) {
	table := m.tables.Continents
	p := chart.New("Population by Continent")
	p.Y.Label.Text = "pop_est"

	bars, err := chart.NewBars(plotter.Values(table.PopEst), 1)
	if err != nil {
		return nil, fmt.Errorf("continent bars: %w", err)
	}
	p.Add(bars)
	p.X.Tick.Marker = chart.MultipleTicker{
		Step:  TickSpacing(len(table.Continents), continentTickDivisor),
		Label: chart.CategoryLabel(table.Continents),
	}
	return p, nil
}
