package view

import (
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popdash/internal/aggregate"
	"popdash/internal/chart"
	"popdash/internal/domain"
)

func fixtureTables(t *testing.T) Tables {
	t.Helper()

	square := func(x float64) orb.Polygon {
		return orb.Polygon{orb.Ring{{x, 0}, {x + 1, 0}, {x + 1, 1}, {x, 1}, {x, 0}}}
	}
	countries := []domain.CountryRecord{
		{Name: "A", Continent: "Africa", PopEst: 10, WorldPopShare: 0.1, Geometry: square(0)},
		{Name: "B", Continent: "Asia", PopEst: 40, WorldPopShare: 0.4, Geometry: square(1)},
		{Name: "C", Continent: "Europe", PopEst: 20, WorldPopShare: 0.2, Geometry: square(2)},
		{Name: "D", Continent: "North America", PopEst: 20, WorldPopShare: 0.2, Geometry: square(3)},
		{Name: "E", Continent: "Antarctica", PopEst: 10, WorldPopShare: 0.1, Geometry: square(4)},
	}

	series := []domain.PopulationSeriesPoint{
		{Country: "Canada", Year: 1970, Density: 2.4},
		{Country: "Canada", Year: 1971, Density: 2.5},
		{Country: "Japan", Year: 1970, Density: 282},
		{Country: "Japan", Year: 1971, Density: 285},
	}
	wide, err := aggregate.PivotToWide(series)
	require.NoError(t, err)

	var county []domain.CountyDailyRecord
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 9; d++ {
		county = append(county, domain.CountyDailyRecord{
			Date:   start.AddDate(0, 0, d),
			Values: map[string]float64{"cases": float64(d * d), "deaths": float64(d)},
		})
	}

	return Tables{
		Countries:  countries,
		Series:     series,
		Wide:       wide,
		Daily:      aggregate.CountyDailySum(county),
		Continents: aggregate.ContinentPopulationSum(countries),
	}
}

func TestTickSpacing(t *testing.T) {
	assert.Equal(t, 3.0, TickSpacing(9, 3))
	assert.Equal(t, 1.0, TickSpacing(5, 5))
	assert.InDelta(t, 1.2, TickSpacing(6, 5), 1e-12)
}

func TestOutputs_Slots(t *testing.T) {
	reg := NewModel(fixtureTables(t)).Outputs()
	assert.Equal(t, []string{SlotInitEpidemic, SlotPopContinent, SlotShow}, reg.Slots())

	_, err := reg.Render("missing", domain.DefaultInputState())
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestShow_World(t *testing.T) {
	reg := NewModel(fixtureTables(t)).Outputs()

	p, err := reg.Render(SlotShow, domain.UIInputState{ShowWorld: true})
	require.NoError(t, err)
	assert.Equal(t, "Share of World Population", p.Title.Text)

	// Antarctica is the only region drawn at x in [4, 5].
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 4.0, p.X.Max)
	assert.Equal(t, 1.0, p.Y.Max)

	assert.Empty(t, p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max))
	assert.Empty(t, p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max))
	assert.Zero(t, p.X.Width)
	assert.Zero(t, p.Y.Width)

	_, err = chart.Encode(p, "png")
	assert.NoError(t, err)
}

func TestShow_Country(t *testing.T) {
	reg := NewModel(fixtureTables(t)).Outputs()

	p, err := reg.Render(SlotShow, domain.UIInputState{ShowWorld: false, SelectedCountry: "Japan"})
	require.NoError(t, err)
	assert.Equal(t, "Population of Japan", p.Title.Text)
	assert.Equal(t, "year", p.X.Label.Text)
}

func TestShow_UnknownCountryIsScopedToSlot(t *testing.T) {
	reg := NewModel(fixtureTables(t)).Outputs()
	in := domain.UIInputState{ShowWorld: false, SelectedCountry: "China"}

	_, err := reg.Render(SlotShow, in)
	assert.True(t, errors.Is(err, domain.ErrUnknownCountry))

	epidemic, err := reg.Render(SlotInitEpidemic, in)
	require.NoError(t, err)
	assert.Equal(t, "Analysis of the U.S. Epidemic", epidemic.Title.Text)

	continents, err := reg.Render(SlotPopContinent, in)
	require.NoError(t, err)
	assert.NotNil(t, continents)
}

func TestInitEpidemic_TickSpacing(t *testing.T) {
	p, err := NewModel(fixtureTables(t)).InitEpidemic(domain.DefaultInputState())
	require.NoError(t, err)

	ticker, ok := p.X.Tick.Marker.(chart.MultipleTicker)
	require.True(t, ok)
	assert.Equal(t, 3.0, ticker.Step)

	ticks := ticker.Ticks(0, 8)
	require.Len(t, ticks, 3)
	assert.Equal(t, "2020-03-01", ticks[0].Label)
	assert.Equal(t, "2020-03-04", ticks[1].Label)
	assert.Equal(t, "2020-03-07", ticks[2].Label)
}

func TestPopContinent(t *testing.T) {
	p, err := NewModel(fixtureTables(t)).PopContinent(domain.DefaultInputState())
	require.NoError(t, err)

	ticker, ok := p.X.Tick.Marker.(chart.MultipleTicker)
	require.True(t, ok)
	assert.Equal(t, 1.0, ticker.Step, "five continents, one tick each")
	assert.Equal(t, "Antarctica", ticker.Label(1))

	_, err = chart.Encode(p, "png")
	assert.NoError(t, err)
}

func TestRender_FreshPlotPerCall(t *testing.T) {
	reg := NewModel(fixtureTables(t)).Outputs()
	for _, slot := range reg.Slots() {
		a, err := reg.Render(slot, domain.DefaultInputState())
		require.NoError(t, err)
		b, err := reg.Render(slot, domain.DefaultInputState())
		require.NoError(t, err)
		assert.NotSame(t, a, b, slot)
	}
}
