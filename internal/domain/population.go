package domain

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

// CountryRecord is one country polygon from the world boundaries dataset.
type CountryRecord struct {
	Code          string
	Name          string
	Continent     string
	PopEst        float64
	WorldPopShare float64
	Geometry      orb.Geometry
}

// PopulationSeriesPoint is one (country, year) observation of population density.
type PopulationSeriesPoint struct {
	Country string
	Year    int
	Density float64
}

// WideSeriesTable holds population density with one row per year and one
// column per country. Missing observations are NaN.
type WideSeriesTable struct {
	Years     []int
	Countries []string
	Cells     [][]float64
}

// ColumnIndex returns the column of country, or -1.
func (t WideSeriesTable) ColumnIndex(country string) int {
	for i, c := range t.Countries {
		if c == country {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col) and whether it is present.
func (t WideSeriesTable) Cell(row, col int) (float64, bool) {
	if row < 0 || row >= len(t.Cells) || col < 0 || col >= len(t.Cells[row]) {
		return 0, false
	}
	v := t.Cells[row][col]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Melt turns the table back into long format, skipping empty cells.
// Points come out ordered by country, then year.
func (t WideSeriesTable) Melt() []PopulationSeriesPoint {
	var points []PopulationSeriesPoint
	for col, country := range t.Countries {
		for row, year := range t.Years {
			if v, ok := t.Cell(row, col); ok {
				points = append(points, PopulationSeriesPoint{Country: country, Year: year, Density: v})
			}
		}
	}
	return points
}

// CountyDailyRecord is one row of the US county time series.
type CountyDailyRecord struct {
	Date   time.Time
	County string
	State  string
	FIPS   string
	Values map[string]float64
}

// DailySumTable sums every numeric field across counties per date.
type DailySumTable struct {
	Dates  []time.Time
	Fields []string
	Rows   [][]float64
}

// Records re-expresses the table as one record per date so it can be
// aggregated again.
func (t DailySumTable) Records() []CountyDailyRecord {
	records := make([]CountyDailyRecord, len(t.Dates))
	for i, d := range t.Dates {
		values := make(map[string]float64, len(t.Fields))
		for j, f := range t.Fields {
			values[f] = t.Rows[i][j]
		}
		records[i] = CountyDailyRecord{Date: d, Values: values}
	}
	return records
}

// ContinentSumTable holds total estimated population per continent.
type ContinentSumTable struct {
	Continents []string
	PopEst     []float64
}

// Lookup returns the population of continent and whether it is present.
func (t ContinentSumTable) Lookup(continent string) (float64, bool) {
	for i, c := range t.Continents {
		if c == continent {
			return t.PopEst[i], true
		}
	}
	return 0, false
}
