// Package aggregate derives the dashboard tables from the loaded datasets.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"popdash/internal/domain"
)

// ContinentPopulationSum totals the population estimate per continent.
// Continents are sorted by name; a continent without records is absent.
func ContinentPopulationSum(records []domain.CountryRecord) domain.ContinentSumTable {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.Continent] += r.PopEst
	}

	continents := make([]string, 0, len(totals))
	for c := range totals {
		continents = append(continents, c)
	}
	sort.Strings(continents)

	table := domain.ContinentSumTable{
		Continents: continents,
		PopEst:     make([]float64, len(continents)),
	}
	for i, c := range continents {
		table.PopEst[i] = totals[c]
	}
	return table
}

// PopShareTotal sums WorldPopShare over every record.
func PopShareTotal(records []domain.CountryRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.WorldPopShare
	}
	return total
}

// CountyDailySum adds up every numeric field across counties for each
// date. Records sharing a date are merged by summation.
func CountyDailySum(records []domain.CountyDailyRecord) domain.DailySumTable {
	fieldSet := make(map[string]bool)
	byDate := make(map[time.Time]map[string]float64)
	for _, r := range records {
		day := r.Date.UTC()
		sums := byDate[day]
		if sums == nil {
			sums = make(map[string]float64)
			byDate[day] = sums
		}
		for field, v := range r.Values {
			fieldSet[field] = true
			sums[field] += v
		}
	}

	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	table := domain.DailySumTable{
		Dates:  dates,
		Fields: fields,
		Rows:   make([][]float64, len(dates)),
	}
	for i, d := range dates {
		row := make([]float64, len(fields))
		for j, f := range fields {
			row[j] = byDate[d][f]
		}
		table.Rows[i] = row
	}
	return table
}

type pivotKey struct {
	country string
	year    int
}

// PivotToWide reshapes long-format points into one row per year and one
// column per country. Rows are sorted by year and columns by country.
// Repeated (country, year) pairs must agree on the value.
func PivotToWide(points []domain.PopulationSeriesPoint) (domain.WideSeriesTable, error) {
	values := make(map[pivotKey]float64, len(points))
	yearSet := make(map[int]bool)
	countrySet := make(map[string]bool)

	for _, p := range points {
		key := pivotKey{p.Country, p.Year}
		if prev, ok := values[key]; ok && prev != p.Density {
			return domain.WideSeriesTable{}, fmt.Errorf("%w: %s %d has %v and %v",
				domain.ErrPivotConflict, p.Country, p.Year, prev, p.Density)
		}
		values[key] = p.Density
		yearSet[p.Year] = true
		countrySet[p.Country] = true
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	countries := make([]string, 0, len(countrySet))
	for c := range countrySet {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	cells := make([][]float64, len(years))
	for i, y := range years {
		row := make([]float64, len(countries))
		for j, c := range countries {
			if v, ok := values[pivotKey{c, y}]; ok {
				row[j] = v
			} else {
				row[j] = math.NaN()
			}
		}
		cells[i] = row
	}

	return domain.WideSeriesTable{Years: years, Countries: countries, Cells: cells}, nil
}

// CountrySeries returns the long-format points for one country in year order.
func CountrySeries(points []domain.PopulationSeriesPoint, country string) []domain.PopulationSeriesPoint {
	var out []domain.PopulationSeriesPoint
	for _, p := range points {
		if p.Country == country {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
