// Package report exports the derived tables as an Excel workbook.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"popdash/internal/trend"
	"popdash/internal/view"
)

const (
	SheetContinents = "Continents"
	SheetDaily      = "US_Daily"
	SheetWide       = "Population_Wide"
	SheetTrend      = "Trend"
)

// Workbook writes one sheet per derived table plus the trend fit. Empty
// cells of the wide table stay blank.
func Workbook(tables view.Tables, fit trend.Fit) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetContinents); err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f}

	w.row(SheetContinents, 1, "Continent", "pop_est", "Population")
	for i, c := range tables.Continents.Continents {
		pop := tables.Continents.PopEst[i]
		w.row(SheetContinents, i+2, c, finite(pop), FormatPopulation(pop))
	}
	w.width(SheetContinents, "A", "C", 18)

	w.sheet(SheetDaily)
	header := []any{"date"}
	for _, field := range tables.Daily.Fields {
		header = append(header, field)
	}
	w.row(SheetDaily, 1, header...)
	for i, d := range tables.Daily.Dates {
		values := []any{d.Format("2006-01-02")}
		for _, v := range tables.Daily.Rows[i] {
			values = append(values, finite(v))
		}
		w.row(SheetDaily, i+2, values...)
	}
	w.width(SheetDaily, "A", "A", 14)

	w.sheet(SheetWide)
	header = []any{"year"}
	for _, c := range tables.Wide.Countries {
		header = append(header, c)
	}
	w.row(SheetWide, 1, header...)
	for i, year := range tables.Wide.Years {
		values := []any{year}
		for j := range tables.Wide.Countries {
			if v, ok := tables.Wide.Cell(i, j); ok {
				values = append(values, v)
			} else {
				values = append(values, nil)
			}
		}
		w.row(SheetWide, i+2, values...)
	}

	w.sheet(SheetTrend)
	trendRows := [][]any{
		{"Target", fit.Target},
		{"Predictor", fit.Predictor},
		{"Observations", fit.N},
		{"Slope", finite(fit.Slope)},
		{"Intercept", finite(fit.Intercept)},
		{fmt.Sprintf("Fitted at %s=%g", fit.Predictor, fit.Origin), finite(fit.OriginIntercept)},
		{"R-squared", finite(fit.RSquared)},
		{"Slope std err", finite(fit.SlopeStdErr)},
		{"Intercept std err", finite(fit.InterceptStdErr)},
		{"Residual std err", finite(fit.ResidualStdErr)},
	}
	for i, r := range trendRows {
		w.row(SheetTrend, i+1, r...)
	}
	w.width(SheetTrend, "A", "A", 24)

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// sheetWriter keeps the first error so the table writers stay linear.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) sheet(name string) {
	if w.err != nil {
		return
	}
	_, w.err = w.f.NewSheet(name)
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			w.err = err
			return
		}
	}
}

func (w *sheetWriter) width(sheet, from, to string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(sheet, from, to, width)
}
