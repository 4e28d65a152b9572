// Package trend fits ordinary least squares lines to population series.
package trend

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"popdash/internal/domain"
)

// PredictorYear is the only predictor the wide table carries.
const PredictorYear = "year"

// Fit is the result of regressing one country column on year.
type Fit struct {
	Target          string
	Predictor       string
	N               int
	Slope           float64
	Intercept       float64
	Origin          float64 // smallest predictor value observed
	OriginIntercept float64 // fitted value at Origin
	RSquared        float64
	SlopeStdErr     float64
	InterceptStdErr float64
	ResidualStdErr  float64
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// Summary renders the fit as a small text table.
func (f Fit) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OLS Regression Results: %s ~ %s\n", f.Target, f.Predictor)
	fmt.Fprintf(&b, "No. Observations: %d    R-squared: %.4f    Resid. Std. Err.: %.4f\n",
		f.N, f.RSquared, f.ResidualStdErr)
	fmt.Fprintf(&b, "%-10s %14s %14s\n", "", "coef", "std err")
	fmt.Fprintf(&b, "%-10s %14.6f %14.6f\n", "Intercept", f.Intercept, f.InterceptStdErr)
	fmt.Fprintf(&b, "%-10s %14.6f %14.6f\n", f.Predictor, f.Slope, f.SlopeStdErr)
	fmt.Fprintf(&b, "Fitted value at %s=%g: %.6f\n", f.Predictor, f.Origin, f.OriginIntercept)
	return b.String()
}

// FitLinearTrend regresses the target column of table on predictor. Rows
// where the target cell is empty are skipped. At least two distinct
// predictor values are required.
func FitLinearTrend(table domain.WideSeriesTable, target, predictor string) (Fit, error) {
	if predictor != PredictorYear {
		return Fit{}, fmt.Errorf("unsupported predictor %q", predictor)
	}

	col := table.ColumnIndex(target)
	var xs, ys []float64
	if col >= 0 {
		for row, year := range table.Years {
			if v, ok := table.Cell(row, col); ok {
				xs = append(xs, float64(year))
				ys = append(ys, v)
			}
		}
	}
	if distinct(xs) < 2 {
		return Fit{}, fmt.Errorf("%w: %s has %d distinct %s values", domain.ErrInsufficientData, target, distinct(xs), predictor)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	fit := Fit{
		Target:    target,
		Predictor: predictor,
		N:         len(xs),
		Slope:     slope,
		Intercept: intercept,
		Origin:    floats.Min(xs),
		RSquared:  stat.RSquared(xs, ys, nil, intercept, slope),
	}
	fit.OriginIntercept = fit.Predict(fit.Origin)

	fit.ResidualStdErr, fit.SlopeStdErr, fit.InterceptStdErr = standardErrors(xs, ys, intercept, slope)
	return fit, nil
}

// standardErrors uses n-2 degrees of freedom; with exactly two points the
// errors are undefined and reported as NaN.
func standardErrors(xs, ys []float64, intercept, slope float64) (resid, slopeSE, interceptSE float64) {
	n := len(xs)
	if n <= 2 {
		return math.NaN(), math.NaN(), math.NaN()
	}

	ssr := 0.0
	for i := range xs {
		r := ys[i] - (intercept + slope*xs[i])
		ssr += r * r
	}
	sigma2 := ssr / float64(n-2)

	meanX := stat.Mean(xs, nil)
	sxx := 0.0
	for _, x := range xs {
		sxx += (x - meanX) * (x - meanX)
	}

	resid = math.Sqrt(sigma2)
	slopeSE = math.Sqrt(sigma2 / sxx)
	interceptSE = math.Sqrt(sigma2 * (1/float64(n) + meanX*meanX/sxx))
	return resid, slopeSE, interceptSE
}

func distinct(xs []float64) int {
	seen := make(map[float64]bool, len(xs))
	for _, x := range xs {
		seen[x] = true
	}
	return len(seen)
}
