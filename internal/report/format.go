package report

import (
	"fmt"
	"math"
)

// FormatPopulation abbreviates large counts: 1.23B, 4.56M, 7.8K.
func FormatPopulation(num float64) string {
	abs := math.Abs(num)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", num/1e3)
	default:
		return fmt.Sprintf("%.0f", num)
	}
}

// finite replaces NaN and Inf, which excel cannot store, with a marker.
func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return v
}
