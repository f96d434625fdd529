package stats

import (
	"math"
	"sort"
)

// Quantile calculates the q-th quantile (0-1) using linear interpolation
// between closest ranks
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	index := q * (n - 1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Quartiles returns the three quartiles (Q1, Q2/median, Q3)
func Quartiles(values []float64) (q1, q2, q3 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	q1 = Quantile(values, 0.25)
	q2 = Quantile(values, 0.5)
	q3 = Quantile(values, 0.75)

	return
}

// IQRBounds calculates the lower and upper fences for outliers using the
// IQR method with a configurable multiplier (1.5 is the classic fence,
// 3.0 keeps only extreme outliers out)
func IQRBounds(values []float64, k float64) (lowerBound, upperBound float64) {
	q1, _, q3 := Quartiles(values)
	iqr := q3 - q1

	lowerBound = q1 - k*iqr
	upperBound = q3 + k*iqr

	return
}
