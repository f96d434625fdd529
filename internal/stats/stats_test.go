package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestVarianceAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	// Sample variance of the classic example set.
	assert.InDelta(t, 4.571428, Variance(values), 1e-5)
	assert.InDelta(t, 2.138089, StdDev(values), 1e-5)

	assert.Equal(t, 0.0, Variance([]float64{42}))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestMinMax(t *testing.T) {
	values := []float64{3, -1, 7, 0}
	assert.Equal(t, -1.0, Min(values))
	assert.Equal(t, 7.0, Max(values))
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 10.0, PercentChange(100, 110), 1e-9)
	assert.InDelta(t, 10.0, PercentChange(100, 90), 1e-9)
	assert.Equal(t, 0.0, PercentChange(0, 50))
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 3.0, Quantile(values, 0.5))
	assert.Equal(t, 5.0, Quantile(values, 1))
	assert.Equal(t, 2.0, Quantile(values, 0.25))

	// Interpolated rank on an even-length slice.
	assert.InDelta(t, 1.75, Quantile([]float64{1, 2, 3, 4}, 0.25), 1e-9)
}

func TestIQRBounds(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	lower, upper := IQRBounds(values, 1.5)
	assert.InDelta(t, -1.0, lower, 1e-9)
	assert.InDelta(t, 7.0, upper, 1e-9)

	lower, upper = IQRBounds(values, 3.0)
	assert.InDelta(t, -4.0, lower, 1e-9)
	assert.InDelta(t, 10.0, upper, 1e-9)
}

func TestPearsonCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 1.0, PearsonCorrelation(x, []float64{2, 4, 6, 8, 10}), 1e-9)
	assert.InDelta(t, -1.0, PearsonCorrelation(x, []float64{10, 8, 6, 4, 2}), 1e-9)
	assert.Equal(t, 0.0, PearsonCorrelation(x, []float64{3, 3, 3, 3, 3}))
	assert.Equal(t, 0.0, PearsonCorrelation(x, []float64{1, 2}))
}
