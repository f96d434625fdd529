package ml

import "math"

// RMSE calculates the root mean squared error
func RMSE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}

	var sum float64
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}

// MAE calculates the mean absolute error
func MAE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}

	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// R2 calculates the coefficient of determination. A model no better than
// predicting the mean scores 0; worse models go negative.
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}

	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i := range actual {
		res := actual[i] - predicted[i]
		tot := actual[i] - mean
		ssRes += res * res
		ssTot += tot * tot
	}

	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
