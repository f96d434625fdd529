package ml

import (
	"fmt"

	"github.com/mkrogh/energy-mlops-go/internal/stats"
)

// StandardScaler centers features to zero mean and unit variance. It is
// fitted on the training split only and applied unchanged everywhere else.
type StandardScaler struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// Fit computes per-column means and standard deviations
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("cannot fit scaler on empty matrix")
	}

	p := len(X[0])
	s.Means = make([]float64, p)
	s.Stds = make([]float64, p)

	column := make([]float64, len(X))
	for j := 0; j < p; j++ {
		for i := range X {
			column[i] = X[i][j]
		}
		s.Means[j] = stats.Mean(column)
		s.Stds[j] = stats.StdDev(column)
		// Constant columns pass through unscaled
		if s.Stds[j] == 0 {
			s.Stds[j] = 1
		}
	}

	return nil
}

// TransformRow scales a single feature vector
func (s *StandardScaler) TransformRow(x []float64) ([]float64, error) {
	if len(x) != len(s.Means) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.Means), len(x))
	}

	scaled := make([]float64, len(x))
	for j, v := range x {
		scaled[j] = (v - s.Means[j]) / s.Stds[j]
	}
	return scaled, nil
}

// Transform scales every row of X
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	scaled := make([][]float64, len(X))
	for i, x := range X {
		row, err := s.TransformRow(x)
		if err != nil {
			return nil, fmt.Errorf("failed to scale row %d: %w", i, err)
		}
		scaled[i] = row
	}
	return scaled, nil
}
