package ml

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least squares model fitted via QR
// decomposition of the design matrix
type LinearRegression struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Family returns the model family identifier
func (m *LinearRegression) Family() string { return FamilyLinear }

// Fit solves the least squares problem for X with a bias column prepended
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || n != len(y) {
		return fmt.Errorf("invalid training data: %d rows, %d targets", n, len(y))
	}
	p := len(X[0])
	if n < p+1 {
		return fmt.Errorf("need at least %d rows to fit %d coefficients", p+1, p+1)
	}

	design := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewDense(n, 1, y)

	var qr mat.QR
	qr.Factorize(design)

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, target); err != nil {
		return fmt.Errorf("failed to solve least squares system: %w", err)
	}

	m.Intercept = solution.At(0, 0)
	m.Weights = make([]float64, p)
	for j := 0; j < p; j++ {
		m.Weights[j] = solution.At(j+1, 0)
	}

	return nil
}

// Predict evaluates the fitted linear model on one feature vector
func (m *LinearRegression) Predict(x []float64) (float64, error) {
	if len(m.Weights) == 0 {
		return 0, fmt.Errorf("model is not fitted")
	}
	if len(x) != len(m.Weights) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Weights), len(x))
	}

	prediction := m.Intercept
	for j, w := range m.Weights {
		prediction += w * x[j]
	}
	return prediction, nil
}
