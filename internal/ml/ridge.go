package ml

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RidgeRegression is an L2-regularized linear model. The intercept is left
// unpenalized by centering the data before solving the normal equations.
type RidgeRegression struct {
	Lambda    float64   `json:"lambda"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Family returns the model family identifier
func (m *RidgeRegression) Family() string { return FamilyRidge }

// Fit solves (Xc'Xc + lambda*I) w = Xc'yc on centered data
func (m *RidgeRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || n != len(y) {
		return fmt.Errorf("invalid training data: %d rows, %d targets", n, len(y))
	}
	if m.Lambda < 0 {
		return fmt.Errorf("lambda must be non-negative, got %g", m.Lambda)
	}
	p := len(X[0])

	// Column means for centering
	xMeans := make([]float64, p)
	for _, row := range X {
		for j, v := range row {
			xMeans[j] += v
		}
	}
	for j := range xMeans {
		xMeans[j] /= float64(n)
	}
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)

	centered := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i, row := range X {
		for j, v := range row {
			centered.Set(i, j, v-xMeans[j])
		}
		yc.SetVec(i, y[i]-yMean)
	}

	// Gram matrix with the ridge penalty on the diagonal
	gram := mat.NewSymDense(p, nil)
	for j := 0; j < p; j++ {
		for k := j; k < p; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += centered.At(i, j) * centered.At(i, k)
			}
			if j == k {
				sum += m.Lambda
			}
			gram.SetSym(j, k, sum)
		}
	}

	rhs := mat.NewVecDense(p, nil)
	rhs.MulVec(centered.T(), yc)

	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return fmt.Errorf("failed to factorize gram matrix: not positive definite")
	}

	weights := mat.NewVecDense(p, nil)
	if err := chol.SolveVecTo(weights, rhs); err != nil {
		return fmt.Errorf("failed to solve ridge system: %w", err)
	}

	m.Weights = make([]float64, p)
	m.Intercept = yMean
	for j := 0; j < p; j++ {
		m.Weights[j] = weights.AtVec(j)
		m.Intercept -= m.Weights[j] * xMeans[j]
	}

	return nil
}

// Predict evaluates the fitted ridge model on one feature vector
func (m *RidgeRegression) Predict(x []float64) (float64, error) {
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
