package ml

import (
	"fmt"
)

// Model families supported by the training stages
const (
	FamilyLinear       = "linear"
	FamilyRidge        = "ridge"
	FamilyRandomForest = "random_forest"
)

// Regressor is a trainable regression model. Fit must be called before
// Predict; implementations are deterministic for a fixed configuration.
type Regressor interface {
	Family() string
	Fit(X [][]float64, y []float64) error
	Predict(x []float64) (float64, error)
}

// Config describes one model configuration from the training config file
type Config struct {
	Name   string `yaml:"name"`
	Family string `yaml:"family"`
	Scale  bool   `yaml:"scale,omitempty"`

	// ridge
	Lambda float64 `yaml:"lambda,omitempty"`

	// random forest
	Trees          int    `yaml:"trees,omitempty"`
	MaxDepth       int    `yaml:"max_depth,omitempty"`
	MinSamplesLeaf int    `yaml:"min_samples_leaf,omitempty"`
	MaxFeatures    string `yaml:"max_features,omitempty"`
	Seed           int64  `yaml:"seed,omitempty"`
}

// New builds an untrained regressor from a configuration
func New(cfg Config) (Regressor, error) {
	switch cfg.Family {
	case FamilyLinear:
		return &LinearRegression{}, nil
	case FamilyRidge:
		return &RidgeRegression{Lambda: cfg.Lambda}, nil
	case FamilyRandomForest:
		forest := &RandomForest{
			Trees:          cfg.Trees,
			MaxDepth:       cfg.MaxDepth,
			MinSamplesLeaf: cfg.MinSamplesLeaf,
			MaxFeatures:    cfg.MaxFeatures,
			Seed:           cfg.Seed,
		}
		forest.applyDefaults()
		return forest, nil
	default:
		return nil, fmt.Errorf("unknown model family %q", cfg.Family)
	}
}

// PredictAll runs Predict over every row of X
func PredictAll(r Regressor, X [][]float64) ([]float64, error) {
	predictions := make([]float64, len(X))
	for i, x := range X {
		p, err := r.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("failed to predict row %d: %w", i, err)
		}
		predictions[i] = p
	}
	return predictions, nil
}
