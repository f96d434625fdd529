package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// bundle is the on-disk model format: the family tag selects the concrete
// type on load, the optional scaler travels with the fitted weights.
type bundle struct {
	Family string          `json:"family"`
	Scaler *StandardScaler `json:"scaler,omitempty"`
	Model  json.RawMessage `json:"model"`
}

// Save writes a fitted model (and its scaler, if any) as a JSON file
func Save(path string, r Regressor, scaler *StandardScaler) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	data, err := json.MarshalIndent(bundle{
		Family: r.Family(),
		Scaler: scaler,
		Model:  raw,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model bundle: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}

	return nil
}

// Load reads a model file back into a fitted regressor
func Load(path string) (Regressor, *StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal model bundle: %w", err)
	}

	var r Regressor
	switch b.Family {
	case FamilyLinear:
		r = &LinearRegression{}
	case FamilyRidge:
		r = &RidgeRegression{}
	case FamilyRandomForest:
		r = &RandomForest{}
	default:
		return nil, nil, fmt.Errorf("unknown model family %q in %s", b.Family, path)
	}

	if err := json.Unmarshal(b.Model, r); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal %s model: %w", b.Family, err)
	}

	return r, b.Scaler, nil
}
