package dataset

import (
	"fmt"
	"strconv"
)

// FeatureMatrix extracts the feature matrix and target vector from a split
// table. Feature columns are read in the fixed schema order so every model
// sees the same layout at training and prediction time.
func FeatureMatrix(t *Table) (X [][]float64, y []float64, err error) {
	indices := make([]int, len(FeatureColumns))
	for i, col := range FeatureColumns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			return nil, nil, fmt.Errorf("feature column %q not found", col)
		}
		indices[i] = idx
	}

	targetIdx := t.ColumnIndex(TargetColumn)
	if targetIdx < 0 {
		return nil, nil, fmt.Errorf("target column %q not found", TargetColumn)
	}

	X = make([][]float64, t.NumRows())
	y = make([]float64, t.NumRows())
	for i, row := range t.Rows {
		features := make([]float64, len(indices))
		for j, idx := range indices {
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to parse feature %s at row %d: %w", t.Columns[idx], i, err)
			}
			features[j] = v
		}
		X[i] = features

		v, err := strconv.ParseFloat(row[targetIdx], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse target at row %d: %w", i, err)
		}
		y[i] = v
	}

	return X, y, nil
}
