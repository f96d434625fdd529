package drift

import (
	"fmt"
	"log"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/mkrogh/energy-mlops-go/internal/dataset"
	"github.com/mkrogh/energy-mlops-go/internal/ml"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/stats"
)

// Drift thresholds: a feature counts as drifted when its mean or standard
// deviation moves more than 10% against the reference window; a model counts
// as degraded when its RMSE worsens by more than 20%.
const (
	FeatureDriftThresholdPct = 10.0
	ModelDriftThresholdPct   = 20.0
)

// LoadedModel pairs a registered model with its fitted regressor for
// prediction drift analysis
type LoadedModel struct {
	Name      string
	Regressor ml.Regressor
	Scaler    *ml.StandardScaler
}

// AnalyzeDataDrift compares per-feature distributions between the reference
// window (test split) and the production simulation window
func AnalyzeDataDrift(reference, production *dataset.Table) ([]models.FeatureDrift, error) {
	results := make([]models.FeatureDrift, 0, len(dataset.FeatureColumns))

	for _, feature := range dataset.FeatureColumns {
		refValues, err := reference.FloatColumn(feature)
		if err != nil {
			return nil, fmt.Errorf("failed to read reference feature: %w", err)
		}
		prodValues, err := production.FloatColumn(feature)
		if err != nil {
			return nil, fmt.Errorf("failed to read production feature: %w", err)
		}

		fd := models.FeatureDrift{
			Feature:    feature,
			RefMean:    stats.Mean(refValues),
			ProdMean:   stats.Mean(prodValues),
			RefStdDev:  stats.StdDev(refValues),
			ProdStdDev: stats.StdDev(prodValues),
		}
		fd.MeanChangePct = stats.PercentChange(fd.RefMean, fd.ProdMean)
		fd.StdChangePct = stats.PercentChange(fd.RefStdDev, fd.ProdStdDev)
		fd.KSStatistic = ksStatistic(refValues, prodValues)
		fd.DriftDetected = fd.MeanChangePct > FeatureDriftThresholdPct || fd.StdChangePct > FeatureDriftThresholdPct

		results = append(results, fd)
	}

	return results, nil
}

// ksStatistic computes the two-sample Kolmogorov-Smirnov statistic
func ksStatistic(x, y []float64) float64 {
	xs := make([]float64, len(x))
	copy(xs, x)
	sort.Float64s(xs)

	ys := make([]float64, len(y))
	copy(ys, y)
	sort.Float64s(ys)

	return stat.KolmogorovSmirnov(xs, nil, ys, nil)
}

// AnalyzePredictionDrift evaluates every loaded model on both windows and
// reports the accuracy degradation
func AnalyzePredictionDrift(loaded []LoadedModel, reference, production *dataset.Table) ([]models.ModelDrift, error) {
	XRef, yRef, err := dataset.FeatureMatrix(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to extract reference features: %w", err)
	}
	XProd, yProd, err := dataset.FeatureMatrix(production)
	if err != nil {
		return nil, fmt.Errorf("failed to extract production features: %w", err)
	}

	results := make([]models.ModelDrift, 0, len(loaded))
	for _, lm := range loaded {
		refX, prodX := XRef, XProd
		if lm.Scaler != nil {
			if refX, err = lm.Scaler.Transform(XRef); err != nil {
				return nil, fmt.Errorf("failed to scale reference features for %s: %w", lm.Name, err)
			}
			if prodX, err = lm.Scaler.Transform(XProd); err != nil {
				return nil, fmt.Errorf("failed to scale production features for %s: %w", lm.Name, err)
			}
		}

		refPred, err := ml.PredictAll(lm.Regressor, refX)
		if err != nil {
			return nil, fmt.Errorf("failed to predict reference window with %s: %w", lm.Name, err)
		}
		prodPred, err := ml.PredictAll(lm.Regressor, prodX)
		if err != nil {
			return nil, fmt.Errorf("failed to predict production window with %s: %w", lm.Name, err)
		}

		md := models.ModelDrift{
			Model:    lm.Name,
			RefRMSE:  ml.RMSE(yRef, refPred),
			ProdRMSE: ml.RMSE(yProd, prodPred),
			RefMAE:   ml.MAE(yRef, refPred),
			ProdMAE:  ml.MAE(yProd, prodPred),
			RefR2:    ml.R2(yRef, refPred),
			ProdR2:   ml.R2(yProd, prodPred),
		}
		md.RMSEChangePct = stats.PercentChange(md.RefRMSE, md.ProdRMSE)
		md.Degraded = md.RMSEChangePct > ModelDriftThresholdPct

		log.Printf("[Drift] %s: rmse change %.2f%%", lm.Name, md.RMSEChangePct)
		results = append(results, md)
	}

	return results, nil
}

// BuildReport assembles the full drift report for one analysis run
func BuildReport(reference, production *dataset.Table, features []models.FeatureDrift, modelDrift []models.ModelDrift) *models.DriftReport {
	drifted := 0
	for _, fd := range features {
		if fd.DriftDetected {
			drifted++
		}
	}

	return &models.DriftReport{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		ReferenceRows:   reference.NumRows(),
		ProductionRows:  production.NumRows(),
		Features:        features,
		DriftedFeatures: drifted,
		Models:          modelDrift,
	}
}
