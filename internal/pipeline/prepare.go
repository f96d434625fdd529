package pipeline

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"sort"

	"github.com/mkrogh/energy-mlops-go/internal/config"
	"github.com/mkrogh/energy-mlops-go/internal/dataset"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/stats"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// Prepare runs the data preparation stage: load the raw dataset, remove
// missing values and extreme target outliers, partition chronologically and
// persist the four split artifacts.
func Prepare(cfg *config.Config, store *tracking.Store, experiment string) error {
	run, err := store.CreateRun(experiment, "data_preparation")
	if err != nil {
		return err
	}

	if err := prepare(cfg, store, run.ID); err != nil {
		store.FinishRun(run.ID, models.RunStatusFailed)
		return err
	}

	return store.FinishRun(run.ID, models.RunStatusFinished)
}

func prepare(cfg *config.Config, store *tracking.Store, runID string) error {
	log.Printf("[Prepare] Loading raw data from %s", cfg.RawDataPath())
	raw, err := dataset.ReadCSV(cfg.RawDataPath())
	if err != nil {
		return fmt.Errorf("failed to load raw data: %w", err)
	}
	log.Printf("[Prepare] Loaded %d rows, %d columns", raw.NumRows(), len(raw.Columns))

	if err := dataset.ValidateSchema(raw); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	cleaned := dataset.DropMissing(raw)
	cleaned, err = dataset.RemoveTargetOutliers(cleaned)
	if err != nil {
		return fmt.Errorf("failed to remove target outliers: %w", err)
	}

	splits, err := dataset.Partition(cleaned)
	if err != nil {
		return err
	}

	if err := dataset.WriteSplits(splits, cfg.CleanedDir(), cfg.DriftDir()); err != nil {
		return err
	}

	logSummary(splits)

	if err := store.LogMetrics(runID, map[string]float64{
		"rows_raw":              float64(raw.NumRows()),
		"rows_cleaned":          float64(cleaned.NumRows()),
		"rows_train":            float64(splits.Train.NumRows()),
		"rows_validate":         float64(splits.Validation.NumRows()),
		"rows_test":             float64(splits.Test.NumRows()),
		"rows_drift_production": float64(splits.DriftProduction.NumRows()),
	}); err != nil {
		return err
	}

	for _, path := range []string{
		filepath.Join(cfg.CleanedDir(), dataset.TrainFile),
		filepath.Join(cfg.CleanedDir(), dataset.ValidationFile),
		filepath.Join(cfg.CleanedDir(), dataset.TestFile),
		filepath.Join(cfg.DriftDir(), dataset.DriftFile),
	} {
		if err := store.LogArtifact(runID, path); err != nil {
			return err
		}
	}

	return nil
}

// logSummary prints the target statistics per split and the features most
// correlated with the target on the training window
func logSummary(splits *dataset.Splits) {
	for _, s := range []struct {
		name  string
		table *dataset.Table
	}{
		{"train", splits.Train},
		{"validate", splits.Validation},
		{"test", splits.Test},
	} {
		target, err := s.table.FloatColumn(dataset.TargetColumn)
		if err != nil {
			continue
		}
		log.Printf("[Prepare] %s target: mean=%.2f std=%.2f", s.name, stats.Mean(target), stats.StdDev(target))
	}

	target, err := splits.Train.FloatColumn(dataset.TargetColumn)
	if err != nil {
		return
	}

	type featureCorr struct {
		feature string
		corr    float64
	}
	var correlations []featureCorr
	for _, feature := range dataset.FeatureColumns {
		values, err := splits.Train.FloatColumn(feature)
		if err != nil {
			continue
		}
		correlations = append(correlations, featureCorr{
			feature: feature,
			corr:    stats.PearsonCorrelation(values, target),
		})
	}
	sort.Slice(correlations, func(i, j int) bool {
		return math.Abs(correlations[i].corr) > math.Abs(correlations[j].corr)
	})

	top := correlations
	if len(top) > 5 {
		top = top[:5]
	}
	for _, fc := range top {
		log.Printf("[Prepare] Correlation with target: %s=%.3f", fc.feature, fc.corr)
	}
}
