package pipeline

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/mkrogh/energy-mlops-go/internal/config"
	"github.com/mkrogh/energy-mlops-go/internal/dataset"
	"github.com/mkrogh/energy-mlops-go/internal/drift"
	"github.com/mkrogh/energy-mlops-go/internal/ml"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/service"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// reportFile is the drift analysis artifact
const reportFile = "drift_analysis_report.html"

// Drift runs the drift analysis stage: compare the production simulation
// window against the reference test window, for both feature distributions
// and model accuracy, and render the HTML report.
func Drift(cfg *config.Config, store *tracking.Store, registry *tracking.Registry, experiment string) error {
	run, err := store.CreateRun(experiment, "drift_analysis")
	if err != nil {
		return err
	}

	if err := analyzeDrift(cfg, store, registry, run.ID); err != nil {
		store.FinishRun(run.ID, models.RunStatusFailed)
		return err
	}

	return store.FinishRun(run.ID, models.RunStatusFinished)
}

func analyzeDrift(cfg *config.Config, store *tracking.Store, registry *tracking.Registry, runID string) error {
	reference, err := dataset.ReadCSV(filepath.Join(cfg.CleanedDir(), dataset.TestFile))
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	production, err := dataset.ReadCSV(filepath.Join(cfg.DriftDir(), dataset.DriftFile))
	if err != nil {
		return fmt.Errorf("failed to load production data: %w", err)
	}
	log.Printf("[Drift] Reference: %d rows, production: %d rows", reference.NumRows(), production.NumRows())

	featureDrift, err := drift.AnalyzeDataDrift(reference, production)
	if err != nil {
		return err
	}

	loaded := loadRegisteredModels(registry)
	modelDrift, err := drift.AnalyzePredictionDrift(loaded, reference, production)
	if err != nil {
		return err
	}

	report := drift.BuildReport(reference, production, featureDrift, modelDrift)
	log.Printf("[Drift] Detected drift in %d of %d features", report.DriftedFeatures, len(report.Features))

	if err := drift.WriteHTMLReport(report, reportFile); err != nil {
		return err
	}
	log.Printf("[Drift] Report saved to %s", reportFile)

	if err := store.LogMetrics(runID, map[string]float64{
		"features_analyzed": float64(len(report.Features)),
		"features_drifted":  float64(report.DriftedFeatures),
		"models_analyzed":   float64(len(report.Models)),
	}); err != nil {
		return err
	}
	return store.LogArtifact(runID, reportFile)
}

// loadRegisteredModels loads the production (or latest) version of each
// serving model; missing models are skipped with a warning, matching the
// API's startup behavior.
func loadRegisteredModels(registry *tracking.Registry) []drift.LoadedModel {
	var loaded []drift.LoadedModel
	for _, slot := range service.DefaultSlots {
		mv, err := registry.Production(slot.RegistryName)
		if err == nil && mv == nil {
			mv, err = registry.Latest(slot.RegistryName)
		}
		if err != nil || mv == nil {
			log.Printf("[Drift] Warning: no registered version of %s", slot.RegistryName)
			continue
		}

		regressor, scaler, err := ml.Load(mv.ArtifactPath)
		if err != nil {
			log.Printf("[Drift] Warning: failed to load %s: %v", slot.RegistryName, err)
			continue
		}

		loaded = append(loaded, drift.LoadedModel{
			Name:      mv.Name,
			Regressor: regressor,
			Scaler:    scaler,
		})
	}
	return loaded
}
