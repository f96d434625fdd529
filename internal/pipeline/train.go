package pipeline

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"github.com/mkrogh/energy-mlops-go/internal/config"
	"github.com/mkrogh/energy-mlops-go/internal/dataset"
	"github.com/mkrogh/energy-mlops-go/internal/ml"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// splitData holds the three modeling splits as feature matrices
type splitData struct {
	XTrain, XVal, XTest [][]float64
	yTrain, yVal, yTest []float64
}

// Train trains every configured model on the prepared splits, logs metrics
// and registers each fitted model in the registry
func Train(cfg *config.Config, store *tracking.Store, registry *tracking.Registry) error {
	training, err := LoadTrainingConfig(cfg.TrainingConfig)
	if err != nil {
		return err
	}

	data, err := loadSplits(cfg)
	if err != nil {
		return err
	}

	for _, modelCfg := range training.Models {
		if err := trainOne(cfg, store, registry, training.Experiment, modelCfg, data); err != nil {
			return fmt.Errorf("failed to train %s: %w", modelCfg.Name, err)
		}
	}

	return nil
}

func loadSplits(cfg *config.Config) (*splitData, error) {
	var data splitData

	for _, s := range []struct {
		file string
		X    *[][]float64
		y    *[]float64
	}{
		{dataset.TrainFile, &data.XTrain, &data.yTrain},
		{dataset.ValidationFile, &data.XVal, &data.yVal},
		{dataset.TestFile, &data.XTest, &data.yTest},
	} {
		table, err := dataset.ReadCSV(filepath.Join(cfg.CleanedDir(), s.file))
		if err != nil {
			return nil, fmt.Errorf("failed to load split %s: %w", s.file, err)
		}
		if *s.X, *s.y, err = dataset.FeatureMatrix(table); err != nil {
			return nil, fmt.Errorf("failed to extract features from %s: %w", s.file, err)
		}
	}

	return &data, nil
}

func trainOne(cfg *config.Config, store *tracking.Store, registry *tracking.Registry, experiment string, modelCfg ml.Config, data *splitData) error {
	run, err := store.CreateRun(experiment, modelCfg.Name)
	if err != nil {
		return err
	}

	if err := fitAndRegister(cfg, store, registry, modelCfg, data, run.ID); err != nil {
		store.FinishRun(run.ID, models.RunStatusFailed)
		return err
	}

	return store.FinishRun(run.ID, models.RunStatusFinished)
}

func fitAndRegister(cfg *config.Config, store *tracking.Store, registry *tracking.Registry, modelCfg ml.Config, data *splitData, runID string) error {
	log.Printf("[Train] Training %s (%s)", modelCfg.Name, modelCfg.Family)

	model, err := ml.New(modelCfg)
	if err != nil {
		return err
	}

	var scaler *ml.StandardScaler
	XTrain, XVal, XTest := data.XTrain, data.XVal, data.XTest
	if modelCfg.Scale {
		scaler = &ml.StandardScaler{}
		if err := scaler.Fit(data.XTrain); err != nil {
			return err
		}
		if XTrain, err = scaler.Transform(data.XTrain); err != nil {
			return err
		}
		if XVal, err = scaler.Transform(data.XVal); err != nil {
			return err
		}
		if XTest, err = scaler.Transform(data.XTest); err != nil {
			return err
		}
	}

	if err := model.Fit(XTrain, data.yTrain); err != nil {
		return fmt.Errorf("failed to fit model: %w", err)
	}

	metrics, err := evaluateSplits(model, XTrain, XVal, XTest, data)
	if err != nil {
		return err
	}
	log.Printf("[Train] %s: train_rmse=%.4f val_rmse=%.4f test_rmse=%.4f",
		modelCfg.Name, metrics["train_rmse"], metrics["val_rmse"], metrics["test_rmse"])

	if err := store.LogParams(runID, configParams(modelCfg)); err != nil {
		return err
	}
	if err := store.LogMetrics(runID, metrics); err != nil {
		return err
	}

	artifactPath := filepath.Join(cfg.ModelsDir, modelCfg.Name+".json")
	if err := ml.Save(artifactPath, model, scaler); err != nil {
		return err
	}
	if err := store.LogArtifact(runID, artifactPath); err != nil {
		return err
	}

	_, err = registry.Register(modelCfg.Name, runID, artifactPath)
	return err
}

func evaluateSplits(model ml.Regressor, XTrain, XVal, XTest [][]float64, data *splitData) (map[string]float64, error) {
	metrics := make(map[string]float64)

	for _, s := range []struct {
		prefix string
		X      [][]float64
		y      []float64
	}{
		{"train", XTrain, data.yTrain},
		{"val", XVal, data.yVal},
		{"test", XTest, data.yTest},
	} {
		predicted, err := ml.PredictAll(model, s.X)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s split: %w", s.prefix, err)
		}
		metrics[s.prefix+"_rmse"] = ml.RMSE(s.y, predicted)
		metrics[s.prefix+"_mae"] = ml.MAE(s.y, predicted)
		metrics[s.prefix+"_r2"] = ml.R2(s.y, predicted)
	}

	return metrics, nil
}

func configParams(cfg ml.Config) map[string]string {
	params := map[string]string{
		"family": cfg.Family,
		"scale":  strconv.FormatBool(cfg.Scale),
	}
	switch cfg.Family {
	case ml.FamilyRidge:
		params["lambda"] = strconv.FormatFloat(cfg.Lambda, 'g', -1, 64)
	case ml.FamilyRandomForest:
		params["trees"] = strconv.Itoa(cfg.Trees)
		params["max_depth"] = strconv.Itoa(cfg.MaxDepth)
		params["min_samples_leaf"] = strconv.Itoa(cfg.MinSamplesLeaf)
		params["max_features"] = cfg.MaxFeatures
		params["seed"] = strconv.FormatInt(cfg.Seed, 10)
	}
	return params
}
