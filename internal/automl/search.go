package automl

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/mkrogh/energy-mlops-go/internal/ml"
	"github.com/mkrogh/energy-mlops-go/internal/models"
)

// RunSearch trains every candidate configuration on the training split,
// evaluates it on the validation split and returns a leaderboard ranked by
// validation RMSE. Candidates run sequentially with fixed seeds, so repeated
// searches on the same data produce the same ranking.
func RunSearch(candidates []ml.Config, XTrain [][]float64, yTrain []float64, XVal [][]float64, yVal []float64) ([]models.LeaderboardEntry, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate configurations to search")
	}

	entries := make([]models.LeaderboardEntry, 0, len(candidates))
	for _, cfg := range candidates {
		entry, err := evaluate(cfg, XTrain, yTrain, XVal, yVal)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate candidate %s: %w", cfg.Name, err)
		}
		log.Printf("[AutoML] %s: val_rmse=%.4f val_mae=%.4f", cfg.Name, entry.ValRMSE, entry.ValMAE)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ValRMSE < entries[j].ValRMSE
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func evaluate(cfg ml.Config, XTrain [][]float64, yTrain []float64, XVal [][]float64, yVal []float64) (models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry

	model, err := ml.New(cfg)
	if err != nil {
		return entry, err
	}

	trainX, valX := XTrain, XVal
	if cfg.Scale {
		scaler := &ml.StandardScaler{}
		if err := scaler.Fit(XTrain); err != nil {
			return entry, err
		}
		if trainX, err = scaler.Transform(XTrain); err != nil {
			return entry, err
		}
		if valX, err = scaler.Transform(XVal); err != nil {
			return entry, err
		}
	}

	started := time.Now()
	if err := model.Fit(trainX, yTrain); err != nil {
		return entry, err
	}
	elapsed := time.Since(started)

	trainPred, err := ml.PredictAll(model, trainX)
	if err != nil {
		return entry, err
	}
	valPred, err := ml.PredictAll(model, valX)
	if err != nil {
		return entry, err
	}

	return models.LeaderboardEntry{
		Candidate: cfg.Name,
		Family:    cfg.Family,
		ValRMSE:   ml.RMSE(yVal, valPred),
		ValMAE:    ml.MAE(yVal, valPred),
		ValR2:     ml.R2(yVal, valPred),
		TrainRMSE: ml.RMSE(yTrain, trainPred),
		TrainSecs: elapsed.Seconds(),
	}, nil
}

// TopFamilies returns the first n distinct model families in leaderboard
// order; these are the families recommended for manual training.
func TopFamilies(entries []models.LeaderboardEntry, n int) []string {
	seen := make(map[string]bool)
	var families []string
	for _, e := range entries {
		if seen[e.Family] {
			continue
		}
		seen[e.Family] = true
		families = append(families, e.Family)
		if len(families) == n {
			break
		}
	}
	return families
}
