package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrogh/energy-mlops-go/internal/automl"
	"github.com/mkrogh/energy-mlops-go/internal/config"
	"github.com/mkrogh/energy-mlops-go/internal/dataset"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// leaderboardFile is the automated search result artifact
const leaderboardFile = "automl_leaderboard.txt"

// Search runs the automated model search over the candidate configurations
// and records the leaderboard in the tracking store
func Search(cfg *config.Config, store *tracking.Store) error {
	training, err := LoadTrainingConfig(cfg.TrainingConfig)
	if err != nil {
		return err
	}
	if len(training.Search) == 0 {
		return fmt.Errorf("training config declares no search candidates")
	}

	run, err := store.CreateRun(training.Experiment, "automl_search")
	if err != nil {
		return err
	}

	if err := search(cfg, store, training, run.ID); err != nil {
		store.FinishRun(run.ID, models.RunStatusFailed)
		return err
	}

	return store.FinishRun(run.ID, models.RunStatusFinished)
}

func search(cfg *config.Config, store *tracking.Store, training *TrainingConfig, runID string) error {
	train, err := dataset.ReadCSV(filepath.Join(cfg.CleanedDir(), dataset.TrainFile))
	if err != nil {
		return fmt.Errorf("failed to load training split: %w", err)
	}
	validate, err := dataset.ReadCSV(filepath.Join(cfg.CleanedDir(), dataset.ValidationFile))
	if err != nil {
		return fmt.Errorf("failed to load validation split: %w", err)
	}

	XTrain, yTrain, err := dataset.FeatureMatrix(train)
	if err != nil {
		return err
	}
	XVal, yVal, err := dataset.FeatureMatrix(validate)
	if err != nil {
		return err
	}

	log.Printf("[AutoML] Searching %d candidates on %d train / %d validation rows",
		len(training.Search), len(XTrain), len(XVal))

	leaderboard, err := automl.RunSearch(training.Search, XTrain, yTrain, XVal, yVal)
	if err != nil {
		return err
	}

	for _, entry := range leaderboard {
		if err := store.LogMetric(runID, "val_rmse_"+entry.Candidate, entry.ValRMSE); err != nil {
			return err
		}
	}

	families := automl.TopFamilies(leaderboard, 3)
	log.Printf("[AutoML] Recommended families for manual training: %s", strings.Join(families, ", "))

	if err := writeLeaderboard(leaderboard, families, leaderboardFile); err != nil {
		return err
	}
	return store.LogArtifact(runID, leaderboardFile)
}

func writeLeaderboard(leaderboard []models.LeaderboardEntry, families []string, path string) error {
	var b strings.Builder
	b.WriteString("Automated Model Search Results\n")
	b.WriteString(strings.Repeat("=", 70) + "\n\n")
	b.WriteString("Recommended model families for manual training:\n")
	for i, f := range families {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f)
	}
	b.WriteString("\nLeaderboard:\n")
	fmt.Fprintf(&b, "%-4s %-28s %-14s %10s %10s %8s\n", "rank", "candidate", "family", "val_rmse", "val_mae", "val_r2")
	for _, e := range leaderboard {
		fmt.Fprintf(&b, "%-4d %-28s %-14s %10.4f %10.4f %8.4f\n", e.Rank, e.Candidate, e.Family, e.ValRMSE, e.ValMAE, e.ValR2)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	log.Printf("[AutoML] Leaderboard saved to %s", path)
	return nil
}
