package tracking

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkrogh/energy-mlops-go/internal/models"
)

// Store records runs, parameters, metrics and artifacts for pipeline stages
type Store struct {
	db *sql.DB
}

// NewStore creates a new tracking store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateRun starts a new tracked run
func (s *Store) CreateRun(experiment, name string) (*models.Run, error) {
	run := &models.Run{
		ID:         uuid.NewString(),
		Experiment: experiment,
		Name:       name,
		Status:     models.RunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (id, experiment, name, status, started_at) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Experiment, run.Name, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// FinishRun marks a run as finished or failed
func (s *Store) FinishRun(runID, status string) error {
	res, err := s.db.Exec(
		"UPDATE runs SET status = ?, finished_at = ? WHERE id = ?",
		status, time.Now().UTC(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// LogParam records one hyperparameter for a run
func (s *Store) LogParam(runID, key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO params (run_id, key, value) VALUES (?, ?, ?)",
		runID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to log param %s: %w", key, err)
	}
	return nil
}

// LogParams records a batch of hyperparameters for a run
func (s *Store) LogParams(runID string, params map[string]string) error {
	for key, value := range params {
		if err := s.LogParam(runID, key, value); err != nil {
			return err
		}
	}
	return nil
}

// LogMetric records one numeric result for a run
func (s *Store) LogMetric(runID, key string, value float64) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO metrics (run_id, key, value) VALUES (?, ?, ?)",
		runID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to log metric %s: %w", key, err)
	}
	return nil
}

// LogMetrics records a batch of numeric results for a run
func (s *Store) LogMetrics(runID string, metrics map[string]float64) error {
	for key, value := range metrics {
		if err := s.LogMetric(runID, key, value); err != nil {
			return err
		}
	}
	return nil
}

// LogArtifact records the path of a file produced by a run
func (s *Store) LogArtifact(runID, path string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO artifacts (run_id, path) VALUES (?, ?)",
		runID, path,
	)
	if err != nil {
		return fmt.Errorf("failed to log artifact %s: %w", path, err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *Store) GetRun(runID string) (*models.Run, error) {
	run := &models.Run{}
	var finishedAt sql.NullTime

	err := s.db.QueryRow(
		"SELECT id, experiment, name, status, started_at, finished_at FROM runs WHERE id = ?",
		runID,
	).Scan(&run.ID, &run.Experiment, &run.Name, &run.Status, &run.StartedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return run, nil
}

// RunMetrics retrieves every metric logged against a run
func (s *Store) RunMetrics(runID string) (map[string]float64, error) {
	rows, err := s.db.Query("SELECT key, value FROM metrics WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	metrics := make(map[string]float64)
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics[key] = value
	}

	return metrics, nil
}
