package models

import "time"

// Run statuses in the tracking store
const (
	RunStatusRunning  = "RUNNING"
	RunStatusFinished = "FINISHED"
	RunStatusFailed   = "FAILED"
)

// Model registry stages
const (
	StageNone       = "None"
	StageProduction = "Production"
	StageArchived   = "Archived"
)

// Run is one tracked execution of a pipeline stage
type Run struct {
	ID         string     `json:"id"`
	Experiment string     `json:"experiment"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Metric is a named numeric result logged against a run
type Metric struct {
	RunID string  `json:"run_id"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Param is a named hyperparameter logged against a run
type Param struct {
	RunID string `json:"run_id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ModelVersion is one registered version of a named model
type ModelVersion struct {
	Name         string    `json:"name"`
	Version      int       `json:"version"`
	Stage        string    `json:"stage"`
	RunID        string    `json:"run_id"`
	ArtifactPath string    `json:"artifact_path"`
	CreatedAt    time.Time `json:"created_at"`
}
