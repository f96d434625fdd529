package tracking

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mkrogh/energy-mlops-go/internal/database"
	"github.com/mkrogh/energy-mlops-go/internal/models"
)

// ErrNotFound is returned when a named model or version is not registered
var ErrNotFound = errors.New("model version not found")

// Registry manages named, versioned model entries and their stages
type Registry struct {
	db *sql.DB
}

// NewRegistry creates a new model registry
func NewRegistry(db *sql.DB) *Registry {
	return &Registry{db: db}
}

// Register stores a new version of a named model. Versions start at 1 and
// increment per model name; new versions enter in stage None.
func (r *Registry) Register(name, runID, artifactPath string) (*models.ModelVersion, error) {
	mv := &models.ModelVersion{
		Name:         name,
		Stage:        models.StageNone,
		RunID:        runID,
		ArtifactPath: artifactPath,
		CreatedAt:    time.Now().UTC(),
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		var maxVersion sql.NullInt64
		if err := tx.QueryRow(
			"SELECT MAX(version) FROM model_registry WHERE name = ?", name,
		).Scan(&maxVersion); err != nil {
			return fmt.Errorf("failed to query latest version of %s: %w", name, err)
		}
		mv.Version = int(maxVersion.Int64) + 1

		if _, err := tx.Exec(
			"INSERT INTO model_registry (name, version, stage, run_id, artifact_path, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			mv.Name, mv.Version, mv.Stage, mv.RunID, mv.ArtifactPath, mv.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to register %s version %d: %w", name, mv.Version, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Registry] Registered %s version %d", mv.Name, mv.Version)
	return mv, nil
}

// Promote transitions a model version to Production, archiving any version
// of the same model currently in Production
func (r *Registry) Promote(name string, version int) (*models.ModelVersion, error) {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRow(
			"SELECT COUNT(*) FROM model_registry WHERE name = ? AND version = ?", name, version,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to look up %s version %d: %w", name, version, err)
		}
		if exists == 0 {
			return fmt.Errorf("model %s version %d: %w", name, version, ErrNotFound)
		}

		if _, err := tx.Exec(
			"UPDATE model_registry SET stage = ? WHERE name = ? AND stage = ?",
			models.StageArchived, name, models.StageProduction,
		); err != nil {
			return fmt.Errorf("failed to archive production versions of %s: %w", name, err)
		}

		if _, err := tx.Exec(
			"UPDATE model_registry SET stage = ? WHERE name = ? AND version = ?",
			models.StageProduction, name, version,
		); err != nil {
			return fmt.Errorf("failed to promote %s version %d: %w", name, version, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Registry] Promoted %s version %d to Production", name, version)
	return r.get(name, version)
}

// Latest returns the highest registered version of a named model
func (r *Registry) Latest(name string) (*models.ModelVersion, error) {
	return r.scanOne(
		"SELECT name, version, stage, run_id, artifact_path, created_at FROM model_registry WHERE name = ? ORDER BY version DESC LIMIT 1",
		name,
	)
}

// Production returns the version of a named model currently in Production
func (r *Registry) Production(name string) (*models.ModelVersion, error) {
	return r.scanOne(
		"SELECT name, version, stage, run_id, artifact_path, created_at FROM model_registry WHERE name = ? AND stage = ? LIMIT 1",
		name, models.StageProduction,
	)
}

// List returns every registered model version, newest first
func (r *Registry) List() ([]models.ModelVersion, error) {
	rows, err := r.db.Query(
		"SELECT name, version, stage, run_id, artifact_path, created_at FROM model_registry ORDER BY name, version DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var versions []models.ModelVersion
	for rows.Next() {
		var mv models.ModelVersion
		if err := rows.Scan(&mv.Name, &mv.Version, &mv.Stage, &mv.RunID, &mv.ArtifactPath, &mv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan model version: %w", err)
		}
		versions = append(versions, mv)
	}

	return versions, nil
}

func (r *Registry) get(name string, version int) (*models.ModelVersion, error) {
	return r.scanOne(
		"SELECT name, version, stage, run_id, artifact_path, created_at FROM model_registry WHERE name = ? AND version = ?",
		name, version,
	)
}

func (r *Registry) scanOne(query string, args ...interface{}) (*models.ModelVersion, error) {
	var mv models.ModelVersion
	err := r.db.QueryRow(query, args...).Scan(
		&mv.Name, &mv.Version, &mv.Stage, &mv.RunID, &mv.ArtifactPath, &mv.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query model version: %w", err)
	}
	return &mv, nil
}
