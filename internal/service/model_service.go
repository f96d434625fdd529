package service

import (
	"fmt"

	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// ModelService handles business logic for the model registry endpoints
type ModelService struct {
	registry *tracking.Registry
}

// NewModelService creates a new model service
func NewModelService(registry *tracking.Registry) *ModelService {
	return &ModelService{registry: registry}
}

// List returns every registered model version
func (s *ModelService) List() ([]models.ModelVersion, error) {
	versions, err := s.registry.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list registered models: %w", err)
	}
	return versions, nil
}

// Promote transitions a model version to Production. Version 0 selects the
// latest registered version.
func (s *ModelService) Promote(name string, version int) (*models.ModelVersion, error) {
	if version == 0 {
		latest, err := s.registry.Latest(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve latest version of %s: %w", name, err)
		}
		if latest == nil {
			return nil, fmt.Errorf("no versions found for %s: %w", name, tracking.ErrNotFound)
		}
		version = latest.Version
	}

	return s.registry.Promote(name, version)
}
