package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/mkrogh/energy-mlops-go/internal/ml"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// ErrModelNotLoaded is returned when predictions are requested from a slot
// whose model could not be loaded at startup
var ErrModelNotLoaded = errors.New("model not loaded")

// ModelSlot maps a serving endpoint to a registered model name
type ModelSlot struct {
	Key          string
	RegistryName string
}

// DefaultSlots are the three models the API serves
var DefaultSlots = []ModelSlot{
	{Key: "model1", RegistryName: "Linear_Energy_Model"},
	{Key: "model2", RegistryName: "Ridge_Energy_Model"},
	{Key: "model3", RegistryName: "RandomForest_Energy_Model"},
}

type loadedModel struct {
	name      string
	version   string
	regressor ml.Regressor
	scaler    *ml.StandardScaler
}

// PredictionService serves predictions from registered models loaded once
// at startup
type PredictionService struct {
	registry *tracking.Registry
	slots    map[string]*loadedModel
}

// NewPredictionService creates a new prediction service
func NewPredictionService(registry *tracking.Registry) *PredictionService {
	return &PredictionService{
		registry: registry,
		slots:    make(map[string]*loadedModel),
	}
}

// LoadModels resolves each serving slot against the registry, preferring the
// Production stage and falling back to the latest version. A slot that cannot
// be loaded is logged and left empty; the API reports 503 for it.
func (s *PredictionService) LoadModels() {
	for _, slot := range DefaultSlots {
		mv, err := s.registry.Production(slot.RegistryName)
		if err == nil && mv == nil {
			mv, err = s.registry.Latest(slot.RegistryName)
		}
		if err != nil || mv == nil {
			log.Printf("[Prediction] Warning: no registered version of %s: %v", slot.RegistryName, err)
			continue
		}

		regressor, scaler, err := ml.Load(mv.ArtifactPath)
		if err != nil {
			log.Printf("[Prediction] Warning: failed to load %s: %v", slot.RegistryName, err)
			continue
		}

		s.slots[slot.Key] = &loadedModel{
			name:      mv.Name,
			version:   strconv.Itoa(mv.Version),
			regressor: regressor,
			scaler:    scaler,
		}
		log.Printf("[Prediction] Loaded %s version %d for %s", mv.Name, mv.Version, slot.Key)
	}
}

// LoadedModels returns the registry names of every loaded slot
func (s *PredictionService) LoadedModels() []string {
	var names []string
	for _, slot := range DefaultSlots {
		if lm, ok := s.slots[slot.Key]; ok {
			names = append(names, lm.name)
		}
	}
	return names
}

// Predict runs one feature vector through the model in the given slot
func (s *PredictionService) Predict(slotKey string, features *models.EnergyFeatures) (*models.PredictionResponse, error) {
	lm, ok := s.slots[slotKey]
	if !ok {
		return nil, ErrModelNotLoaded
	}

	x := features.Vector()
	if lm.scaler != nil {
		scaled, err := lm.scaler.TransformRow(x)
		if err != nil {
			return nil, fmt.Errorf("failed to scale features: %w", err)
		}
		x = scaled
	}

	prediction, err := lm.regressor.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}

	return &models.PredictionResponse{
		ModelName:     lm.name,
		ModelVersion:  lm.version,
		Prediction:    prediction,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		InputFeatures: *features,
	}, nil
}
