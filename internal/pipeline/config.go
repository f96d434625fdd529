package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkrogh/energy-mlops-go/internal/ml"
)

// TrainingConfig declares the manually trained models and the automated
// search candidates
type TrainingConfig struct {
	Experiment string      `yaml:"experiment"`
	Models     []ml.Config `yaml:"models"`
	Search     []ml.Config `yaml:"search"`
}

// LoadTrainingConfig reads and validates the yaml training configuration
func LoadTrainingConfig(path string) (*TrainingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training config: %w", err)
	}

	var cfg TrainingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse training config: %w", err)
	}

	if cfg.Experiment == "" {
		cfg.Experiment = "energy-consumption-prediction"
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("training config declares no models")
	}
	for _, m := range cfg.Models {
		if m.Name == "" {
			return nil, fmt.Errorf("training config contains a model without a name")
		}
	}

	return &cfg, nil
}
