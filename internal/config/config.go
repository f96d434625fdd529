package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds process-wide configuration loaded at startup
type Config struct {
	Port           string
	DataDir        string // root for raw/cleaned/drift CSV artifacts
	ModelsDir      string // serialized model files
	TrackingDBPath string // sqlite experiment tracking store
	TrainingConfig string // yaml file with model and search configurations
	APITokenSecret string // HMAC secret for promotion endpoint tokens
}

// Load loads configuration from the environment, falling back to defaults.
// A .env file in the working directory is applied first if present.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8000"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	modelsDir := os.Getenv("MODELS_DIR")
	if modelsDir == "" {
		modelsDir = "./models"
	}

	trackingDB := os.Getenv("TRACKING_DB_PATH")
	if trackingDB == "" {
		trackingDB = "./tracking/tracking.db"
	}

	trainingConfig := os.Getenv("TRAINING_CONFIG")
	if trainingConfig == "" {
		trainingConfig = "./configs/training.yaml"
	}

	return &Config{
		Port:           port,
		DataDir:        dataDir,
		ModelsDir:      modelsDir,
		TrackingDBPath: trackingDB,
		TrainingConfig: trainingConfig,
		APITokenSecret: os.Getenv("API_TOKEN_SECRET"),
	}
}

// RequireSecret returns the token secret or an error when it is unset.
// Components that mutate the model registry over HTTP need it at startup.
func (c *Config) RequireSecret() (string, error) {
	if c.APITokenSecret == "" {
		return "", fmt.Errorf("API_TOKEN_SECRET is not set")
	}
	return c.APITokenSecret, nil
}

// RawDataPath returns the location of the immutable source dataset.
func (c *Config) RawDataPath() string {
	return filepath.Join(c.DataDir, "raw", "energydata_complete.csv")
}

// CleanedDir returns the directory holding train/validate/test splits.
func (c *Config) CleanedDir() string {
	return filepath.Join(c.DataDir, "cleaned")
}

// DriftDir returns the directory holding the production simulation slice.
func (c *Config) DriftDir() string {
	return filepath.Join(c.DataDir, "drift")
}
