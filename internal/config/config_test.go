package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_DIR", "MODELS_DIR", "TRACKING_DB_PATH", "TRAINING_CONFIG", "API_TOKEN_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8000", cfg.Port)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./models", cfg.ModelsDir)
	assert.Equal(t, "./tracking/tracking.db", cfg.TrackingDBPath)
	assert.Equal(t, "./configs/training.yaml", cfg.TrainingConfig)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("DATA_DIR", "/var/energy/data")
	t.Setenv("API_TOKEN_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "/var/energy/data", cfg.DataDir)

	secret, err := cfg.RequireSecret()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestRequireSecretUnset(t *testing.T) {
	t.Setenv("API_TOKEN_SECRET", "")

	_, err := Load().RequireSecret()
	assert.Error(t, err)
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}

	assert.Equal(t, filepath.Join("/data", "raw", "energydata_complete.csv"), cfg.RawDataPath())
	assert.Equal(t, filepath.Join("/data", "cleaned"), cfg.CleanedDir())
	assert.Equal(t, filepath.Join("/data", "drift"), cfg.DriftDir())
}
