package tracking

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/energy-mlops-go/internal/database"
	"github.com/mkrogh/energy-mlops-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "tracking.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// createRun starts a tracked run to register model versions against; the
// registry only accepts run IDs that exist in the tracking store
func createRun(t *testing.T, store *Store) string {
	t.Helper()
	run, err := store.CreateRun("energy-test", "training")
	require.NoError(t, err)
	return run.ID
}

func TestStoreRunLifecycle(t *testing.T) {
	store := NewStore(openTestDB(t))

	run, err := store.CreateRun("energy-test", "data_preparation")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, models.RunStatusRunning, run.Status)

	require.NoError(t, store.FinishRun(run.ID, models.RunStatusFinished))

	fetched, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFinished, fetched.Status)
	assert.Equal(t, "data_preparation", fetched.Name)
	require.NotNil(t, fetched.FinishedAt)
}

func TestStoreFinishUnknownRun(t *testing.T) {
	store := NewStore(openTestDB(t))
	assert.Error(t, store.FinishRun("no-such-run", models.RunStatusFinished))
}

func TestStoreParamsAndMetrics(t *testing.T) {
	store := NewStore(openTestDB(t))

	run, err := store.CreateRun("energy-test", "training")
	require.NoError(t, err)

	require.NoError(t, store.LogParams(run.ID, map[string]string{
		"family": "ridge",
		"lambda": "1.0",
	}))
	require.NoError(t, store.LogMetrics(run.ID, map[string]float64{
		"val_rmse": 80.5,
		"val_r2":   0.42,
	}))

	// Relogging a metric replaces the previous value.
	require.NoError(t, store.LogMetric(run.ID, "val_rmse", 75.0))

	metrics, err := store.RunMetrics(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, metrics["val_rmse"])
	assert.Equal(t, 0.42, metrics["val_r2"])
}

func TestStoreLogArtifact(t *testing.T) {
	store := NewStore(openTestDB(t))

	run, err := store.CreateRun("energy-test", "drift_analysis")
	require.NoError(t, err)

	assert.NoError(t, store.LogArtifact(run.ID, "drift_analysis_report.html"))
}

func TestRegistryVersionsIncrementPerName(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	registry := NewRegistry(db)

	v1, err := registry.Register("Linear_Energy_Model", createRun(t, store), "models/linear.json")
	require.NoError(t, err)
	v2, err := registry.Register("Linear_Energy_Model", createRun(t, store), "models/linear.json")
	require.NoError(t, err)
	other, err := registry.Register("Ridge_Energy_Model", createRun(t, store), "models/ridge.json")
	require.NoError(t, err)

	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, 2, v2.Version)
	assert.Equal(t, 1, other.Version)
	assert.Equal(t, models.StageNone, v2.Stage)

	latest, err := registry.Latest("Linear_Energy_Model")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.Version)
}

func TestRegistryPromoteArchivesPrevious(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	registry := NewRegistry(db)

	_, err := registry.Register("Linear_Energy_Model", createRun(t, store), "models/linear.json")
	require.NoError(t, err)
	_, err = registry.Register("Linear_Energy_Model", createRun(t, store), "models/linear.json")
	require.NoError(t, err)

	promoted, err := registry.Promote("Linear_Energy_Model", 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageProduction, promoted.Stage)

	promoted, err = registry.Promote("Linear_Energy_Model", 2)
	require.NoError(t, err)
	assert.Equal(t, models.StageProduction, promoted.Stage)

	// Only one version may hold Production at a time.
	production, err := registry.Production("Linear_Energy_Model")
	require.NoError(t, err)
	require.NotNil(t, production)
	assert.Equal(t, 2, production.Version)

	versions, err := registry.List()
	require.NoError(t, err)
	require.Len(t, versions, 2)
	stages := map[int]string{}
	for _, mv := range versions {
		stages[mv.Version] = mv.Stage
	}
	assert.Equal(t, models.StageArchived, stages[1])
	assert.Equal(t, models.StageProduction, stages[2])
}

func TestRegistryPromoteUnknownVersion(t *testing.T) {
	registry := NewRegistry(openTestDB(t))

	_, err := registry.Promote("Linear_Energy_Model", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryRejectsUnknownRun(t *testing.T) {
	registry := NewRegistry(openTestDB(t))

	// model_registry.run_id references runs(id), so a version cannot be
	// registered out of band.
	_, err := registry.Register("Linear_Energy_Model", "no-such-run", "models/linear.json")
	assert.Error(t, err)
}

func TestRegistryProductionEmpty(t *testing.T) {
	registry := NewRegistry(openTestDB(t))

	mv, err := registry.Production("Linear_Energy_Model")
	require.NoError(t, err)
	assert.Nil(t, mv)

	mv, err = registry.Latest("Linear_Energy_Model")
	require.NoError(t, err)
	assert.Nil(t, mv)
}
