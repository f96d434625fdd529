package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/energy-mlops-go/internal/database"
	"github.com/mkrogh/energy-mlops-go/internal/dataset"
	"github.com/mkrogh/energy-mlops-go/internal/handler"
	"github.com/mkrogh/energy-mlops-go/internal/middleware"
	"github.com/mkrogh/energy-mlops-go/internal/ml"
	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/service"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

const testSecret = "router-test-secret"

// setupTestRouter registers a fitted linear model into slot model1 and wires
// the full router against a temporary tracking database. Slots model2 and
// model3 are left unloaded.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := database.Open(filepath.Join(dir, "tracking.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	registry := tracking.NewRegistry(db)
	store := tracking.NewStore(db)

	p := len(dataset.FeatureColumns)
	rng := rand.New(rand.NewSource(9))
	n := 4 * p
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, p)
		target := 50.0
		for j := 0; j < p; j++ {
			row[j] = rng.Float64() * 10
			target += row[j]
		}
		X[i] = row
		y[i] = target
	}

	model := &ml.LinearRegression{}
	require.NoError(t, model.Fit(X, y))

	artifactPath := filepath.Join(dir, "Linear_Energy_Model.json")
	require.NoError(t, ml.Save(artifactPath, model, nil))

	run, err := store.CreateRun("energy-router-test", "training")
	require.NoError(t, err)
	_, err = registry.Register("Linear_Energy_Model", run.ID, artifactPath)
	require.NoError(t, err)

	predictionService := service.NewPredictionService(registry)
	predictionService.LoadModels()

	return SetupRouter(
		handler.NewPredictHandler(predictionService),
		handler.NewModelHandler(service.NewModelService(registry)),
		testSecret,
	)
}

func validFeatures() models.EnergyFeatures {
	return models.EnergyFeatures{
		Lights: 10,
		T1: 21.5, RH1: 40.2,
		T2: 20.1, RH2: 41.5,
		T3: 22.3, RH3: 39.8,
		T4: 21.0, RH4: 40.0,
		T5: 19.8, RH5: 45.1,
		T6: 8.5, RH6: 75.2,
		T7: 20.5, RH7: 38.9,
		T8: 22.1, RH8: 42.3,
		T9: 19.2, RH9: 44.6,
		TOut: 7.3, PressMmHg: 755.4, RHOut: 85.0,
		Windspeed: 4.2, Visibility: 38.0, Tdewpoint: 5.1,
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestPredictReturnsPrediction(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/predict_model1", validFeatures(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.PredictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Linear_Energy_Model", body.ModelName)
	assert.Equal(t, "1", body.ModelVersion)
	assert.NotZero(t, body.Prediction)
}

func TestPredictRejectsIncompletePayload(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/predict_model1", map[string]float64{"T1": 21.5}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictUnloadedSlot(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/predict_model2", validFeatures(), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListModels(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/models", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count  int                   `json:"count"`
		Models []models.ModelVersion `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Linear_Energy_Model", body.Models[0].Name)
	assert.Equal(t, models.StageNone, body.Models[0].Stage)
}

func TestPromoteRequiresToken(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/models/Linear_Energy_Model/promote", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/models/Linear_Energy_Model/promote", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPromoteWithToken(t *testing.T) {
	router := setupTestRouter(t)

	token, err := middleware.NewToken(testSecret, "test", time.Minute)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/v1/models/Linear_Energy_Model/promote", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The promoted version is now served as Production.
	w = doJSON(t, router, http.MethodGet, "/models", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Models []models.ModelVersion `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Models, 1)
	assert.Equal(t, models.StageProduction, body.Models[0].Stage)
}

func TestPromoteUnknownModelReturnsNotFound(t *testing.T) {
	router := setupTestRouter(t)

	token, err := middleware.NewToken(testSecret, "test", time.Minute)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/v1/models/No_Such_Model/promote", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	router := setupTestRouter(t)

	token, err := middleware.NewToken("different-secret", "test", time.Minute)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/v1/models/Linear_Energy_Model/promote", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
