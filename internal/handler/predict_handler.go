package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkrogh/energy-mlops-go/internal/models"
	"github.com/mkrogh/energy-mlops-go/internal/service"
	"github.com/mkrogh/energy-mlops-go/pkg/response"
)

// PredictHandler handles HTTP requests for predictions
type PredictHandler struct {
	predictionService *service.PredictionService
}

// NewPredictHandler creates a new prediction handler
func NewPredictHandler(predictionService *service.PredictionService) *PredictHandler {
	return &PredictHandler{
		predictionService: predictionService,
	}
}

// PredictModel1 handles POST /predict_model1
func (h *PredictHandler) PredictModel1(c *gin.Context) {
	h.predict(c, "model1")
}

// PredictModel2 handles POST /predict_model2
func (h *PredictHandler) PredictModel2(c *gin.Context) {
	h.predict(c, "model2")
}

// PredictModel3 handles POST /predict_model3
func (h *PredictHandler) PredictModel3(c *gin.Context) {
	h.predict(c, "model3")
}

func (h *PredictHandler) predict(c *gin.Context, slot string) {
	var features models.EnergyFeatures
	if err := c.ShouldBindJSON(&features); err != nil {
		response.BadRequest(c, "Invalid feature payload: "+err.Error())
		return
	}

	result, err := h.predictionService.Predict(slot, &features)
	if errors.Is(err, service.ErrModelNotLoaded) {
		response.ServiceUnavailable(c, "Model not loaded for "+slot)
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// Health handles GET /health
func (h *PredictHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"models_loaded": h.predictionService.LoadedModels(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// Root handles GET /
func (h *PredictHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Energy Consumption Prediction API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"/predict_model1": "Linear regression predictions",
			"/predict_model2": "Ridge regression predictions",
			"/predict_model3": "Random forest predictions",
			"/health":         "Health check",
			"/models":         "List registered models",
		},
	})
}
