package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkrogh/energy-mlops-go/internal/service"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
	"github.com/mkrogh/energy-mlops-go/pkg/response"
)

// ModelHandler handles HTTP requests for the model registry
type ModelHandler struct {
	modelService *service.ModelService
}

// NewModelHandler creates a new model handler
func NewModelHandler(modelService *service.ModelService) *ModelHandler {
	return &ModelHandler{
		modelService: modelService,
	}
}

// ListModels handles GET /models
func (h *ModelHandler) ListModels(c *gin.Context) {
	versions, err := h.modelService.List()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models": versions,
		"count":  len(versions),
	})
}

// PromoteModel handles POST /api/v1/models/:name/promote
func (h *ModelHandler) PromoteModel(c *gin.Context) {
	name := c.Param("name")

	versionStr := c.DefaultQuery("version", "0")
	version, err := strconv.Atoi(versionStr)
	if err != nil || version < 0 {
		response.BadRequest(c, "Invalid version parameter")
		return
	}

	mv, err := h.modelService.Promote(name, version)
	if errors.Is(err, tracking.ErrNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, mv)
}
