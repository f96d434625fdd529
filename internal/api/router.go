package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkrogh/energy-mlops-go/internal/handler"
	"github.com/mkrogh/energy-mlops-go/internal/middleware"
)

// SetupRouter wires the prediction API routes
func SetupRouter(predictHandler *handler.PredictHandler, modelHandler *handler.ModelHandler, tokenSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/", predictHandler.Root)
	r.GET("/health", predictHandler.Health)
	r.GET("/models", modelHandler.ListModels)

	// Prediction endpoints, rate limited per client
	predict := r.Group("/")
	predict.Use(middleware.RateLimit(120, time.Minute))
	{
		predict.POST("/predict_model1", predictHandler.PredictModel1)
		predict.POST("/predict_model2", predictHandler.PredictModel2)
		predict.POST("/predict_model3", predictHandler.PredictModel3)
	}

	// Registry mutations require a bearer token
	admin := r.Group("/api/v1")
	admin.Use(middleware.Auth(tokenSecret))
	{
		admin.POST("/models/:name/promote", modelHandler.PromoteModel)
	}

	return r
}
