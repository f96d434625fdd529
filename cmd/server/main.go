package main

import (
	"log"

	"github.com/mkrogh/energy-mlops-go/internal/api"
	"github.com/mkrogh/energy-mlops-go/internal/config"
	"github.com/mkrogh/energy-mlops-go/internal/database"
	"github.com/mkrogh/energy-mlops-go/internal/handler"
	"github.com/mkrogh/energy-mlops-go/internal/service"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

func main() {
	cfg := config.Load()

	secret, err := cfg.RequireSecret()
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}

	db, err := database.Open(cfg.TrackingDBPath)
	if err != nil {
		log.Fatalf("[Server] Failed to open tracking database: %v", err)
	}
	defer db.Close()

	registry := tracking.NewRegistry(db)

	predictionService := service.NewPredictionService(registry)
	predictionService.LoadModels()

	predictHandler := handler.NewPredictHandler(predictionService)
	modelHandler := handler.NewModelHandler(service.NewModelService(registry))

	router := api.SetupRouter(predictHandler, modelHandler, secret)

	log.Printf("[Server] Listening on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}
