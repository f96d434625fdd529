package models

// PredictionResponse is returned by the prediction endpoints
type PredictionResponse struct {
	ModelName     string         `json:"model_name"`
	ModelVersion  string         `json:"model_version"`
	Prediction    float64        `json:"prediction"`
	Timestamp     string         `json:"timestamp"`
	InputFeatures EnergyFeatures `json:"input_features"`
}
