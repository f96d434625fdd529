package models

// LeaderboardEntry is one evaluated candidate from the automated model search
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	Candidate string  `json:"candidate"`
	Family    string  `json:"family"`
	ValRMSE   float64 `json:"val_rmse"`
	ValMAE    float64 `json:"val_mae"`
	ValR2     float64 `json:"val_r2"`
	TrainRMSE float64 `json:"train_rmse"`
	TrainSecs float64 `json:"train_secs"`
}
