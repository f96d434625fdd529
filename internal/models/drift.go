package models

// FeatureDrift compares one feature's distribution between the reference
// window and the production simulation window
type FeatureDrift struct {
	Feature       string  `json:"feature"`
	RefMean       float64 `json:"ref_mean"`
	ProdMean      float64 `json:"prod_mean"`
	MeanChangePct float64 `json:"mean_change_pct"`
	RefStdDev     float64 `json:"ref_std"`
	ProdStdDev    float64 `json:"prod_std"`
	StdChangePct  float64 `json:"std_change_pct"`
	KSStatistic   float64 `json:"ks_statistic"`
	DriftDetected bool    `json:"drift_detected"`
}

// ModelDrift compares one model's accuracy between the reference window and
// the production simulation window
type ModelDrift struct {
	Model         string  `json:"model"`
	RefRMSE       float64 `json:"ref_rmse"`
	ProdRMSE      float64 `json:"prod_rmse"`
	RMSEChangePct float64 `json:"rmse_change_pct"`
	RefMAE        float64 `json:"ref_mae"`
	ProdMAE       float64 `json:"prod_mae"`
	RefR2         float64 `json:"ref_r2"`
	ProdR2        float64 `json:"prod_r2"`
	Degraded      bool    `json:"degraded"`
}

// DriftReport is the full result of one drift analysis run
type DriftReport struct {
	GeneratedAt     string         `json:"generated_at"`
	ReferenceRows   int            `json:"reference_rows"`
	ProductionRows  int            `json:"production_rows"`
	Features        []FeatureDrift `json:"features"`
	DriftedFeatures int            `json:"drifted_features"`
	Models          []ModelDrift   `json:"models"`
}
