package models

// EnergyFeatures is the fixed-shape prediction input: one reading per sensor
// plus the weather-station measurements. Field order matches the training
// feature layout. lights defaults to 0 when omitted.
type EnergyFeatures struct {
	Lights     float64 `json:"lights"`
	T1         float64 `json:"T1" binding:"required"`
	RH1        float64 `json:"RH_1" binding:"required"`
	T2         float64 `json:"T2" binding:"required"`
	RH2        float64 `json:"RH_2" binding:"required"`
	T3         float64 `json:"T3" binding:"required"`
	RH3        float64 `json:"RH_3" binding:"required"`
	T4         float64 `json:"T4" binding:"required"`
	RH4        float64 `json:"RH_4" binding:"required"`
	T5         float64 `json:"T5" binding:"required"`
	RH5        float64 `json:"RH_5" binding:"required"`
	T6         float64 `json:"T6" binding:"required"`
	RH6        float64 `json:"RH_6" binding:"required"`
	T7         float64 `json:"T7" binding:"required"`
	RH7        float64 `json:"RH_7" binding:"required"`
	T8         float64 `json:"T8" binding:"required"`
	RH8        float64 `json:"RH_8" binding:"required"`
	T9         float64 `json:"T9" binding:"required"`
	RH9        float64 `json:"RH_9" binding:"required"`
	TOut       float64 `json:"T_out" binding:"required"`
	PressMmHg  float64 `json:"Press_mm_hg" binding:"required"`
	RHOut      float64 `json:"RH_out" binding:"required"`
	Windspeed  float64 `json:"Windspeed" binding:"required"`
	Visibility float64 `json:"Visibility" binding:"required"`
	Tdewpoint  float64 `json:"Tdewpoint" binding:"required"`
}

// Vector returns the features as a slice in the fixed training column order
func (f *EnergyFeatures) Vector() []float64 {
	return []float64{
		f.Lights,
		f.T1, f.RH1,
		f.T2, f.RH2,
		f.T3, f.RH3,
		f.T4, f.RH4,
		f.T5, f.RH5,
		f.T6, f.RH6,
		f.T7, f.RH7,
		f.T8, f.RH8,
		f.T9, f.RH9,
		f.TOut, f.PressMmHg, f.RHOut,
		f.Windspeed, f.Visibility, f.Tdewpoint,
	}
}
