package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyFeaturesVectorOrder(t *testing.T) {
	f := EnergyFeatures{
		Lights: 1,
		T1:     2, RH1: 3,
		T2: 4, RH2: 5,
		T3: 6, RH3: 7,
		T4: 8, RH4: 9,
		T5: 10, RH5: 11,
		T6: 12, RH6: 13,
		T7: 14, RH7: 15,
		T8: 16, RH8: 17,
		T9: 18, RH9: 19,
		TOut: 20, PressMmHg: 21, RHOut: 22,
		Windspeed: 23, Visibility: 24, Tdewpoint: 25,
	}

	v := f.Vector()
	require.Len(t, v, 25)
	for i, got := range v {
		assert.Equal(t, float64(i+1), got, "position %d", i)
	}
}

func TestEnergyFeaturesJSONNames(t *testing.T) {
	data, err := json.Marshal(EnergyFeatures{})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, name := range []string{"lights", "T1", "RH_1", "T_out", "Press_mm_hg", "RH_out", "Tdewpoint"} {
		assert.Contains(t, fields, name)
	}
}
