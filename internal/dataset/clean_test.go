package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropMissingRemovesSentinelsAndUnparseable(t *testing.T) {
	raw := makeRawTable(10)
	targetIdx := raw.ColumnIndex(TargetColumn)
	dateIdx := raw.ColumnIndex(DateColumn)
	t1Idx := raw.ColumnIndex("T1")

	raw.Rows[1][targetIdx] = "NaN"
	raw.Rows[3][t1Idx] = "not-a-number"
	raw.Rows[5][dateIdx] = "yesterday"
	raw.Rows[7][t1Idx] = "  "

	cleaned := DropMissing(raw)
	assert.Equal(t, 6, cleaned.NumRows())
}

func TestDropMissingIgnoresNoiseColumns(t *testing.T) {
	raw := makeRawTable(10)
	rv1Idx := raw.ColumnIndex("rv1")
	raw.Rows[2][rv1Idx] = "NA"

	// Noise columns are dropped anyway, so a missing value there must not
	// cost a row.
	cleaned := DropMissing(raw)
	assert.Equal(t, 10, cleaned.NumRows())
}

func TestRemoveTargetOutliers(t *testing.T) {
	raw := makeRawTable(100)
	targetIdx := raw.ColumnIndex(TargetColumn)

	// Targets run 50..240; push two rows far outside the 3x IQR fences.
	raw.Rows[10][targetIdx] = "100000"
	raw.Rows[20][targetIdx] = "-100000"

	cleaned, err := RemoveTargetOutliers(raw)
	require.NoError(t, err)
	assert.Equal(t, 98, cleaned.NumRows())

	for _, row := range cleaned.Rows {
		assert.NotEqual(t, "100000", row[targetIdx])
		assert.NotEqual(t, "-100000", row[targetIdx])
	}
}

func TestRemoveTargetOutliersKeepsModerateValues(t *testing.T) {
	raw := makeRawTable(100)

	cleaned, err := RemoveTargetOutliers(raw)
	require.NoError(t, err)
	assert.Equal(t, 100, cleaned.NumRows())
}

func TestRemoveTargetOutliersMissingColumn(t *testing.T) {
	raw := makeRawTable(10).DropColumns(TargetColumn)

	_, err := RemoveTargetOutliers(raw)
	require.Error(t, err)
}
