package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDropColumns(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
	}

	dropped := table.DropColumns("b", "missing")
	assert.Equal(t, []string{"a", "c"}, dropped.Columns)
	assert.Equal(t, [][]string{{"1", "3"}, {"4", "6"}}, dropped.Rows)

	// The receiver is untouched.
	assert.Equal(t, []string{"a", "b", "c"}, table.Columns)
}

func TestTableFloatColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"x"},
		Rows:    [][]string{{"1.5"}, {"-2"}},
	}

	values, err := table.FloatColumn("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2}, values)

	_, err = table.FloatColumn("missing")
	assert.Error(t, err)

	table.Rows[0][0] = "oops"
	_, err = table.FloatColumn("x")
	assert.Error(t, err)
}

func TestTableSlice(t *testing.T) {
	table := &Table{
		Columns: []string{"x"},
		Rows:    [][]string{{"0"}, {"1"}, {"2"}, {"3"}},
	}

	middle := table.Slice(1, 3)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, middle.Rows)
	assert.Equal(t, table.Columns, middle.Columns)
}

func TestFeatureMatrixSchemaOrder(t *testing.T) {
	splits, err := Partition(makeRawTable(30))
	require.NoError(t, err)

	X, y, err := FeatureMatrix(splits.Train)
	require.NoError(t, err)
	require.Len(t, X, splits.Train.NumRows())
	require.Len(t, y, splits.Train.NumRows())
	assert.Len(t, X[0], len(FeatureColumns))

	// Spot check the first row against the raw cells.
	lights, err := splits.Train.FloatColumn("lights")
	require.NoError(t, err)
	assert.Equal(t, lights[0], X[0][0])

	target, err := splits.Train.FloatColumn(TargetColumn)
	require.NoError(t, err)
	assert.Equal(t, target[0], y[0])
}

func TestFeatureMatrixMissingColumn(t *testing.T) {
	table := &Table{Columns: []string{"x"}, Rows: [][]string{{"1"}}}
	_, _, err := FeatureMatrix(table)
	assert.Error(t, err)
}
