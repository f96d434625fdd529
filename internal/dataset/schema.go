package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Column names of the raw energy consumption dataset.
const (
	DateColumn   = "date"
	TargetColumn = "Appliances"
)

// NoiseColumns carry no predictive signal and are excluded from every split
var NoiseColumns = []string{"rv1", "rv2"}

// FeatureColumns are the numeric predictors, in the order models consume them
var FeatureColumns = []string{
	"lights",
	"T1", "RH_1",
	"T2", "RH_2",
	"T3", "RH_3",
	"T4", "RH_4",
	"T5", "RH_5",
	"T6", "RH_6",
	"T7", "RH_7",
	"T8", "RH_8",
	"T9", "RH_9",
	"T_out", "Press_mm_hg", "RH_out",
	"Windspeed", "Visibility", "Tdewpoint",
}

// RequiredColumns returns every column the raw table must contain
func RequiredColumns() []string {
	cols := []string{DateColumn}
	cols = append(cols, FeatureColumns...)
	cols = append(cols, TargetColumn)
	cols = append(cols, NoiseColumns...)
	return cols
}

// RetainedColumns returns the columns every split carries: the raw set minus
// the noise columns, target included
func RetainedColumns() []string {
	cols := []string{DateColumn}
	cols = append(cols, FeatureColumns...)
	cols = append(cols, TargetColumn)
	return cols
}

// dateLayouts lists the timestamp formats accepted for the date column
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses a raw date cell
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date value %q", s)
}

// ValidateSchema checks that the table is non-empty and carries the full
// raw column set. Returns a validation error describing every missing column.
func ValidateSchema(t *Table) error {
	if t == nil || t.NumRows() == 0 {
		return fmt.Errorf("input table is empty")
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("input table is missing required columns: %s", strings.Join(missing, ", "))
	}

	return nil
}
