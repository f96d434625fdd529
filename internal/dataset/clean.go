package dataset

import (
	"log"
	"strconv"
	"strings"

	"github.com/mkrogh/energy-mlops-go/internal/stats"
)

// outlierFenceMultiplier keeps the target outlier removal conservative:
// only values beyond 3x the interquartile range are dropped.
const outlierFenceMultiplier = 3.0

// isMissing reports whether a raw cell counts as a missing value
func isMissing(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "", "NA", "N/A", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}

// DropMissing removes every row with a missing or unparseable value in any
// retained column. Removal happens on the raw table so that the partition
// cutoffs are computed on the cleaned row count.
func DropMissing(t *Table) *Table {
	retained := RetainedColumns()
	indices := make([]int, 0, len(retained))
	for _, col := range retained {
		indices = append(indices, t.ColumnIndex(col))
	}
	dateIdx := t.ColumnIndex(DateColumn)

	before := t.NumRows()
	cleaned := t.FilterRows(func(row []string) bool {
		for _, idx := range indices {
			if isMissing(row[idx]) {
				return false
			}
			if idx == dateIdx {
				if _, err := ParseDate(row[idx]); err != nil {
					return false
				}
				continue
			}
			if _, err := strconv.ParseFloat(row[idx], 64); err != nil {
				return false
			}
		}
		return true
	})

	if removed := before - cleaned.NumRows(); removed > 0 {
		log.Printf("[Partitioner] Dropped %d rows with missing values (%d remaining)", removed, cleaned.NumRows())
	}

	return cleaned
}

// RemoveTargetOutliers drops rows whose target value falls outside the
// conservative IQR fences. The table must already be free of missing values.
func RemoveTargetOutliers(t *Table) (*Table, error) {
	target, err := t.FloatColumn(TargetColumn)
	if err != nil {
		return nil, err
	}

	lower, upper := stats.IQRBounds(target, outlierFenceMultiplier)
	targetIdx := t.ColumnIndex(TargetColumn)

	before := t.NumRows()
	cleaned := t.FilterRows(func(row []string) bool {
		v, err := strconv.ParseFloat(row[targetIdx], 64)
		if err != nil {
			return false
		}
		return v >= lower && v <= upper
	})

	removed := before - cleaned.NumRows()
	log.Printf("[Partitioner] Target outlier fences [%.2f, %.2f]: removed %d of %d rows",
		lower, upper, removed, before)

	return cleaned, nil
}

// CheckChronology verifies that the date column is non-decreasing. The
// partitioner trusts source ordering and never re-sorts; a violation is
// only reported so the source file can be inspected.
func CheckChronology(t *Table) {
	dateIdx := t.ColumnIndex(DateColumn)
	var prev string
	for i, row := range t.Rows {
		cur := row[dateIdx]
		if i > 0 && cur < prev {
			log.Printf("[Partitioner] Warning: date column is not chronologically ordered at row %d (%s after %s)", i, cur, prev)
			return
		}
		prev = cur
	}
}
