package dataset

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
)

// Split fractions of the cleaned row count. Train and validation take the
// first two 35% windows by integer cutoff; the remainder is the test window.
// The production simulation slice is the final 20% of the full sequence and
// therefore overlaps the tail of the test window by construction.
const (
	TrainFraction      = 0.35
	ValidationFraction = 0.35
	DriftFraction      = 0.20
)

// Artifact file names, relative to the cleaned and drift directories.
const (
	TrainFile      = "train.csv"
	ValidationFile = "validate.csv"
	TestFile       = "test.csv"
	DriftFile      = "production_data.csv"
)

// Splits holds the four chronological slices produced by Partition
type Splits struct {
	Train           *Table
	Validation      *Table
	Test            *Table
	DriftProduction *Table
}

// Partition validates the raw table, removes rows with missing values,
// drops the noise columns and slices the cleaned sequence by row position
// into the four chronological splits. No shuffling, no re-sorting.
func Partition(raw *Table) (*Splits, error) {
	if err := ValidateSchema(raw); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	cleaned := DropMissing(raw)
	if cleaned.NumRows() == 0 {
		return nil, fmt.Errorf("input validation failed: no rows remain after removing missing values")
	}

	CheckChronology(cleaned)

	// Noise columns are excluded from every downstream slice; the target
	// stays in so training scripts can separate features themselves.
	cleaned = cleaned.DropColumns(NoiseColumns...)

	n := cleaned.NumRows()
	trainEnd := int(math.Floor(TrainFraction * float64(n)))
	validateEnd := trainEnd + int(math.Floor(ValidationFraction*float64(n)))
	driftStart := n - int(math.Ceil(DriftFraction*float64(n)))

	splits := &Splits{
		Train:           cleaned.Slice(0, trainEnd),
		Validation:      cleaned.Slice(trainEnd, validateEnd),
		Test:            cleaned.Slice(validateEnd, n),
		DriftProduction: cleaned.Slice(driftStart, n),
	}

	if splits.Train.NumRows() == 0 || splits.Validation.NumRows() == 0 || splits.Test.NumRows() == 0 {
		return nil, fmt.Errorf("input validation failed: %d rows are too few to form non-empty splits", n)
	}

	log.Printf("[Partitioner] Split %d rows: train=%d validate=%d test=%d drift_production=%d",
		n, splits.Train.NumRows(), splits.Validation.NumRows(), splits.Test.NumRows(), splits.DriftProduction.NumRows())

	return splits, nil
}

// WriteSplits persists the four splits to their fixed locations. All four
// files are staged to temporary paths first and renamed into place only
// once every write succeeded, so downstream stages never observe a partial
// partition.
func WriteSplits(s *Splits, cleanedDir, driftDir string) error {
	for _, dir := range []string{cleanedDir, driftDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	outputs := []struct {
		table *Table
		path  string
	}{
		{s.Train, filepath.Join(cleanedDir, TrainFile)},
		{s.Validation, filepath.Join(cleanedDir, ValidationFile)},
		{s.Test, filepath.Join(cleanedDir, TestFile)},
		{s.DriftProduction, filepath.Join(driftDir, DriftFile)},
	}

	staged := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, out := range outputs {
		tmp := out.path + ".tmp"
		if err := out.table.WriteCSV(tmp); err != nil {
			cleanup()
			return fmt.Errorf("failed to stage split: %w", err)
		}
		staged = append(staged, tmp)
	}

	// Displace any existing outputs to backups first, so a failed rename can
	// put the previous artifact set back instead of leaving a mix of old and
	// new files.
	backups := make([]string, len(outputs))
	restoreBackups := func() {
		for i, backup := range backups {
			if backup != "" {
				os.Rename(backup, outputs[i].path)
			}
		}
	}

	for i, out := range outputs {
		backup := out.path + ".bak"
		err := os.Rename(out.path, backup)
		if err == nil {
			backups[i] = backup
			continue
		}
		if !os.IsNotExist(err) {
			restoreBackups()
			cleanup()
			return fmt.Errorf("failed to displace %s: %w", out.path, err)
		}
	}

	for i, out := range outputs {
		if err := os.Rename(staged[i], out.path); err != nil {
			for j := 0; j < i; j++ {
				os.Remove(outputs[j].path)
			}
			restoreBackups()
			cleanup()
			return fmt.Errorf("failed to finalize %s: %w", out.path, err)
		}
		log.Printf("[Partitioner] Saved %s (%d rows)", out.path, out.table.NumRows())
	}

	for _, backup := range backups {
		if backup != "" {
			os.Remove(backup)
		}
	}

	return nil
}
