package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table is an in-memory tabular frame read from a CSV file. Cells are kept
// as their raw string representation so that rewriting a table reproduces
// the source bytes; numeric columns are parsed on demand.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if absent
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// FloatColumn parses the named column as float64 values
func (t *Table) FloatColumn(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}

	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q in column %q at row %d: %w", row[idx], name, i, err)
		}
		values[i] = v
	}
	return values, nil
}

// Slice returns a new table holding rows [from, to). Row slices are shared
// with the receiver; callers treat tables as immutable after creation.
func (t *Table) Slice(from, to int) *Table {
	return &Table{
		Columns: t.Columns,
		Rows:    t.Rows[from:to],
	}
}

// DropColumns returns a new table without the named columns. Unknown names
// are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	keep := make([]int, 0, len(t.Columns))
	columns := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if !drop[c] {
			keep = append(keep, i)
			columns = append(columns, c)
		}
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		newRow := make([]string, len(keep))
		for j, idx := range keep {
			newRow[j] = row[idx]
		}
		rows[i] = newRow
	}

	return &Table{Columns: columns, Rows: rows}
}

// FilterRows returns a new table holding only rows for which keep returns true
func (t *Table) FilterRows(keep func(row []string) bool) *Table {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return &Table{Columns: t.Columns, Rows: rows}
}

// ReadCSV loads a table from a CSV file with a header row
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}

	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// WriteCSV writes the table to a CSV file, overwriting any existing file
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(t.Columns); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
