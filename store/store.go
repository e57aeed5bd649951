// Package store persists value tables so runs against the same model
// can warm start instead of solving from scratch.
package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Store saves and loads value tables by name.
type Store interface {
	Save(name string, q *mat.Dense) error
	// Load fetches a table and validates it against the expected
	// shape, failing with a DimensionMismatchError otherwise.
	Load(name string, rows, cols int) (*mat.Dense, error)
}

// DimensionMismatchError reports a persisted table whose shape does not
// match the current model. The load fails; the caller may still solve
// from a fresh table.
type DimensionMismatchError struct {
	Name       string
	Rows, Cols int
	WantRows   int
	WantCols   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("table %q is %dx%d, model wants %dx%d", e.Name, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

// encode writes a table as CSV, rows = states and columns = actions.
func encode(q *mat.Dense) ([]byte, error) {
	rows, cols := q.Dims()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(q.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func decode(name string, data []byte, rows, cols int) (*mat.Dense, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table %q: %w", name, err)
	}
	if len(records) != rows || (len(records) > 0 && len(records[0]) != cols) {
		gotCols := 0
		if len(records) > 0 {
			gotCols = len(records[0])
		}
		return nil, &DimensionMismatchError{
			Name: name,
			Rows: len(records), Cols: gotCols,
			WantRows: rows, WantCols: cols,
		}
	}
	q := mat.NewDense(rows, cols, nil)
	for i, record := range records {
		if len(record) != cols {
			return nil, &DimensionMismatchError{
				Name: name,
				Rows: len(records), Cols: len(record),
				WantRows: rows, WantCols: cols,
			}
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("table %q entry (%d, %d): %w", name, i, j, err)
			}
			q.Set(i, j, v)
		}
	}
	return q, nil
}
