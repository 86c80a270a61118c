package dataprocessing

import (
	"fmt"
	"strings"
)

// Table is one loaded dataset: a header row plus string cells exactly as they
// appeared in the source file. Numeric interpretation happens on access so the
// raw values stay available for diagnostics.
type Table struct {
	Name    string
	Headers []string
	Cells   [][]string
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	return len(t.Cells)
}

// ColumnIndex returns the position of the named column, matching
// case-insensitively on the trimmed header.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// Column returns the raw string values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("table %s has no column %q", t.Name, name)
	}
	out := make([]string, 0, len(t.Cells))
	for _, row := range t.Cells {
		if idx < len(row) {
			out = append(out, row[idx])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// NumericColumn returns the named column converted cell-by-cell with
// ParseValue. Malformed cells come back as 0 rather than an error, matching
// the converter contract.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, cell := range raw {
		out[i] = ParseString(cell)
	}
	return out, nil
}

// Cell returns the raw value at (row, col), or "" when the row is ragged.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Cells) {
		return ""
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return ""
	}
	return t.Cells[row][col]
}

// NumericCell converts the cell at (row, col).
func (t *Table) NumericCell(row, col int) float64 {
	return ParseString(t.Cell(row, col))
}
