package dataprocessing

import (
	"math"
	"testing"
)

func sizingTable() *Table {
	return &Table{
		Name:    "SIZING",
		Headers: []string{"flow", " Diameter "},
		Cells: [][]string{
			{"500", "63"},
			{"1 500", "110"},
			{"5000"},
		},
	}
}

func TestColumnIndex(t *testing.T) {
	table := sizingTable()

	idx, ok := table.ColumnIndex("flow")
	if !ok || idx != 0 {
		t.Errorf("ColumnIndex(flow) = %d, %v", idx, ok)
	}

	// Matching is case-insensitive and trims header whitespace.
	idx, ok = table.ColumnIndex("diameter")
	if !ok || idx != 1 {
		t.Errorf("ColumnIndex(diameter) = %d, %v", idx, ok)
	}

	if _, ok := table.ColumnIndex("bogus"); ok {
		t.Error("ColumnIndex(bogus) should not match")
	}
}

func TestColumnRaggedRows(t *testing.T) {
	table := sizingTable()

	col, err := table.Column("diameter")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	want := []string{"63", "110", ""}
	for i, v := range want {
		if col[i] != v {
			t.Errorf("column[%d] = %q, want %q", i, col[i], v)
		}
	}

	if _, err := table.Column("bogus"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestNumericColumn(t *testing.T) {
	table := sizingTable()

	col, err := table.NumericColumn("flow")
	if err != nil {
		t.Fatalf("NumericColumn: %v", err)
	}
	want := []float64{500, 1500, 5000}
	for i, v := range want {
		if math.Abs(col[i]-v) > 1e-9 {
			t.Errorf("flow[%d] = %v, want %v", i, col[i], v)
		}
	}
}

func TestCellOutOfRange(t *testing.T) {
	table := sizingTable()

	if got := table.Cell(2, 1); got != "" {
		t.Errorf("ragged cell = %q, want empty", got)
	}
	if got := table.Cell(-1, 0); got != "" {
		t.Errorf("negative row = %q, want empty", got)
	}
	if got := table.NumericCell(99, 99); got != 0 {
		t.Errorf("out of range numeric cell = %v, want 0", got)
	}
}
