package dataprocessing

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	table := &Table{
		Name:    "RATES",
		Headers: []string{"region", "price"},
		Cells: [][]string{
			{"north", "10"},
			{"south", "1.234,56"},
			{"west", "n/a"},
		},
	}

	stats := Summarize(table)

	if stats.Table != "RATES" || stats.Rows != 3 {
		t.Fatalf("unexpected header: %+v", stats)
	}
	if len(stats.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(stats.Columns))
	}

	// Text column converts entirely to zero
	region := stats.Columns[0]
	if region.Zeros != 3 || region.Min != 0 || region.Max != 0 {
		t.Errorf("region stats = %+v", region)
	}

	price := stats.Columns[1]
	if price.Count != 3 || price.Zeros != 1 {
		t.Errorf("price count/zeros = %+v", price)
	}
	if price.Min != 0 || math.Abs(price.Max-1234.56) > 1e-9 {
		t.Errorf("price min/max = %+v", price)
	}
	wantMean := (10 + 1234.56) / 3
	if math.Abs(price.Mean-wantMean) > 1e-9 {
		t.Errorf("price mean = %v, want %v", price.Mean, wantMean)
	}
	if price.StdDev <= 0 {
		t.Errorf("price stddev = %v, want > 0", price.StdDev)
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	stats := Summarize(&Table{Name: "EMPTY", Headers: []string{"a"}})
	if stats.Rows != 0 || stats.Columns[0].Count != 0 {
		t.Errorf("empty table stats = %+v", stats)
	}
}
