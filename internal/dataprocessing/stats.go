package dataprocessing

import "math"

// ColumnStats summarizes one column after conversion to numbers.
// Zeros counts cells the converter collapsed to zero, which includes
// genuine zeros as well as sentinel and unparseable cells.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Zeros  int     `json:"zeros"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// TableStats summarizes every column of a table
type TableStats struct {
	Table   string        `json:"table"`
	Rows    int           `json:"rows"`
	Columns []ColumnStats `json:"columns"`
}

// Summarize converts every cell of the table and computes per-column
// statistics. Conversion is total, so summarizing never fails.
func Summarize(t *Table) TableStats {
	stats := TableStats{
		Table:   t.Name,
		Rows:    t.NumRows(),
		Columns: make([]ColumnStats, len(t.Headers)),
	}

	for col, header := range t.Headers {
		cs := ColumnStats{Column: header}
		var sum, sumSq float64

		for row := range t.Cells {
			v := t.NumericCell(row, col)
			if cs.Count == 0 {
				cs.Min, cs.Max = v, v
			} else {
				if v < cs.Min {
					cs.Min = v
				}
				if v > cs.Max {
					cs.Max = v
				}
			}
			if v == 0 {
				cs.Zeros++
			}
			sum += v
			sumSq += v * v
			cs.Count++
		}

		if cs.Count > 0 {
			cs.Mean = sum / float64(cs.Count)
			variance := sumSq/float64(cs.Count) - cs.Mean*cs.Mean
			if variance > 0 {
				cs.StdDev = math.Sqrt(variance)
			}
		}
		stats.Columns[col] = cs
	}

	return stats
}
