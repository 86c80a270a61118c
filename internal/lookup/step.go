package lookup

import (
	"fmt"

	"heatcli/internal/dataprocessing"
	"heatcli/internal/errors"
)

// Step performs a threshold lookup: it scans the lookup column top to bottom
// and returns the first row whose converted value is greater than or equal
// to the probe. Sizing tables (pipe diameters, pump curves) are laid out for
// exactly this access pattern.
func Step(table *dataprocessing.Table, value float64, lookupCol int, returnCol int) (float64, error) {
	row, err := stepRow(table, value, lookupCol)
	if err != nil {
		return 0, err
	}
	return table.NumericCell(row, returnCol), nil
}

// StepRaw is Step returning the raw cell text instead of a converted value,
// for tables whose return column is a designation rather than a number.
func StepRaw(table *dataprocessing.Table, value float64, lookupCol int, returnCol int) (string, error) {
	row, err := stepRow(table, value, lookupCol)
	if err != nil {
		return "", err
	}
	return table.Cell(row, returnCol), nil
}

// StepMulti returns several columns of the first row at or above the probe,
// keyed by header name.
func StepMulti(table *dataprocessing.Table, value float64, lookupCol int, returnCols []string) (map[string]float64, error) {
	row, err := stepRow(table, value, lookupCol)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(returnCols))
	for _, name := range returnCols {
		idx, ok := table.ColumnIndex(name)
		if !ok {
			return nil, errors.NewStorageError(
				fmt.Sprintf("table %s missing column %s", table.Name, name), nil)
		}
		out[name] = table.NumericCell(row, idx)
	}
	return out, nil
}

func stepRow(table *dataprocessing.Table, value float64, lookupCol int) (int, error) {
	for row := 0; row < table.NumRows(); row++ {
		if table.NumericCell(row, lookupCol) >= value {
			return row, nil
		}
	}
	return 0, errors.NewNotFoundError(
		fmt.Sprintf("row with column %d >= %g in table %s", lookupCol, value, table.Name))
}
