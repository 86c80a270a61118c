// Package lookup resolves heat-exchanger operating points and generic
// threshold lookups against the loaded datasets. All cell access goes
// through the universal numeric converter, so internationally formatted
// and mildly corrupted files resolve the same way.
package lookup

import (
	"fmt"
	"log/slog"
	"strings"

	"heatcli/internal/dataprocessing"
	"heatcli/internal/errors"
)

// ExchangerTableName is the dataset the exchanger lookup reads from.
const ExchangerTableName = "ALLHX"

// exchangerNumericColumns are the columns converted before matching. Names
// follow the upstream engineering dataset.
var exchangerNumericColumns = []string{
	"wha", "T1", "itdt", "T2", "TCSapp", "F1", "F2", "T3", "T4",
	"FWSapp", "costHX", "areaHX", "Hxweight", "CO2_Footprint",
}

// ExchangerMatch is one resolved heat-exchanger operating point.
type ExchangerMatch struct {
	PowerMW  float64 `json:"power_mw"`
	F1       float64 `json:"f1"`
	F2       float64 `json:"f2"`
	T1       float64 `json:"t1"`
	T2       float64 `json:"t2"`
	T3       float64 `json:"t3"`
	T4       float64 `json:"t4"`
	CostEUR  float64 `json:"hx_cost_eur"`
	Approach float64 `json:"approach"`
	TempDiff float64 `json:"temp_diff"`
}

// Exchanger performs operating-point lookups against the ALLHX dataset.
type Exchanger struct {
	store  *dataprocessing.Store
	logger *slog.Logger
}

// NewExchanger creates an exchanger lookup over the given store.
func NewExchanger(store *dataprocessing.Store, logger *slog.Logger) *Exchanger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exchanger{
		store:  store,
		logger: logger.With(slog.String("component", "exchanger_lookup")),
	}
}

// Lookup finds the exchanger row matching the given system power (MW), inlet
// temperature (°C), temperature difference (°C) and approach. The dataset is
// cleaned on the fly: repeated header rows are dropped and every numeric
// column is run through the universal converter before comparison, so the
// match works identically for American- and European-formatted files.
func (e *Exchanger) Lookup(power, t1, tempDiff, approach float64) (*ExchangerMatch, error) {
	table, err := e.store.Get(ExchangerTableName)
	if err != nil {
		return nil, err
	}

	t2 := t1 + tempDiff
	e.logger.Debug("exchanger lookup",
		slog.Float64("power", power),
		slog.Float64("t1", t1),
		slog.Float64("temp_diff", tempDiff),
		slog.Float64("t2", t2),
		slog.Float64("approach", approach))

	cols := make(map[string]int, len(exchangerNumericColumns))
	for _, name := range exchangerNumericColumns {
		if idx, ok := table.ColumnIndex(name); ok {
			cols[name] = idx
		}
	}
	for _, required := range []string{"wha", "T1", "itdt", "TCSapp"} {
		if _, ok := cols[required]; !ok {
			return nil, errors.NewStorageError(
				fmt.Sprintf("table %s missing column %s", ExchangerTableName, required), nil)
		}
	}

	valid := 0
	for row := 0; row < table.NumRows(); row++ {
		// Exports repeat the header mid-file; skip those rows.
		marker := strings.TrimSpace(table.Cell(row, cols["wha"]))
		if marker == "A" || strings.EqualFold(marker, "wha") {
			continue
		}

		numeric := func(col string) float64 {
			idx, ok := cols[col]
			if !ok {
				return 0
			}
			return table.NumericCell(row, idx)
		}

		wha := numeric("wha")
		rowT1 := numeric("T1")
		itdt := numeric("itdt")
		app := numeric("TCSapp")
		if wha <= 0 || rowT1 <= 0 || itdt <= 0 || app <= 0 {
			continue
		}
		valid++

		if wha != power || rowT1 != t1 || itdt != tempDiff || app != approach {
			continue
		}

		match := &ExchangerMatch{
			PowerMW:  power,
			F1:       numeric("F1"),
			F2:       numeric("F2"),
			T1:       rowT1,
			T2:       numeric("T2"),
			T3:       numeric("T3"),
			T4:       numeric("T4"),
			CostEUR:  numeric("costHX"),
			Approach: approach,
			TempDiff: tempDiff,
		}
		e.logger.Info("exchanger match found",
			slog.Float64("f1", match.F1),
			slog.Float64("f2", match.F2),
			slog.Float64("hx_cost", match.CostEUR))
		return match, nil
	}

	e.logger.Info("no exchanger match",
		slog.Int("valid_rows", valid),
		slog.Float64("power", power))
	return nil, errors.NewNotFoundError(
		fmt.Sprintf("exchanger operating point (power=%g t1=%g dt=%g approach=%g)", power, t1, tempDiff, approach))
}
