package lookup

import (
	"log/slog"
	"testing"

	"heatcli/internal/dataprocessing"
	"heatcli/internal/errors"
)

func exchangerTable() *dataprocessing.Table {
	return &dataprocessing.Table{
		Name: ExchangerTableName,
		Headers: []string{
			"wha", "T1", "itdt", "T2", "TCSapp", "F1", "F2", "T3", "T4",
			"FWSapp", "costHX", "areaHX", "Hxweight", "CO2_Footprint",
		},
		Cells: [][]string{
			// Repeated header row mid-file, as real exports contain.
			{"wha", "T1", "itdt", "T2", "TCSapp", "F1", "F2", "T3", "T4", "FWSapp", "costHX", "areaHX", "Hxweight", "CO2_Footprint"},
			{"A", "", "", "", "", "", "", "", "", "", "", "", "", ""},
			// European number formatting in flow and cost columns.
			{"1", "20", "10", "30", "2", "1.493", "1,493", "18", "28", "2", "€12.500,50", "42,5", "350", "1,2"},
			{"2", "20", "10", "30", "2", "2,986", "2.986", "18", "28", "2", "25.000", "85", "700", "2,4"},
			// Invalid row: non-positive power.
			{"0", "20", "10", "30", "2", "1", "1", "18", "28", "2", "1", "1", "1", "1"},
		},
	}
}

func newTestStore(t *testing.T) *dataprocessing.Store {
	t.Helper()
	store := dataprocessing.NewStore(slog.Default())
	store.Put(exchangerTable())
	return store
}

func TestExchangerLookup(t *testing.T) {
	ex := NewExchanger(newTestStore(t), slog.Default())

	match, err := ex.Lookup(1, 20, 10, 2)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	// "1.493" resolves as an American decimal, "1,493" as a thousands group.
	if match.F1 != 1.493 {
		t.Errorf("F1 = %v, want 1.493", match.F1)
	}
	if match.F2 != 1493 {
		t.Errorf("F2 = %v, want 1493", match.F2)
	}
	if match.T2 != 30 {
		t.Errorf("T2 = %v, want 30", match.T2)
	}
	if match.CostEUR != 12500.50 {
		t.Errorf("CostEUR = %v, want 12500.50", match.CostEUR)
	}
	if match.Approach != 2 || match.TempDiff != 10 {
		t.Errorf("approach/tempdiff = %v/%v, want 2/10", match.Approach, match.TempDiff)
	}
}

func TestExchangerLookupNotFound(t *testing.T) {
	ex := NewExchanger(newTestStore(t), slog.Default())

	_, err := ex.Lookup(99, 20, 10, 2)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !errors.IsType(err, errors.ErrTypeNotFound) {
		t.Errorf("error type = %v, want NOT_FOUND", err)
	}
}

func TestExchangerLookupMissingTable(t *testing.T) {
	store := dataprocessing.NewStore(slog.Default())
	ex := NewExchanger(store, slog.Default())

	if _, err := ex.Lookup(1, 20, 10, 2); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestStep(t *testing.T) {
	table := &dataprocessing.Table{
		Name:    "DN_SIZING",
		Headers: []string{"max_flow_lpm", "dn", "inner_mm"},
		Cells: [][]string{
			{"100", "25", "27,3"},
			{"400", "50", "53,1"},
			{"1600", "100", "105,3"},
			{"3600", "150", "155,1"},
		},
	}

	got, err := Step(table, 500, 0, 1)
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if got != 100 {
		t.Errorf("Step = %v, want 100", got)
	}

	raw, err := StepRaw(table, 90, 0, 1)
	if err != nil {
		t.Fatalf("StepRaw returned error: %v", err)
	}
	if raw != "25" {
		t.Errorf("StepRaw = %q, want \"25\"", raw)
	}

	multi, err := StepMulti(table, 1600, 0, []string{"dn", "inner_mm"})
	if err != nil {
		t.Fatalf("StepMulti returned error: %v", err)
	}
	if multi["dn"] != 100 || multi["inner_mm"] != 105.3 {
		t.Errorf("StepMulti = %v, want dn=100 inner_mm=105.3", multi)
	}

	if _, err := Step(table, 1e9, 0, 1); err == nil {
		t.Error("expected not-found for value beyond table range")
	}
}
