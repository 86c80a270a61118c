package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"heatcli/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sizing.csv", "flow,dn\n500,63\n1500,110\n")
	writeFile(t, dir, "Rates.csv", "region,price\nnorth,10\n")
	writeFile(t, dir, "notes.txt", "ignored")

	store := NewStore(nil)
	if err := store.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	names := store.Names()
	if len(names) != 2 || names[0] != "RATES" || names[1] != "SIZING" {
		t.Fatalf("Names() = %v", names)
	}

	table, err := store.Get("sizing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if table.NumRows() != 2 {
		t.Errorf("rows = %d, want 2", table.NumRows())
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Get("MISSING")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsType(err, errors.ErrTypeNotFound) {
		t.Errorf("error type = %v", err)
	}
}

func TestStoreLoadDirMissing(t *testing.T) {
	store := NewStore(nil)
	err := store.LoadDir("/nonexistent/data")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsType(err, errors.ErrTypeStorage) {
		t.Errorf("error type = %v", err)
	}
}

func TestStoreSemicolonCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "allhx.csv", "wha;T1;dt5\n1,0;20;0,9\n2,0;20;1,8\n")

	store := NewStore(nil)
	if err := store.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	table, err := store.Get("ALLHX")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v", table.Headers)
	}
	if got := table.NumericCell(0, 2); got != 0.9 {
		t.Errorf("cell(0,2) = %v, want 0.9", got)
	}
}

func TestStoreSkipsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.csv", "")
	writeFile(t, dir, "good.csv", "a,b\n1,2\n")

	store := NewStore(nil)
	if err := store.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !store.Has("GOOD") {
		t.Error("good table not loaded")
	}
	if store.Has("EMPTY") {
		t.Error("empty table should be skipped")
	}
}

func TestStoreValidateRequired(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sizing.csv", "a,b\n1,2\n")

	store := NewStore(nil)
	if err := store.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if err := store.ValidateRequired([]string{"SIZING"}); err != nil {
		t.Errorf("ValidateRequired: %v", err)
	}
	err := store.ValidateRequired([]string{"SIZING", "ALLHX"})
	if err == nil {
		t.Fatal("expected error for missing table")
	}
	if !errors.IsType(err, errors.ErrTypeStorage) {
		t.Errorf("error type = %v", err)
	}
}
