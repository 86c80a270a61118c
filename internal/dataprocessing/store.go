package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"heatcli/internal/errors"
)

// Store holds every loaded dataset keyed by its upper-cased base name
// (PIPES.csv and pipes.csv both register as PIPES). It is an explicitly
// owned value: callers pass it into lookups rather than reaching for a
// package-level global.
type Store struct {
	logger *slog.Logger
	tables map[string]*Table
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger: logger.With(slog.String("component", "data_store")),
		tables: make(map[string]*Table),
	}
}

// LoadDir loads every CSV and XLSX file in dir into the store. Individual
// files that fail to parse are logged and skipped so one bad export does not
// block the whole dataset.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to read data directory %s", dir), err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(entry.Name()))

		var (
			table *Table
			lerr  error
		)
		switch ext {
		case ".csv":
			table, lerr = loadCSV(path)
		case ".xlsx":
			table, lerr = loadWorkbook(path)
		default:
			continue
		}

		if lerr != nil {
			s.logger.Warn("failed to load data file",
				slog.String("file", entry.Name()),
				slog.String("error", lerr.Error()))
			continue
		}

		s.Put(table)
		loaded++
		s.logger.Info("loaded data file",
			slog.String("file", entry.Name()),
			slog.String("table", table.Name),
			slog.Int("rows", table.NumRows()))
	}

	s.logger.Info("data directory loaded",
		slog.String("dir", dir),
		slog.Int("tables", loaded))
	return nil
}

// Put registers a table under its normalized name.
func (s *Store) Put(t *Table) {
	s.tables[normalizeTableName(t.Name)] = t
}

// Get returns the named table.
func (s *Store) Get(name string) (*Table, error) {
	t, ok := s.tables[normalizeTableName(name)]
	if !ok {
		return nil, errors.NewAppError(errors.ErrTypeNotFound,
			fmt.Sprintf("table %s not loaded, available: %v", normalizeTableName(name), s.Names()), nil)
	}
	return t, nil
}

// Has reports whether the named table is loaded.
func (s *Store) Has(name string) bool {
	_, ok := s.tables[normalizeTableName(name)]
	return ok
}

// Names returns the loaded table names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateRequired fails when any of the given tables is missing.
func (s *Store) ValidateRequired(required []string) error {
	var missing []string
	for _, name := range required {
		if !s.Has(name) {
			missing = append(missing, normalizeTableName(name))
		}
	}
	if len(missing) > 0 {
		return errors.NewAppError(errors.ErrTypeStorage,
			fmt.Sprintf("missing required tables %v, available: %v", missing, s.Names()), nil)
	}
	return nil
}

func normalizeTableName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.ToUpper(strings.TrimSpace(base))
}

// loadCSV reads a CSV file, retrying with semicolon and tab separators when
// the default comma layout produces a single-column table. European exports
// routinely use semicolons.
func loadCSV(path string) (*Table, error) {
	for _, sep := range []rune{',', ';', '\t'} {
		table, err := readCSVWith(path, sep)
		if err != nil {
			continue
		}
		if len(table.Headers) > 1 || sep == '\t' {
			return table, nil
		}
	}
	// Fall back to whatever the comma read produced, even single-column.
	return readCSVWith(path, ',')
}

func readCSVWith(path string, sep rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s is empty", filepath.Base(path))
	}

	return &Table{
		Name:    normalizeTableName(path),
		Headers: records[0],
		Cells:   records[1:],
	}, nil
}

// loadWorkbook reads the first sheet of an Excel workbook that contains more
// than a header row.
func loadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}
		return &Table{
			Name:    normalizeTableName(path),
			Headers: rows[0],
			Cells:   rows[1:],
		}, nil
	}
	return nil, fmt.Errorf("no sheet with data in %s", filepath.Base(path))
}
