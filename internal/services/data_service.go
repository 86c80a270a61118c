package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heatcli/internal/config"
	"heatcli/internal/dataprocessing"
	apierrors "heatcli/internal/errors"
	"heatcli/internal/lookup"
	"heatcli/pkg/contracts/events"
)

// DataService provides access to the loaded lookup tables and the
// numeric converter.
type DataService struct {
	config      *config.Config
	store       *dataprocessing.Store
	processor   *dataprocessing.Processor
	exchanger   *lookup.Exchanger
	broadcaster Broadcaster
	logger      *slog.Logger
}

// TableSummary describes a loaded table without its cell payload
type TableSummary struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// TableResponse carries the full contents of a single table
type TableResponse struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ParsedValue pairs a raw cell with its converted numeric value and the
// converter strategy that resolved it
type ParsedValue struct {
	Input    string  `json:"input"`
	Value    float64 `json:"value"`
	Strategy string  `json:"strategy"`
}

// NewDataService creates a new data service using default logger
func NewDataService(cfg *config.Config) *DataService {
	return NewDataServiceWithLogger(cfg, slog.Default())
}

// NewDataServiceWithLogger creates a new data service with a specific logger
func NewDataServiceWithLogger(cfg *config.Config, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}

	store := dataprocessing.NewStore(logger)

	logger.Info("DataService initialized",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.Int("workers", cfg.Ingest.Workers),
		slog.Bool("clean_on_load", cfg.Ingest.CleanOnLoad))

	return &DataService{
		config:    cfg,
		store:     store,
		processor: dataprocessing.NewProcessor(logger, cfg.Ingest.Workers),
		exchanger: lookup.NewExchanger(store, logger),
		logger:    logger,
	}
}

// Store exposes the underlying table store
func (ds *DataService) Store() *dataprocessing.Store {
	return ds.store
}

// LoadData loads every CSV and workbook under the configured data
// directory, optionally normalizing every cell through the converter.
func (ds *DataService) LoadData(ctx context.Context) error {
	start := time.Now()

	if err := ds.store.LoadDir(ds.config.Paths.DataDir); err != nil {
		return fmt.Errorf("loading data dir %s: %w", ds.config.Paths.DataDir, err)
	}

	if ds.config.Ingest.CleanOnLoad {
		stats, err := ds.processor.CleanStore(ctx, ds.store)
		if err != nil {
			return fmt.Errorf("cleaning loaded tables: %w", err)
		}
		ds.logger.InfoContext(ctx, "bulk clean completed",
			slog.Int("tables", stats.Tables),
			slog.Int("cells", stats.Cells),
			slog.Duration("duration", stats.Duration))
	}

	if len(ds.config.Ingest.RequiredTables) > 0 {
		if err := ds.store.ValidateRequired(ds.config.Ingest.RequiredTables); err != nil {
			return err
		}
	}

	ds.logger.InfoContext(ctx, "data loaded",
		slog.Int("tables", len(ds.store.Names())),
		slog.Duration("duration", time.Since(start)))

	if ds.broadcaster != nil {
		ds.broadcaster.BroadcastProgress("ingest", 100, "data directory loaded")
		ds.broadcaster.BroadcastUpdate(events.TypeDataUpdate, events.SubtypeTables, events.ActionRefresh,
			map[string]interface{}{"tables": ds.store.Names()})
	}
	return nil
}

// SetBroadcaster attaches a websocket broadcaster for ingest events.
func (ds *DataService) SetBroadcaster(b Broadcaster) {
	ds.broadcaster = b
}

// TableSummaries returns metadata for every loaded table
func (ds *DataService) TableSummaries(ctx context.Context) []TableSummary {
	names := ds.store.Names()
	summaries := make([]TableSummary, 0, len(names))
	for _, name := range names {
		t, err := ds.store.Get(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, TableSummary{
			Name:    t.Name,
			Rows:    t.NumRows(),
			Columns: t.Headers,
		})
	}
	return summaries
}

// GetTable returns the full contents of a single table
func (ds *DataService) GetTable(ctx context.Context, name string) (*TableResponse, error) {
	t, err := ds.store.Get(name)
	if err != nil {
		return nil, err
	}
	return &TableResponse{
		Name:    t.Name,
		Headers: t.Headers,
		Rows:    t.Cells,
	}, nil
}

// TableStats computes per-column numeric statistics for one table
func (ds *DataService) TableStats(ctx context.Context, name string) (*dataprocessing.TableStats, error) {
	t, err := ds.store.Get(name)
	if err != nil {
		return nil, err
	}
	stats := dataprocessing.Summarize(t)
	return &stats, nil
}

// ParseValues converts a batch of raw strings through the universal
// numeric converter. Conversion never fails; every input yields a
// finite value.
func (ds *DataService) ParseValues(ctx context.Context, inputs []string) []ParsedValue {
	results := make([]ParsedValue, len(inputs))
	for i, input := range inputs {
		value, strategy := dataprocessing.ParseStringStrategy(input)
		results[i] = ParsedValue{
			Input:    input,
			Value:    value,
			Strategy: strategy,
		}
	}
	ds.logger.DebugContext(ctx, "parsed value batch", slog.Int("count", len(inputs)))
	return results
}

// ExchangerLookup finds the heat-exchanger row matching the given
// operating point exactly.
func (ds *DataService) ExchangerLookup(ctx context.Context, power, t1, tempDiff, approach float64) (*lookup.ExchangerMatch, error) {
	match, err := ds.exchanger.Lookup(power, t1, tempDiff, approach)
	if err != nil {
		ds.logger.WarnContext(ctx, "exchanger lookup missed",
			slog.Float64("power", power),
			slog.Float64("t1", t1),
			slog.Float64("temp_diff", tempDiff),
			slog.Float64("approach", approach))
		return nil, err
	}
	return match, nil
}

// StepLookup does a threshold lookup against a named table: the first
// row whose lookup column is >= value supplies the return column.
func (ds *DataService) StepLookup(ctx context.Context, tableName, lookupColumn, returnColumn string, value float64) (float64, error) {
	t, err := ds.store.Get(tableName)
	if err != nil {
		return 0, err
	}

	lookupIdx, ok := t.ColumnIndex(lookupColumn)
	if !ok {
		return 0, apierrors.NewNotFoundError(fmt.Sprintf("column %q in table %s", lookupColumn, t.Name))
	}
	returnIdx, ok := t.ColumnIndex(returnColumn)
	if !ok {
		return 0, apierrors.NewNotFoundError(fmt.Sprintf("column %q in table %s", returnColumn, t.Name))
	}

	return lookup.Step(t, value, lookupIdx, returnIdx)
}
