package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// CleanStats summarizes one bulk cleaning pass.
type CleanStats struct {
	Tables   int           `json:"tables"`
	Cells    int           `json:"cells"`
	Duration time.Duration `json:"duration"`
}

// Processor normalizes every cell of a store to canonical numeric text.
// Cell conversions are independent, so tables are cleaned concurrently.
type Processor struct {
	logger  *slog.Logger
	workers int
}

// NewProcessor creates a processor running at most workers tables in
// parallel. Zero or negative means a single worker.
func NewProcessor(logger *slog.Logger, workers int) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		logger:  logger.With(slog.String("component", "processor")),
		workers: workers,
	}
}

// CleanStore rewrites every cell of every table as the canonical decimal
// rendering of its converted value. The converter is total, so cleaning
// never fails on cell content; the only error source is context
// cancellation.
func (p *Processor) CleanStore(ctx context.Context, store *Store) (CleanStats, error) {
	start := time.Now()
	stats := CleanStats{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, name := range store.Names() {
		table, err := store.Get(name)
		if err != nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := cleanTable(table)
			p.logger.Debug("table cleaned",
				slog.String("table", table.Name),
				slog.Int("cells", n))
			mu.Lock()
			stats.Tables++
			stats.Cells += n
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	stats.Duration = time.Since(start)
	p.logger.Info("store cleaned",
		slog.Int("tables", stats.Tables),
		slog.Int("cells", stats.Cells),
		slog.Duration("duration", stats.Duration))
	return stats, err
}

// cleanTable converts a single table in place and returns the cell count.
func cleanTable(t *Table) int {
	n := 0
	for i, row := range t.Cells {
		for j, cell := range row {
			t.Cells[i][j] = FormatNumeric(ParseString(cell))
			n++
		}
	}
	return n
}

// FormatNumeric renders a converted value the way cleaned files store it:
// shortest round-trippable decimal form.
func FormatNumeric(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
