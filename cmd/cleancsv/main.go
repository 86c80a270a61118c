package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"heatcli/internal/config"
	"heatcli/internal/dataprocessing"
	"heatcli/internal/exporter"
	"heatcli/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory with raw CSV/XLSX files (defaults to configured data dir)")
	outDir := flag.String("out", "", "output directory for cleaned CSV files (defaults to <in>/cleaned)")
	workers := flag.Int("workers", 0, "number of tables cleaned in parallel (defaults to configured value)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Output: "console"},
			Paths:   config.PathsConfig{DataDir: "data"},
			Ingest:  config.IngestConfig{Workers: 4},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *inDir == "" {
		*inDir = cfg.Paths.DataDir
	}
	if *outDir == "" {
		*outDir = filepath.Join(*inDir, "cleaned")
	}
	if *workers <= 0 {
		*workers = cfg.Ingest.Workers
	}

	logger.Info("Starting bulk CSV cleaning",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.Int("workers", *workers))

	if err := run(context.Background(), logger, *inDir, *outDir, *workers); err != nil {
		logger.Error("Cleaning failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, inDir, outDir string, workers int) error {
	store := dataprocessing.NewStore(logger)
	if err := store.LoadDir(inDir); err != nil {
		return fmt.Errorf("loading %s: %w", inDir, err)
	}
	if len(store.Names()) == 0 {
		return fmt.Errorf("no loadable tables found in %s", inDir)
	}

	processor := dataprocessing.NewProcessor(logger, workers)
	stats, err := processor.CleanStore(ctx, store)
	if err != nil {
		return fmt.Errorf("cleaning tables: %w", err)
	}

	writer := exporter.NewCSVWriter(outDir)
	for _, name := range store.Names() {
		table, err := store.Get(name)
		if err != nil {
			continue
		}
		outName := strings.ToLower(name) + ".csv"
		if err := writer.WriteTable(outName, table); err != nil {
			return fmt.Errorf("writing %s: %w", outName, err)
		}
		logger.Info("table written",
			slog.String("table", name),
			slog.String("path", filepath.Join(outDir, outName)),
			slog.Int("rows", table.NumRows()))
	}

	logger.Info("Cleaning complete",
		slog.Int("tables", stats.Tables),
		slog.Int("cells", stats.Cells),
		slog.Duration("duration", stats.Duration))
	return nil
}
