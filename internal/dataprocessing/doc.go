// Package dataprocessing provides the numeric core of the heat-reuse
// calculator: a total cell-to-float converter, an in-memory table store and
// the concurrent cleaning pipeline that ties them together.
//
// # Architecture
//
// The package is organized into four components:
//
//  1. Converter: turns any spreadsheet cell into a finite float64
//  2. Table: an ordered, header-indexed grid of string cells
//  3. Store: loads CSV and Excel workbooks from a data directory
//  4. Processor: rewrites every cell of every table through the converter
//
// # Usage
//
// Loading a data directory:
//
//	store := dataprocessing.NewStore(logger)
//	if err := store.LoadDir("data"); err != nil {
//	    log.Fatal(err)
//	}
//
// Cleaning all loaded tables with a bounded worker pool:
//
//	processor := dataprocessing.NewProcessor(logger, 4)
//	stats, err := processor.CleanStore(ctx, store)
//
// Converting a single token:
//
//	v := dataprocessing.ParseString("1.234,56") // 1234.56
//
// # Conversion Contract
//
// ParseValue and ParseString never return an error, NaN or Inf. Cells that
// defy every recognized convention collapse to 0, so downstream arithmetic
// always operates on finite numbers. Callers that must distinguish a genuine
// zero from an unparseable cell need their own validation layer.
package dataprocessing
