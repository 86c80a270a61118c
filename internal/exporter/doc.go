// Package exporter provides CSV export functionality for the heat-reuse
// calculator.
//
// CSVWriter is the core writer with support for headers, appending,
// streaming, and a UTF-8 BOM for Excel compatibility. WriteTable exports
// a loaded lookup table directly, which is how the cleancsv tool writes
// normalized datasets back to disk.
package exporter
