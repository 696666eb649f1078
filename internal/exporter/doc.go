// Package exporter renders calculation results as CSV for spreadsheet
// tools.
//
// The export format is a single row with the columns
// count, mean, std, min, max, LSL, USL, Cpk, prefixed with a UTF-8 BOM so
// Excel recognizes the encoding. Undefined statistics become empty cells.
//
// WriteResultCSV writes to any io.Writer (HTTP downloads); Writer wraps it
// with file handling for the CLI.
package exporter
