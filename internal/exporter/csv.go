package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cpkcli/internal/capability"
)

// utf8BOM helps Excel recognize UTF-8 encoded CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// resultHeader is the export column order.
var resultHeader = []string{"count", "mean", "std", "min", "max", "LSL", "USL", "Cpk"}

// ResultRow is one calculation result ready for export.
type ResultRow struct {
	Summary capability.Summary
	Limits  capability.SpecLimits
	Cpk     *float64
}

// record renders the row with undefined statistics as empty cells.
func (r ResultRow) record() []string {
	return []string{
		formatInt(int64(r.Summary.Count)),
		formatOptional(r.Summary.Mean),
		formatOptional(r.Summary.Std),
		formatOptional(r.Summary.Min),
		formatOptional(r.Summary.Max),
		formatOptional(r.Limits.LSL),
		formatOptional(r.Limits.USL),
		formatOptional(r.Cpk),
	}
}

// WriteResultCSV writes a BOM-prefixed result CSV (header plus one row)
// to w.
func WriteResultCSV(w io.Writer, row ResultRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(resultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.Write(row.record()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// Writer provides result CSV export to files.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a new file export writer.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// WriteResultFile writes the result row to filePath, creating parent
// directories as needed.
func (w *Writer) WriteResultFile(filePath string, row ResultRow) error {
	w.logger.Info("writing result CSV",
		slog.String("file_path", filePath),
		slog.Int("count", row.Summary.Count))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return WriteResultCSV(file, row)
}
