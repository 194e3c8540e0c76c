// Package exporter serializes cleaned tables back to CSV: header row first,
// comma delimited, standard quoting, column order exactly as loaded, numbers
// rendered without locale formatting.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "gscclean/internal/errors"
	"gscclean/pkg/contracts/domain"
)

// CSVWriter writes cleaned tables as CSV files or streams.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write serializes the table to w: one header row, then every data row in
// order. The HTTP download path writes straight to the response body.
func (c *CSVWriter) Write(w io.Writer, table domain.Table, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewExportError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		return apperrors.NewExportError("failed to write header row", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write row %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewExportError("failed to flush CSV output", err)
	}
	return nil
}

// WriteFile writes the table to a CSV file, creating parent directories as
// needed. The BOM helps Excel recognize UTF-8 content.
func (c *CSVWriter) WriteFile(path string, table domain.Table, options WriteOptions) error {
	c.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("row_count", table.RowCount()))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewExportError("failed to create directory", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewExportError("failed to create file", err)
	}
	defer file.Close()

	return c.Write(file, table, options)
}
