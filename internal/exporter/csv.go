package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// CSVWriter writes the report tables as UTF-8 CSV files, one per sheet.
type CSVWriter struct {
	sheets SheetNames
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(sheets SheetNames, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{sheets: sheets, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Export writes <sheet name>.csv for every report table into dir.
func (w *CSVWriter) Export(ctx context.Context, dir string, report *domain.Report) error {
	if err := w.sheets.Validate(); err != nil {
		return err
	}

	for _, t := range buildTables(report, w.sheets) {
		records := make([][]string, len(t.rows))
		for i, row := range t.rows {
			rec := make([]string, len(row))
			for j, c := range row {
				rec[j] = formatCell(c)
			}
			records[i] = rec
		}

		path := filepath.Join(dir, t.name+".csv")
		if err := w.WriteCSV(path, WriteOptions{Headers: t.header, Records: records, BOMPrefix: true}); err != nil {
			return apperrors.NewExportError(path, "failed to write csv", err)
		}
	}

	w.logger.InfoContext(ctx, "Exported CSV tables", slog.String("dir", dir))
	return nil
}

// WriteCSV writes data to a CSV file, replacing any existing file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
