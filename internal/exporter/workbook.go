package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// WorkbookOptions configures the report workbook.
type WorkbookOptions struct {
	Sheets         SheetNames
	DateFormat     string
	DateTimeFormat string
	NumberFormat   string
}

// DefaultWorkbookOptions returns the standard sheet names and number formats.
func DefaultWorkbookOptions() WorkbookOptions {
	return WorkbookOptions{
		Sheets:         DefaultSheetNames(),
		DateFormat:     "yyyy/m/d",
		DateTimeFormat: "yyyy/m/d h:mm",
		NumberFormat:   "0.00",
	}
}

// WorkbookExporter writes the five report sheets to an xlsx file.
type WorkbookExporter struct {
	opts   WorkbookOptions
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter. A nil logger falls back
// to slog.Default.
func NewWorkbookExporter(opts WorkbookOptions, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{opts: opts, logger: logger}
}

type workbookStyles struct {
	date, dateTime, number int
}

func (e *WorkbookExporter) newStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &e.opts.DateFormat}); err != nil {
		return s, err
	}
	if s.dateTime, err = f.NewStyle(&excelize.Style{CustomNumFmt: &e.opts.DateTimeFormat}); err != nil {
		return s, err
	}
	if s.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &e.opts.NumberFormat}); err != nil {
		return s, err
	}
	return s, nil
}

// Export writes report to path, replacing any existing file.
func (e *WorkbookExporter) Export(ctx context.Context, path string, report *domain.Report) error {
	if err := e.opts.Sheets.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := e.newStyles(f)
	if err != nil {
		return apperrors.NewExportError(path, "failed to create cell styles", err)
	}

	for i, t := range buildTables(report, e.opts.Sheets) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.name); err != nil {
				return apperrors.NewExportError(path, "failed to name sheet", err).WithContext("sheet", t.name)
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return apperrors.NewExportError(path, "failed to add sheet", err).WithContext("sheet", t.name)
		}

		if err := writeSheet(f, t, styles); err != nil {
			return apperrors.NewExportError(path, "failed to write sheet", err).WithContext("sheet", t.name)
		}
		e.logger.DebugContext(ctx, "Wrote sheet",
			slog.String("sheet", t.name),
			slog.Int("rows", len(t.rows)))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewExportError(path, "failed to create directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewExportError(path, "failed to save workbook", err)
	}

	e.logger.InfoContext(ctx, "Exported workbook",
		slog.String("path", path),
		slog.Any("sheets", e.opts.Sheets.List()))
	return nil
}

func writeSheet(f *excelize.File, t table, styles workbookStyles) error {
	sw, err := f.NewStreamWriter(t.name)
	if err != nil {
		return err
	}
	if err := sw.SetColWidth(1, 1, 18); err != nil {
		return err
	}

	header := make([]interface{}, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r, row := range t.rows {
		values := make([]interface{}, len(row))
		for i, c := range row {
			values[i] = workbookValue(c, styles)
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func workbookValue(c cell, styles workbookStyles) interface{} {
	switch c.kind {
	case cellNumber:
		return excelize.Cell{StyleID: styles.number, Value: c.float()}
	case cellInt:
		return c.i
	case cellDate:
		return excelize.Cell{StyleID: styles.date, Value: c.t}
	case cellDateTime:
		return excelize.Cell{StyleID: styles.dateTime, Value: c.t}
	case cellText:
		return c.s
	default:
		return nil
	}
}
