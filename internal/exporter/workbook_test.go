package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
)

func TestWorkbookExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.xlsx")
	exp := NewWorkbookExporter(DefaultWorkbookOptions(), nil)

	require.NoError(t, exp.Export(context.Background(), path, testReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, DefaultSheetNames().List(), f.GetSheetList())

	rows, err := f.GetRows("main", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "日付", rows[0][0])
	assert.Equal(t, "ランク（可変分母）", rows[0][5])

	varDen, err := strconv.ParseFloat(rows[2][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 2.01, varDen, 1e-9)
	assert.Equal(t, "1", rows[2][5])

	summary, err := f.GetRows("year_summary", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"項目", "2023"}, summary[0])
	assert.Equal(t, "欠損数（可変分母）", summary[1][0])
	assert.Equal(t, "2", summary[1][1])
}

func TestWorkbookExporter_CustomSheetNames(t *testing.T) {
	opts := DefaultWorkbookOptions()
	opts.Sheets = SheetNames{
		Main:           "本表",
		MainRaw:        "本表（参考）",
		Peaks:          "ピーク",
		YearSummary:    "年集計",
		YearSummaryRaw: "年集計（参考）",
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, NewWorkbookExporter(opts, nil).Export(context.Background(), path, testReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, opts.Sheets.List(), f.GetSheetList())
}

func TestWorkbookExporter_RejectsDuplicateSheets(t *testing.T) {
	opts := DefaultWorkbookOptions()
	opts.Sheets.MainRaw = opts.Sheets.Main
	path := filepath.Join(t.TempDir(), "report.xlsx")

	err := NewWorkbookExporter(opts, nil).Export(context.Background(), path, testReport())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWorkbookExporter_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewWorkbookExporter(DefaultWorkbookOptions(), nil).
		Export(context.Background(), filepath.Join(blocker, "report.xlsx"), testReport())
	require.Error(t, err)
	assert.True(t, apperrors.IsExportError(err))
}
