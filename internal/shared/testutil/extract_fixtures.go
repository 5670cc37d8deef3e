package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet is one sheet of a generated extract workbook. Each row holds the
// timestamp and value cells in columns A and B; nil cells are left blank.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// WriteWorkbook saves sheets, in order, as dir/name and returns the path.
func WriteWorkbook(t *testing.T, dir, name string, sheets ...Sheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			for c, val := range row {
				if val == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(s.Name, cell, val))
			}
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// HourlyRows lays out a header and one text-stamped row per hour from
// 01:00 of day through 24:00 of the last day. value returns the cell for
// each reading.
func HourlyRows(day time.Time, days int, value func(ts time.Time) interface{}) [][]interface{} {
	rows := [][]interface{}{{"日時", "水位"}}
	for d := 0; d < days; d++ {
		date := day.AddDate(0, 0, d)
		for h := 1; h <= 24; h++ {
			stamp := fmt.Sprintf("%d/%d/%d %d:00", date.Year(), int(date.Month()), date.Day(), h)
			rows = append(rows, []interface{}{stamp, value(date.Add(time.Duration(h) * time.Hour))})
		}
	}
	return rows
}
