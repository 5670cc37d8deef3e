package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := WriteWorkbook(t, t.TempDir(), "x.xlsx",
		Sheet{Name: "全期間", Rows: [][]interface{}{{"a", nil}, {"b", 2}}},
		Sheet{Name: "2024年"},
	)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"全期間", "2024年"}, f.GetSheetList())
	rows, err := f.GetRows("全期間")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b", "2"}}, rows)
}

func TestHourlyRows(t *testing.T) {
	var stamps []time.Time
	rows := HourlyRows(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 2, func(ts time.Time) interface{} {
		stamps = append(stamps, ts)
		return 1
	})

	require.Len(t, rows, 1+48)
	assert.Equal(t, "2024/2/28 1:00", rows[1][0])
	assert.Equal(t, "2024/2/28 24:00", rows[24][0])
	assert.Equal(t, "2024/2/29 24:00", rows[48][0])
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), stamps[47])
}
