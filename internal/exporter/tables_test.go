package exporter

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rankedRow(date time.Time, varDen, fixedDen float64, rank int64) domain.RankedRow {
	r := domain.RankedRow{MergedRow: domain.MergedRow{
		HydroDate:    date,
		Year:         date.Year(),
		VarDenAvg:    domain.NewValue(varDen),
		FixedDenAvg:  domain.NewValue(fixedDen),
		NonNullCount: sql.NullInt64{Int64: 24, Valid: true},
	}}
	r.Ranks[domain.ColumnVarDen] = sql.NullInt64{Int64: rank, Valid: true}
	r.Levels[domain.ColumnVarDen][domain.LevelHigh] = domain.NewValue(12.345)
	return r
}

// testReport builds a small hourly-only report covering one year.
func testReport() *domain.Report {
	peakAt := time.Date(2023, 1, 1, 14, 0, 0, 0, time.UTC)
	summary := domain.YearSummary{
		Year: 2023,
		Columns: []domain.ColumnSummary{
			{Column: domain.ColumnVarDen, Missing: 2, Mean: domain.NewValue(1.5)},
			{Column: domain.ColumnFixedDen, Missing: 3},
		},
		MaxHourly:   domain.NewValue(3.25),
		MaxHourlyAt: sql.NullTime{Time: peakAt, Valid: true},
	}
	summary.Columns[0].RanksUsed[domain.LevelHigh] = sql.NullInt64{Int64: 93, Valid: true}

	main := []domain.RankedRow{
		rankedRow(day(2023, 1, 1), 1.5, 1.5, 2),
		rankedRow(day(2023, 1, 2), 2.005, 2.0, 1),
	}
	return &domain.Report{
		RunID:       "run-1",
		GeneratedAt: day(2024, 1, 1),
		HourlyOnly:  true,
		Columns:     domain.HourlyColumns,
		Hourly: []domain.HourlySample{
			{Timestamp: time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC), Value: domain.NewValue(1.5)},
			{Value: domain.NewValue(9)},
		},
		Aggregates: []domain.DailyAggregateRow{
			{HydroDate: day(2023, 1, 1), VarDenAvg: domain.NewValue(1.5), NonNullCount: 1},
		},
		Peaks: []domain.PeakRow{
			{HydroDate: day(2023, 1, 1), Value: domain.NewValue(3.25), Time: sql.NullTime{Time: peakAt, Valid: true}},
			{HydroDate: day(2023, 1, 2)},
		},
		Main:           main,
		MainRaw:        main,
		YearSummary:    []domain.YearSummary{summary},
		YearSummaryRaw: []domain.YearSummary{summary},
	}
}

func TestSheetNames_Validate(t *testing.T) {
	require.NoError(t, DefaultSheetNames().Validate())

	dup := DefaultSheetNames()
	dup.Peaks = dup.Main
	err := dup.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	empty := DefaultSheetNames()
	empty.YearSummaryRaw = ""
	assert.Error(t, empty.Validate())
}

func TestBuildTables_Order(t *testing.T) {
	tables := buildTables(testReport(), DefaultSheetNames())
	require.Len(t, tables, 5)

	names := make([]string, len(tables))
	for i, tb := range tables {
		names[i] = tb.name
	}
	assert.Equal(t, DefaultSheetNames().List(), names)
}

func TestRankedTable_HourlyOnlyLayout(t *testing.T) {
	r := testReport()
	tb := rankedTable("main", r.Main, r.Columns)

	assert.Equal(t, []string{
		"日付", "日平均（可変分母）", "日平均（固定分母）", "非欠損本数", "年",
		"ランク（可変分母）", "ランク（固定分母）",
		"位況（豊水位,可変分母）", "位況（平水位,可変分母）", "位況（低水位,可変分母）", "位況（渇水位,可変分母）",
		"位況（豊水位,固定分母）", "位況（平水位,固定分母）", "位況（低水位,固定分母）", "位況（渇水位,固定分母）",
	}, tb.header)
	require.Len(t, tb.rows, 2)
	for _, row := range tb.rows {
		assert.Len(t, row, len(tb.header))
	}

	first := tb.rows[0]
	assert.Equal(t, "2023/01/01", formatCell(first[0]))
	assert.Equal(t, "1.50", formatCell(first[1]))
	assert.Equal(t, "24", formatCell(first[3]))
	assert.Equal(t, "2023", formatCell(first[4]))
	assert.Equal(t, "2", formatCell(first[5]))
	assert.Equal(t, "", formatCell(first[6]))
	assert.Equal(t, "12.35", formatCell(first[7]))
	assert.Equal(t, "", formatCell(first[8]))
}

func TestRankedTable_WithDailyValue(t *testing.T) {
	r := testReport()
	tb := rankedTable("main", r.Main, domain.AllColumns)

	assert.Equal(t, "日データ", tb.header[4])
	assert.Equal(t, "年", tb.header[5])
	assert.Contains(t, tb.header, "ランク（日データ）")
	assert.Contains(t, tb.header, "位況（渇水位,日データ）")
	assert.Len(t, tb.header, 6+3+12)
}

func TestPeakTable(t *testing.T) {
	tb := peakTable("peaks", testReport().Peaks)

	assert.Equal(t, []string{"日付", "最高値", "最高時刻（水水DB基準）"}, tb.header)
	require.Len(t, tb.rows, 2)
	assert.Equal(t, []string{"2023/01/01", "3.25", "2023/01/01 14:00"}, rendered(tb.rows[0]))
	assert.Equal(t, []string{"2023/01/02", "", ""}, rendered(tb.rows[1]))
}

func TestSummaryTable_Transposed(t *testing.T) {
	r := testReport()
	tb := summaryTable("year_summary", r.YearSummary, r.Columns)

	assert.Equal(t, []string{"項目", "2023"}, tb.header)

	byLabel := make(map[string]string, len(tb.rows))
	for _, row := range tb.rows {
		require.Len(t, row, 2)
		byLabel[formatCell(row[0])] = formatCell(row[1])
	}

	assert.Equal(t, "2", byLabel["欠損数（可変分母）"])
	assert.Equal(t, "1.50", byLabel["平均（可変分母）"])
	assert.Equal(t, "3", byLabel["欠損数（固定分母）"])
	assert.Equal(t, "", byLabel["平均（固定分母）"])
	assert.Equal(t, "3.25", byLabel["最大（1時間値）"])
	assert.Equal(t, "2023/01/01 14:00", byLabel["最大生起日時（水水DB基準）"])
	assert.Equal(t, "", byLabel["最小（1時間値）"])
	assert.Equal(t, "93", byLabel["採用順位（豊水位,可変分母）"])
	assert.Equal(t, "", byLabel["採用順位（平水位,可変分母）"])

	// 2 columns x (missing, mean, 4 levels) + 4 extremes + 2 columns x 4 ranks.
	assert.Len(t, tb.rows, 12+4+8)
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		c    cell
		want string
	}{
		{"empty", cell{}, ""},
		{"number rounds half up", valueCell(domain.NewValue(2.005)), "2.01"},
		{"number pads", valueCell(domain.NewValue(3)), "3.00"},
		{"missing number", valueCell(domain.Missing()), ""},
		{"int", intCell(42), "42"},
		{"absent int", nullIntCell(sql.NullInt64{}), ""},
		{"date", dateCell(day(2023, 7, 4)), "2023/07/04"},
		{"datetime", timeCell(sql.NullTime{Time: time.Date(2023, 7, 4, 9, 5, 0, 0, time.UTC), Valid: true}), "2023/07/04 09:05"},
		{"text", textCell("項目"), "項目"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCell(tt.c))
		})
	}
}

func rendered(row []cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = formatCell(c)
	}
	return out
}
