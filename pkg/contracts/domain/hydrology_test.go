package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHydroDateOf(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want time.Time
	}{
		{
			name: "first hour of the day",
			ts:   time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight closes the previous day",
			ts:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "new year midnight",
			ts:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "half past midnight",
			ts:   time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC),
			want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HydroDateOf(tt.ts))
		})
	}
}

func TestFlowLevelNominalRanks(t *testing.T) {
	want := []int{95, 185, 275, 355}
	for i, l := range FlowLevels {
		assert.Equal(t, want[i], l.NominalRank(), l.String())
	}
}

func TestColumnSuffixes(t *testing.T) {
	assert.Equal(t, "var_den", ColumnVarDen.String())
	assert.Equal(t, "fixed_den", ColumnFixedDen.String())
	assert.Equal(t, "daily_value", ColumnDailyValue.String())
	assert.Equal(t, "none", NoColumn.String())
}

func TestMergedRowGet(t *testing.T) {
	r := MergedRow{
		VarDenAvg:    NewValue(1),
		FixedDenAvg:  NewValue(2),
		DailyValue:   NewValue(3),
		NonNullCount: sql.NullInt64{Int64: 24, Valid: true},
	}
	assert.Equal(t, "1.00", r.Get(ColumnVarDen).String())
	assert.Equal(t, "2.00", r.Get(ColumnFixedDen).String())
	assert.Equal(t, "3.00", r.Get(ColumnDailyValue).String())
	assert.False(t, r.Get(NoColumn).Valid())
}

func TestYearSummaryColumn(t *testing.T) {
	y := YearSummary{Year: 2024, Columns: []ColumnSummary{{Column: ColumnFixedDen, Missing: 3}}}

	cs, ok := y.Column(ColumnFixedDen)
	assert.True(t, ok)
	assert.Equal(t, 3, cs.Missing)

	_, ok = y.Column(ColumnDailyValue)
	assert.False(t, ok)
}
