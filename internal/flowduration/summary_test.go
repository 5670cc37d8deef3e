package flowduration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

func sample(ts string, v interface{}) domain.HourlySample {
	t, _ := time.Parse("2006-01-02 15:04", ts)
	s := domain.HourlySample{Timestamp: t}
	if f, ok := v.(float64); ok {
		s.Value = domain.NewValue(f)
	}
	return s
}

func TestBuildYearSummaries(t *testing.T) {
	rows := []domain.MergedRow{
		row("2023-12-31", 1.0, nil),
		row("2024-01-01", 2.0, 2.0),
		row("2024-01-02", 2.01, nil),
		row("2024-01-03", nil, nil),
	}
	hourly := []domain.HourlySample{
		sample("2023-12-31 05:00", 0.5),
		sample("2024-01-01 00:00", 9.0), // hydro date 2023-12-31, calendar year 2024
		sample("2024-01-01 03:00", 1.0),
		sample("2024-01-02 03:00", 9.0),
		sample("2024-01-02 04:00", nil),
		sample("2024-01-02 05:00", 1.0),
		{Value: domain.NewValue(100)},
	}

	table := NewCalculator(ReferencePolicy, nil).Calculate(context.Background(), rows, domain.HourlyColumns)
	summaries := BuildYearSummaries(table, hourly)
	require.Len(t, summaries, 2)

	y2023 := summaries[0]
	assert.Equal(t, 2023, y2023.Year)
	assert.Equal(t, "0.50", y2023.MaxHourly.String())
	assert.Equal(t, "0.50", y2023.MinHourly.String())

	y2024 := summaries[1]
	assert.Equal(t, 2024, y2024.Year)
	require.Len(t, y2024.Columns, 2)

	varDen, ok := y2024.Column(domain.ColumnVarDen)
	require.True(t, ok)
	assert.Equal(t, 1, varDen.Missing)
	assert.Equal(t, "2.01", varDen.Mean.String()) // (2.00 + 2.01) / 2 = 2.005
	assert.Equal(t, int64(95), varDen.RanksUsed[domain.LevelHigh].Int64)
	assert.False(t, varDen.Levels[domain.LevelHigh].Valid())

	fixedDen, ok := y2024.Column(domain.ColumnFixedDen)
	require.True(t, ok)
	assert.Equal(t, 2, fixedDen.Missing)
	assert.Equal(t, "2.00", fixedDen.Mean.String())

	_, ok = y2024.Column(domain.ColumnDailyValue)
	assert.False(t, ok)

	// the first of two equal maxima wins; extremes use the calendar year
	assert.Equal(t, "9.00", y2024.MaxHourly.String())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), y2024.MaxHourlyAt.Time)
	assert.Equal(t, "1.00", y2024.MinHourly.String())
	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), y2024.MinHourlyAt.Time)
}

func TestBuildYearSummariesThresholdRanks(t *testing.T) {
	rows := yearRows(2023, func(day int) (float64, bool) {
		if day < 12 {
			return 0, false
		}
		return descending(day)
	})

	strict := BuildYearSummaries(NewCalculator(ThresholdPolicy, nil).Calculate(context.Background(), rows, domain.AllColumns), nil)
	require.Len(t, strict, 1)
	for _, cs := range strict[0].Columns {
		assert.Equal(t, 12, cs.Missing)
		// (353 * 354 / 2) / 353 = 177
		assert.Equal(t, "177.00", cs.Mean.String())
		for l := range cs.RanksUsed {
			assert.False(t, cs.RanksUsed[l].Valid)
			assert.False(t, cs.Levels[l].Valid())
		}
	}
	assert.False(t, strict[0].MaxHourly.Valid())
	assert.False(t, strict[0].MaxHourlyAt.Valid)

	lenient := BuildYearSummaries(NewCalculator(ReferencePolicy, nil).Calculate(context.Background(), rows, domain.AllColumns), nil)
	cs, ok := lenient[0].Column(domain.ColumnDailyValue)
	require.True(t, ok)
	assert.Equal(t, "259.00", cs.Levels[domain.LevelHigh].String())
	assert.Equal(t, int64(355), cs.RanksUsed[domain.LevelDrought].Int64)
}

func TestBuildYearSummariesEmpty(t *testing.T) {
	table := NewCalculator(ThresholdPolicy, nil).Calculate(context.Background(), nil, domain.AllColumns)
	assert.Empty(t, BuildYearSummaries(table, nil))
}
