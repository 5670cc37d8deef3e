package dataprocessing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// AggregateDaily collapses hourly samples into one row per hydrological day,
// ascending by date. Samples without a timestamp are ignored.
func AggregateDaily(samples []domain.HourlySample) []domain.DailyAggregateRow {
	groups := groupByHydroDate(samples)

	rows := make([]domain.DailyAggregateRow, 0, len(groups))
	for _, date := range sortedDates(groups) {
		values := groups[date]
		sum, n := domain.Sum(values)

		row := domain.DailyAggregateRow{
			HydroDate:    date,
			VarDenAvg:    domain.Mean(values),
			FixedDenAvg:  domain.Missing(),
			NonNullCount: n,
		}
		if n == domain.HoursPerDay {
			row.FixedDenAvg = domain.NewValueFromDecimal(sum.Div(decimal.NewFromInt(domain.HoursPerDay)))
		}
		rows = append(rows, row)
	}
	return rows
}

func groupByHydroDate(samples []domain.HourlySample) map[time.Time][]domain.Value {
	groups := make(map[time.Time][]domain.Value)
	for _, s := range samples {
		if !s.HasTimestamp() {
			continue
		}
		date := s.HydroDate()
		groups[date] = append(groups[date], s.Value)
	}
	return groups
}

func sortedDates[V any](m map[time.Time]V) []time.Time {
	dates := make([]time.Time, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
