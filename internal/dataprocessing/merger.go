package dataprocessing

import (
	"database/sql"
	"time"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// MergeDaily outer-joins the hourly aggregates with the external daily
// table on hydrological date. Either side may be empty; fields a side does
// not report stay absent. Rows are returned ascending by date.
func MergeDaily(aggregates []domain.DailyAggregateRow, daily []domain.ExternalDailyRow) []domain.MergedRow {
	byDate := make(map[time.Time]*domain.MergedRow, len(aggregates)+len(daily))

	for _, a := range aggregates {
		byDate[a.HydroDate] = &domain.MergedRow{
			HydroDate:    a.HydroDate,
			VarDenAvg:    a.VarDenAvg,
			FixedDenAvg:  a.FixedDenAvg,
			NonNullCount: sql.NullInt64{Int64: int64(a.NonNullCount), Valid: true},
		}
	}

	for _, d := range daily {
		row, ok := byDate[d.HydroDate]
		if !ok {
			row = &domain.MergedRow{HydroDate: d.HydroDate}
			byDate[d.HydroDate] = row
		}
		row.DailyValue = d.DailyValue.Rounded()
	}

	merged := make([]domain.MergedRow, 0, len(byDate))
	for _, date := range sortedDates(byDate) {
		row := *byDate[date]
		row.Year = date.Year()
		merged = append(merged, row)
	}
	return merged
}
