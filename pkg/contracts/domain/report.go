package domain

import (
	"database/sql"
	"time"
)

// ColumnSummary holds one column's yearly statistics.
type ColumnSummary struct {
	Column  Column
	Missing int
	Mean    Value
	Levels  [NumLevels]Value
	// RanksUsed records the effective rank each level was read at. It is
	// absent when the year was invalidated or has no present values.
	RanksUsed [NumLevels]sql.NullInt64
}

// YearSummary is one row of a yearly summary table.
type YearSummary struct {
	Year    int
	Columns []ColumnSummary

	// Hourly extremes over readings whose own timestamp falls in Year.
	MaxHourly   Value
	MaxHourlyAt sql.NullTime
	MinHourly   Value
	MinHourlyAt sql.NullTime
}

// Column returns the summary for c, if it was computed.
func (y YearSummary) Column(c Column) (ColumnSummary, bool) {
	for _, cs := range y.Columns {
		if cs.Column == c {
			return cs, true
		}
	}
	return ColumnSummary{}, false
}

// Report is the complete result of one post-processing run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	HourlyOnly  bool
	Columns     []Column

	Hourly     []HourlySample
	Aggregates []DailyAggregateRow
	Merged     []MergedRow
	Peaks      []PeakRow

	// Main uses the threshold policy, MainRaw the reference policy.
	Main           []RankedRow
	MainRaw        []RankedRow
	YearSummary    []YearSummary
	YearSummaryRaw []YearSummary
}
