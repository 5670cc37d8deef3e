package flowduration

import (
	"database/sql"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

type extremes struct {
	max, min     domain.Value
	maxAt, minAt sql.NullTime
}

// hourlyExtremes finds the yearly maximum and minimum of the hourly
// samples, keyed by the calendar year of the original timestamp. Equal
// extremes keep the earliest sample in input order.
func hourlyExtremes(samples []domain.HourlySample) map[int]*extremes {
	out := make(map[int]*extremes)
	for _, s := range samples {
		if !s.HasTimestamp() || !s.Value.Valid() {
			continue
		}
		year := s.Timestamp.Year()
		e, ok := out[year]
		if !ok {
			at := sql.NullTime{Time: s.Timestamp, Valid: true}
			out[year] = &extremes{max: s.Value, min: s.Value, maxAt: at, minAt: at}
			continue
		}
		if s.Value.Cmp(e.max) > 0 {
			e.max = s.Value
			e.maxAt = sql.NullTime{Time: s.Timestamp, Valid: true}
		}
		if s.Value.Cmp(e.min) < 0 {
			e.min = s.Value
			e.minAt = sql.NullTime{Time: s.Timestamp, Valid: true}
		}
	}
	return out
}

// BuildYearSummaries returns one summary per year of t, ascending. Hourly
// extremes come from hourly directly and are absent for a year without
// present hourly readings.
func BuildYearSummaries(t Table, hourly []domain.HourlySample) []domain.YearSummary {
	ext := hourlyExtremes(hourly)
	groups := groupByYear(len(t.Rows), func(i int) int { return t.Rows[i].Year })

	summaries := make([]domain.YearSummary, 0, len(groups))
	for _, g := range groups {
		ys := domain.YearSummary{Year: g.year}

		for _, col := range t.Columns {
			values := make([]domain.Value, len(g.index))
			for k, i := range g.index {
				values[k] = t.Rows[i].Get(col)
			}

			cs := domain.ColumnSummary{
				Column:  col,
				Missing: len(values) - len(domain.Present(values)),
				Mean:    domain.Mean(values),
			}
			if yl, ok := t.LevelsFor(g.year, col); ok {
				for l, res := range yl.Levels {
					cs.Levels[l] = res.Value
					cs.RanksUsed[l] = res.RankUsed
				}
			}
			ys.Columns = append(ys.Columns, cs)
		}

		if e, ok := ext[g.year]; ok {
			ys.MaxHourly, ys.MaxHourlyAt = e.max, e.maxAt
			ys.MinHourly, ys.MinHourlyAt = e.min, e.minAt
		}
		summaries = append(summaries, ys)
	}
	return summaries
}
