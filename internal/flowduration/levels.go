package flowduration

import (
	"database/sql"
	"sort"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// LevelResult is one flow-duration level of a year and column.
type LevelResult struct {
	Value    domain.Value
	RankUsed sql.NullInt64
}

// YearLevels holds the four levels of one year and column.
type YearLevels struct {
	Year        int
	Column      domain.Column
	TotalDays   int
	Missing     int
	Present     int
	Invalidated bool
	Levels      [domain.NumLevels]LevelResult
}

// ComputeLevels derives the flow-duration levels of every year and column,
// ordered by year and then by the order of cols.
func ComputeLevels(rows []domain.MergedRow, cols []domain.Column, p Policy) []YearLevels {
	var out []YearLevels
	for _, g := range groupMerged(rows) {
		for _, col := range cols {
			values := make([]domain.Value, len(g.index))
			for k, i := range g.index {
				values[k] = rows[i].Get(col)
			}
			out = append(out, yearLevels(g.year, col, values, p))
		}
	}
	return out
}

func yearLevels(year int, col domain.Column, values []domain.Value, p Policy) YearLevels {
	present := domain.Present(values)
	sort.SliceStable(present, func(i, j int) bool { return present[i].Cmp(present[j]) > 0 })

	yl := YearLevels{
		Year:      year,
		Column:    col,
		TotalDays: TotalDays(year),
		Missing:   len(values) - len(present),
		Present:   len(present),
	}
	yl.Invalidated = p.Invalidates(yl.Missing)

	for i, level := range domain.FlowLevels {
		res := LevelResult{Value: domain.Missing()}
		rank, ok := EffectiveRank(level.NominalRank(), yl.TotalDays, yl.Missing, p)
		if ok && len(present) > 0 {
			res.RankUsed = sql.NullInt64{Int64: int64(rank), Valid: true}
			if rank <= len(present) {
				res.Value = present[rank-1]
			}
		}
		yl.Levels[i] = res
	}
	return yl
}

// ApplyLevels returns a copy of rows with each year's level values repeated
// on every row of that year.
func ApplyLevels(rows []domain.RankedRow, levels []YearLevels) []domain.RankedRow {
	type key struct {
		year int
		col  domain.Column
	}
	byKey := make(map[key]YearLevels, len(levels))
	for _, yl := range levels {
		byKey[key{yl.Year, yl.Column}] = yl
	}

	out := make([]domain.RankedRow, len(rows))
	for i, r := range rows {
		for col := domain.Column(0); col < domain.NumColumns; col++ {
			yl, ok := byKey[key{r.Year, col}]
			if !ok {
				continue
			}
			for l := range yl.Levels {
				r.Levels[col][l] = yl.Levels[l].Value
			}
		}
		out[i] = r
	}
	return out
}
