package flowduration

import (
	"database/sql"
	"sort"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// yearGroup lists the row indexes of one calendar year in row order.
type yearGroup struct {
	year  int
	index []int
}

// groupByYear groups n rows by yearAt, in ascending year order.
func groupByYear(n int, yearAt func(i int) int) []yearGroup {
	pos := make(map[int]int)
	var groups []yearGroup
	for i := 0; i < n; i++ {
		y := yearAt(i)
		k, ok := pos[y]
		if !ok {
			k = len(groups)
			pos[y] = k
			groups = append(groups, yearGroup{year: y})
		}
		groups[k].index = append(groups[k].index, i)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].year < groups[j].year })
	return groups
}

func groupMerged(rows []domain.MergedRow) []yearGroup {
	return groupByYear(len(rows), func(i int) int { return rows[i].Year })
}

// Rank assigns exceedance ranks per calendar year for every column in
// cols. Present values rank 1..N by descending value, then by the policy's
// tie order; missing values follow as N+1..N+M in tie order. A year with no
// present value, or one the policy invalidates, keeps absent ranks.
func Rank(rows []domain.MergedRow, cols []domain.Column, p Policy) []domain.RankedRow {
	out := make([]domain.RankedRow, len(rows))
	for i, r := range rows {
		out[i] = domain.RankedRow{MergedRow: r}
	}

	for _, g := range groupMerged(rows) {
		for _, col := range cols {
			rankYear(out, g.index, col, p)
		}
	}
	return out
}

func rankYear(out []domain.RankedRow, index []int, col domain.Column, p Policy) {
	var present, missing []int
	for _, i := range index {
		if out[i].Get(col).Valid() {
			present = append(present, i)
		} else {
			missing = append(missing, i)
		}
	}
	if len(present) == 0 || p.Invalidates(len(missing)) {
		return
	}

	sort.SliceStable(present, func(a, b int) bool {
		ra, rb := out[present[a]].MergedRow, out[present[b]].MergedRow
		if c := ra.Get(col).Cmp(rb.Get(col)); c != 0 {
			return c > 0
		}
		return p.tieLess(ra, rb)
	})
	sort.SliceStable(missing, func(a, b int) bool {
		return p.tieLess(out[missing[a]].MergedRow, out[missing[b]].MergedRow)
	})

	rank := int64(1)
	for _, i := range append(present, missing...) {
		out[i].Ranks[col] = sql.NullInt64{Int64: rank, Valid: true}
		rank++
	}
}
