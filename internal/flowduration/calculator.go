package flowduration

import (
	"context"
	"log/slog"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// Table is a merged table ranked and leveled under one policy.
type Table struct {
	Policy  Policy
	Columns []domain.Column
	Rows    []domain.RankedRow
	Levels  []YearLevels
}

// LevelsFor returns the levels of year and col.
func (t Table) LevelsFor(year int, col domain.Column) (YearLevels, bool) {
	for _, yl := range t.Levels {
		if yl.Year == year && yl.Column == col {
			return yl, true
		}
	}
	return YearLevels{}, false
}

// InvalidatedCount returns how many years of col the policy discarded.
func (t Table) InvalidatedCount(col domain.Column) int {
	n := 0
	for _, yl := range t.Levels {
		if yl.Column == col && yl.Invalidated {
			n++
		}
	}
	return n
}

// Calculator runs one policy over merged tables
type Calculator struct {
	policy Policy
	logger *slog.Logger
}

// NewCalculator creates a calculator for policy
func NewCalculator(policy Policy, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{policy: policy, logger: logger}
}

// Policy returns the calculator's policy
func (c *Calculator) Policy() Policy {
	return c.policy
}

// Calculate ranks rows and attaches the flow-duration levels of each year.
func (c *Calculator) Calculate(ctx context.Context, rows []domain.MergedRow, cols []domain.Column) Table {
	levels := ComputeLevels(rows, cols, c.policy)
	table := Table{
		Policy:  c.policy,
		Columns: append([]domain.Column(nil), cols...),
		Rows:    ApplyLevels(Rank(rows, cols, c.policy), levels),
		Levels:  levels,
	}

	for _, yl := range levels {
		switch {
		case yl.Present == 0:
			c.logger.InfoContext(ctx, "year has no values",
				"policy", c.policy.Name,
				"year", yl.Year,
				"column", yl.Column.String())
		case yl.Invalidated:
			c.logger.InfoContext(ctx, "year invalidated by missing-data threshold",
				"policy", c.policy.Name,
				"year", yl.Year,
				"column", yl.Column.String(),
				"missing", yl.Missing)
		}
	}

	c.logger.InfoContext(ctx, "flow-duration table computed",
		"policy", c.policy.Name,
		"rows", len(table.Rows),
		"year_columns", len(levels))

	return table
}
