// Package flowduration ranks daily water levels within each calendar year
// and derives the four annual flow-duration levels (豊水位, 平水位, 低水位,
// 渇水位) from those ranks.
//
// # Policies
//
// One algorithm serves both report variants and is parameterized by Policy:
//
//   - ThresholdPolicy: a year/column with 11 or more missing days is
//     invalidated, and level ranks are scaled for leap years and coverage.
//   - ReferencePolicy: no invalidation, no scaling, and ties ordered by the
//     variable-denominator average so every column ranks consistently.
//
// # Architecture
//
//   - policy.go: Policy values and the effective-rank formula
//   - calendar.go: leap-year helpers
//   - ranker.go: per-year exceedance ranks
//   - levels.go: level selection and broadcast onto rows
//   - summary.go: per-year summary rows with hourly extremes
//   - calculator.go: runs a policy over a merged table
//
// # Usage Example
//
//	calc := flowduration.NewCalculator(flowduration.ThresholdPolicy, logger)
//	table := calc.Calculate(ctx, merged, domain.AllColumns)
//	summaries := flowduration.BuildYearSummaries(table, hourly)
//
// Every function returns new slices; inputs are never modified.
package flowduration
