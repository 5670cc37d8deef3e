// Package shared holds helpers used by the tests of several packages.
//
// The testutil subpackage provides:
//
//   - WriteWorkbook and HourlyRows, which generate extract workbooks
//     with excelize the way the hydrological database exports them
//   - NewTestLogger, a slog logger whose records can be asserted on
//
// Nothing here is imported by production code.
package shared
