// Package exporter writes a post-processing report to its output files.
//
// WorkbookExporter produces the five-sheet xlsx workbook, CSVWriter the same
// tables as UTF-8 CSV files, and ParquetExporter the four intermediate
// columnar tables. All three share the table layout built in tables.go so
// headers and cell rounding are identical across formats.
//
// Example usage:
//
//	wb := exporter.NewWorkbookExporter(exporter.DefaultWorkbookOptions(), logger)
//	if err := wb.Export(ctx, "out/report.xlsx", report); err != nil {
//		return err
//	}
//
//	pq := exporter.NewParquetExporter("snappy", logger)
//	err := pq.Export(ctx, "out/parquet", report)
package exporter
