// Package services implements the post-processing pipeline.
//
// PostprocessService runs every stage once per invocation, in order:
//
//	1. Load the hourly extract and, when given, the daily extract
//	2. Aggregate hourly samples into daily averages
//	3. Merge the averages with the daily table
//	4. Rank and level the merged table under the threshold and reference policies
//	5. Extract daily peaks and build the yearly summaries
//	6. Export the workbook and the optional columnar and CSV files
//
// Each stage is a pure function of the previous stage's output. Stages are
// traced with one span each and timed into the run's metrics registry.
//
// # Usage
//
//	svc := services.NewPostprocessService(cfg, tracing.Tracer, logger)
//	report, err := svc.Run(ctx, services.Options{
//		HourFile: "hour.xlsx",
//		OutExcel: "out/report.xlsx",
//	})
//
// Format errors in the inputs abort the run before anything is written.
package services
