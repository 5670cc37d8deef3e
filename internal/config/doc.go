// Package config provides configuration loading for the flow-duration
// post-processor.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, lowest precedence first:
//
//	1. Default values (config.Default)
//	2. An optional YAML file, passed with --config
//	3. Environment variables prefixed WATERINFO_
//	4. Command-line flags, applied by cmd/postprocess
//
// # Environment Variables
//
// Nested fields join their keys with underscores:
//
//	WATERINFO_LOGGING_LEVEL=debug
//	WATERINFO_REPORT_SHEET_MAIN=位況
//	WATERINFO_EXPORT_PARQUET_COMPRESSION=zstd
//	WATERINFO_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/postprocess.prom
//
// # Validation
//
// Load validates the result with go-playground/validator struct tags and
// rejects duplicate sheet names. Failures are CONFIG errors.
package config
