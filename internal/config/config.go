package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "WATERINFO"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ReportConfig names the five workbook sheets.
type ReportConfig struct {
	SheetMain           string `yaml:"sheet_main" envconfig:"SHEET_MAIN" validate:"required,max=31"`
	SheetMainRaw        string `yaml:"sheet_main_raw" envconfig:"SHEET_MAIN_RAW" validate:"required,max=31"`
	SheetPeaks          string `yaml:"sheet_peaks" envconfig:"SHEET_PEAKS" validate:"required,max=31"`
	SheetYearSummary    string `yaml:"sheet_year_summary" envconfig:"SHEET_YEAR_SUMMARY" validate:"required,max=31"`
	SheetYearSummaryRaw string `yaml:"sheet_year_summary_raw" envconfig:"SHEET_YEAR_SUMMARY_RAW" validate:"required,max=31"`
}

// SheetNames returns the names in workbook order.
func (r ReportConfig) SheetNames() []string {
	return []string{r.SheetMain, r.SheetMainRaw, r.SheetPeaks, r.SheetYearSummary, r.SheetYearSummaryRaw}
}

// ExportConfig contains output encoding options
type ExportConfig struct {
	ParquetCompression string `yaml:"parquet_compression" envconfig:"PARQUET_COMPRESSION" validate:"oneof=snappy zstd gzip none"`
	DateFormat         string `yaml:"date_format" envconfig:"DATE_FORMAT" validate:"required"`
	DateTimeFormat     string `yaml:"datetime_format" envconfig:"DATETIME_FORMAT" validate:"required"`
	NumberFormat       string `yaml:"number_format" envconfig:"NUMBER_FORMAT" validate:"required"`
}

// TelemetryConfig contains optional trace and metrics sinks.
// Empty paths disable the sink.
type TelemetryConfig struct {
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and WATERINFO_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config file", err).WithContext("path", path)
		}
	}

	// Variables that are not set leave the current value untouched.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and that the sheet names are distinct.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}

	seen := make(map[string]bool)
	for _, name := range c.Report.SheetNames() {
		if seen[name] {
			return apperrors.NewConfigError(fmt.Sprintf("duplicate sheet name %q", name), nil)
		}
		seen[name] = true
	}
	return nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/postprocess.log",
		},
		Report: ReportConfig{
			SheetMain:           "main",
			SheetMainRaw:        "main_raw_rank",
			SheetPeaks:          "peaks",
			SheetYearSummary:    "year_summary",
			SheetYearSummaryRaw: "year_summary_raw",
		},
		Export: ExportConfig{
			ParquetCompression: "snappy",
			DateFormat:         "yyyy/m/d",
			DateTimeFormat:     "yyyy/m/d h:mm",
			NumberFormat:       "0.00",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "water-info-postprocess",
		},
	}
}
