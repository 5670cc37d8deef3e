package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, []string{"main", "main_raw_rank", "peaks", "year_summary", "year_summary_raw"}, cfg.Report.SheetNames())
	assert.Equal(t, "snappy", cfg.Export.ParquetCompression)
	assert.Equal(t, "yyyy/m/d h:mm", cfg.Export.DateTimeFormat)
	assert.Empty(t, cfg.Telemetry.TraceFile)
	assert.Empty(t, cfg.Telemetry.MetricsFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "yaml overrides defaults",
			file: "logging:\n  level: debug\nreport:\n  sheet_main: 位況\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "位況", cfg.Report.SheetMain)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "peaks", cfg.Report.SheetPeaks)
			},
		},
		{
			name: "env overrides yaml",
			file: "logging:\n  level: debug\nexport:\n  parquet_compression: gzip\n",
			env: map[string]string{
				"WATERINFO_LOGGING_LEVEL":              "warn",
				"WATERINFO_TELEMETRY_METRICS_FILE":     "/tmp/postprocess.prom",
				"WATERINFO_EXPORT_PARQUET_COMPRESSION": "zstd",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "zstd", cfg.Export.ParquetCompression)
				assert.Equal(t, "/tmp/postprocess.prom", cfg.Telemetry.MetricsFile)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"WATERINFO_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "unknown compression",
			file:    "export:\n  parquet_compression: lzma\n",
			wantErr: true,
		},
		{
			name:    "duplicate sheet names",
			file:    "report:\n  sheet_main: peaks\n",
			wantErr: true,
		},
		{
			name:    "sheet name too long",
			file:    "report:\n  sheet_peaks: abcdefghijklmnopqrstuvwxyz0123456789\n",
			wantErr: true,
		},
		{
			name:    "file output requires path",
			file:    "logging:\n  output: file\n  file_path: \"\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "logging: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsConfigError(err))
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err))
	assert.Contains(t, err.Error(), "absent.yaml")
}
