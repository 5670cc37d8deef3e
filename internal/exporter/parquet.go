package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// Columnar file names under the output directory.
const (
	HourRawFile     = "df_hour_raw.parquet"
	HourDailyFile   = "df_hour_daily.parquet"
	MergedFile      = "df_merged.parquet"
	SummaryPeakFile = "df_summary_peak.parquet"
)

// HourRawRecord is a row of df_hour_raw. HydroDate is null when the
// timestamp could not be decoded.
type HourRawRecord struct {
	DisplayTime *time.Time `parquet:"display_dt"`
	Value       *float64   `parquet:"value"`
	HydroDate   *time.Time `parquet:"hydro_date"`
}

// HourDailyRecord is a row of df_hour_daily.
type HourDailyRecord struct {
	HydroDate    time.Time `parquet:"hydro_date,timestamp(millisecond)"`
	VarDenAvg    *float64  `parquet:"hourly_daily_avg_var_den"`
	FixedDenAvg  *float64  `parquet:"hourly_daily_avg_fixed_den"`
	NonNullCount int64     `parquet:"count_non_null"`
}

// MergedRecord is a row of df_merged, the threshold-policy table.
type MergedRecord struct {
	HydroDate    time.Time `parquet:"hydro_date,timestamp(millisecond)"`
	Year         int32     `parquet:"year"`
	VarDenAvg    *float64  `parquet:"hourly_daily_avg_var_den"`
	FixedDenAvg  *float64  `parquet:"hourly_daily_avg_fixed_den"`
	NonNullCount *int64    `parquet:"count_non_null"`
	DailyValue   *float64  `parquet:"daily_value"`

	RankVarDen     *int64 `parquet:"rank_var_den"`
	RankFixedDen   *int64 `parquet:"rank_fixed_den"`
	RankDailyValue *int64 `parquet:"rank_daily_value"`

	HighVarDen        *float64 `parquet:"ikyo_high_var_den"`
	NormalVarDen      *float64 `parquet:"ikyo_normal_var_den"`
	LowVarDen         *float64 `parquet:"ikyo_low_var_den"`
	DroughtVarDen     *float64 `parquet:"ikyo_drought_var_den"`
	HighFixedDen      *float64 `parquet:"ikyo_high_fixed_den"`
	NormalFixedDen    *float64 `parquet:"ikyo_normal_fixed_den"`
	LowFixedDen       *float64 `parquet:"ikyo_low_fixed_den"`
	DroughtFixedDen   *float64 `parquet:"ikyo_drought_fixed_den"`
	HighDailyValue    *float64 `parquet:"ikyo_high_daily_value"`
	NormalDailyValue  *float64 `parquet:"ikyo_normal_daily_value"`
	LowDailyValue     *float64 `parquet:"ikyo_low_daily_value"`
	DroughtDailyValue *float64 `parquet:"ikyo_drought_daily_value"`
}

// PeakRecord is a row of df_summary_peak.
type PeakRecord struct {
	HydroDate time.Time  `parquet:"hydro_date,timestamp(millisecond)"`
	PeakValue *float64   `parquet:"peak_value"`
	PeakTime  *time.Time `parquet:"peak_time"`
}

// ParquetExporter writes the report tables as columnar files.
type ParquetExporter struct {
	compression string
	logger      *slog.Logger
}

// NewParquetExporter creates an exporter. compression is one of snappy,
// zstd, gzip or none.
func NewParquetExporter(compression string, logger *slog.Logger) *ParquetExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParquetExporter{compression: compression, logger: logger}
}

func (e *ParquetExporter) writerOptions() ([]parquet.WriterOption, error) {
	switch e.compression {
	case "", "snappy":
		return []parquet.WriterOption{parquet.Compression(&parquet.Snappy)}, nil
	case "zstd":
		return []parquet.WriterOption{parquet.Compression(&parquet.Zstd)}, nil
	case "gzip":
		return []parquet.WriterOption{parquet.Compression(&parquet.Gzip)}, nil
	case "none":
		return []parquet.WriterOption{parquet.Compression(&parquet.Uncompressed)}, nil
	default:
		return nil, fmt.Errorf("unsupported parquet compression %q", e.compression)
	}
}

// Export writes the four columnar files into dir.
func (e *ParquetExporter) Export(ctx context.Context, dir string, report *domain.Report) error {
	opts, err := e.writerOptions()
	if err != nil {
		return apperrors.NewExportError(dir, "invalid parquet options", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewExportError(dir, "failed to create directory", err)
	}

	if err := writeParquet(filepath.Join(dir, HourRawFile), hourRawRecords(report.Hourly), opts); err != nil {
		return err
	}
	if err := writeParquet(filepath.Join(dir, HourDailyFile), hourDailyRecords(report.Aggregates), opts); err != nil {
		return err
	}
	if err := writeParquet(filepath.Join(dir, MergedFile), mergedRecords(report.Main), opts); err != nil {
		return err
	}
	if err := writeParquet(filepath.Join(dir, SummaryPeakFile), peakRecords(report.Peaks), opts); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Exported columnar files",
		slog.String("dir", dir),
		slog.String("compression", e.compression))
	return nil
}

func writeParquet[T any](path string, rows []T, opts []parquet.WriterOption) error {
	if err := parquet.WriteFile(path, rows, opts...); err != nil {
		return apperrors.NewExportError(path, "failed to write parquet file", err)
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return timePtr(t.Time)
}

func nullIntPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func roundedPtr(v domain.Value) *float64 {
	return v.Rounded().Ptr()
}

func hourRawRecords(samples []domain.HourlySample) []HourRawRecord {
	out := make([]HourRawRecord, len(samples))
	for i, s := range samples {
		rec := HourRawRecord{Value: roundedPtr(s.Value)}
		if s.HasTimestamp() {
			rec.DisplayTime = timePtr(s.Timestamp)
			rec.HydroDate = timePtr(s.HydroDate())
		}
		out[i] = rec
	}
	return out
}

func hourDailyRecords(rows []domain.DailyAggregateRow) []HourDailyRecord {
	out := make([]HourDailyRecord, len(rows))
	for i, r := range rows {
		out[i] = HourDailyRecord{
			HydroDate:    r.HydroDate,
			VarDenAvg:    roundedPtr(r.VarDenAvg),
			FixedDenAvg:  roundedPtr(r.FixedDenAvg),
			NonNullCount: int64(r.NonNullCount),
		}
	}
	return out
}

func mergedRecords(rows []domain.RankedRow) []MergedRecord {
	out := make([]MergedRecord, len(rows))
	for i, r := range rows {
		lv := func(c domain.Column, l domain.FlowLevel) *float64 { return roundedPtr(r.Levels[c][l]) }
		out[i] = MergedRecord{
			HydroDate:    r.HydroDate,
			Year:         int32(r.Year),
			VarDenAvg:    roundedPtr(r.VarDenAvg),
			FixedDenAvg:  roundedPtr(r.FixedDenAvg),
			NonNullCount: nullIntPtr(r.NonNullCount),
			DailyValue:   roundedPtr(r.DailyValue),

			RankVarDen:     nullIntPtr(r.Ranks[domain.ColumnVarDen]),
			RankFixedDen:   nullIntPtr(r.Ranks[domain.ColumnFixedDen]),
			RankDailyValue: nullIntPtr(r.Ranks[domain.ColumnDailyValue]),

			HighVarDen:        lv(domain.ColumnVarDen, domain.LevelHigh),
			NormalVarDen:      lv(domain.ColumnVarDen, domain.LevelNormal),
			LowVarDen:         lv(domain.ColumnVarDen, domain.LevelLow),
			DroughtVarDen:     lv(domain.ColumnVarDen, domain.LevelDrought),
			HighFixedDen:      lv(domain.ColumnFixedDen, domain.LevelHigh),
			NormalFixedDen:    lv(domain.ColumnFixedDen, domain.LevelNormal),
			LowFixedDen:       lv(domain.ColumnFixedDen, domain.LevelLow),
			DroughtFixedDen:   lv(domain.ColumnFixedDen, domain.LevelDrought),
			HighDailyValue:    lv(domain.ColumnDailyValue, domain.LevelHigh),
			NormalDailyValue:  lv(domain.ColumnDailyValue, domain.LevelNormal),
			LowDailyValue:     lv(domain.ColumnDailyValue, domain.LevelLow),
			DroughtDailyValue: lv(domain.ColumnDailyValue, domain.LevelDrought),
		}
	}
	return out
}

func peakRecords(peaks []domain.PeakRow) []PeakRecord {
	out := make([]PeakRecord, len(peaks))
	for i, p := range peaks {
		out[i] = PeakRecord{
			HydroDate: p.HydroDate,
			PeakValue: roundedPtr(p.Value),
			PeakTime:  nullTimePtr(p.Time),
		}
	}
	return out
}
