package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/config"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/dataprocessing"
	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/exporter"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/flowduration"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/infrastructure"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/validation"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// Stage names used for spans, metrics and log lines.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageMerge     = "merge"
	StageRank      = "rank"
	StagePeaks     = "peaks"
	StageSummary   = "summary"
	StageExport    = "export"
)

// Options are the inputs and outputs of one run.
type Options struct {
	HourFile   string `validate:"required"`
	DailyFile  string
	OutExcel   string `validate:"required"`
	OutParquet string
	OutCSV     string
}

// HourlyOnly reports whether the run has no daily table.
func (o Options) HourlyOnly() bool {
	return o.DailyFile == ""
}

// Validate checks required paths and that no output clobbers an input.
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return apperrors.NewValidationError("invalid options", err)
	}

	inputs := map[string]bool{filepath.Clean(o.HourFile): true}
	if o.DailyFile != "" {
		inputs[filepath.Clean(o.DailyFile)] = true
	}
	outputs := make(map[string]bool)
	for _, out := range []string{o.OutExcel, o.OutParquet, o.OutCSV} {
		if out == "" {
			continue
		}
		p := filepath.Clean(out)
		if inputs[p] {
			return apperrors.NewValidationError(fmt.Sprintf("output %q", out), ErrOutputOverwritesInput)
		}
		if outputs[p] {
			return apperrors.NewValidationError(fmt.Sprintf("output %q", out), ErrSameOutputPath)
		}
		outputs[p] = true
	}
	return nil
}

// PostprocessService runs the flow-duration post-processing pipeline.
type PostprocessService struct {
	files     *validation.FileValidator
	loader    *dataprocessing.Loader
	threshold *flowduration.Calculator
	reference *flowduration.Calculator
	workbook  *exporter.WorkbookExporter
	parquet   *exporter.ParquetExporter
	csv       *exporter.CSVWriter
	tracer    trace.Tracer
	metrics   *infrastructure.RunMetrics
	logger    *slog.Logger
}

// NewPostprocessService wires the pipeline from cfg. A nil tracer disables
// tracing and a nil logger falls back to slog.Default.
func NewPostprocessService(cfg *config.Config, tracer trace.Tracer, logger *slog.Logger) *PostprocessService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.TracerName)
	}

	sheets := SheetNamesFromConfig(cfg.Report)
	return &PostprocessService{
		files:     validation.NewFileValidator(logger),
		loader:    dataprocessing.NewLoader(logger),
		threshold: flowduration.NewCalculator(flowduration.ThresholdPolicy, logger),
		reference: flowduration.NewCalculator(flowduration.ReferencePolicy, logger),
		workbook: exporter.NewWorkbookExporter(exporter.WorkbookOptions{
			Sheets:         sheets,
			DateFormat:     cfg.Export.DateFormat,
			DateTimeFormat: cfg.Export.DateTimeFormat,
			NumberFormat:   cfg.Export.NumberFormat,
		}, logger),
		parquet: exporter.NewParquetExporter(cfg.Export.ParquetCompression, logger),
		csv:     exporter.NewCSVWriter(sheets, logger),
		tracer:  tracer,
		metrics: infrastructure.NewRunMetrics(),
		logger:  logger,
	}
}

// SheetNamesFromConfig maps the configured sheet names to the exporter's.
func SheetNamesFromConfig(r config.ReportConfig) exporter.SheetNames {
	return exporter.SheetNames{
		Main:           r.SheetMain,
		MainRaw:        r.SheetMainRaw,
		Peaks:          r.SheetPeaks,
		YearSummary:    r.SheetYearSummary,
		YearSummaryRaw: r.SheetYearSummaryRaw,
	}
}

// Metrics returns the run's metrics.
func (s *PostprocessService) Metrics() *infrastructure.RunMetrics {
	return s.metrics
}

// Run validates opts, builds the report and writes every requested output.
func (s *PostprocessService) Run(ctx context.Context, opts Options) (*domain.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ctx = infrastructure.EnsureRunID(ctx)

	ctx, span := s.tracer.Start(ctx, "postprocess")
	defer span.End()

	s.logger.InfoContext(ctx, "Post-processing started",
		slog.String("hour_file", opts.HourFile),
		slog.String("daily_file", opts.DailyFile),
		slog.Bool("hourly_only", opts.HourlyOnly()))

	report, err := s.Build(ctx, opts)
	if err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}

	if err := s.Export(ctx, opts, report); err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}

	s.metrics.LastSuccess.SetToCurrentTime()
	s.logger.InfoContext(ctx, "Post-processing completed",
		slog.String("out_excel", opts.OutExcel),
		slog.Int("years", len(report.YearSummary)))
	return report, nil
}

// Build loads the inputs and computes every report table without writing
// anything.
func (s *PostprocessService) Build(ctx context.Context, opts Options) (*domain.Report, error) {
	report := &domain.Report{
		RunID:       infrastructure.GetRunID(ctx),
		GeneratedAt: time.Now(),
		HourlyOnly:  opts.HourlyOnly(),
		Columns:     domain.AllColumns,
	}
	if report.HourlyOnly {
		report.Columns = domain.HourlyColumns
	}

	var daily []domain.ExternalDailyRow
	err := s.stage(ctx, StageLoad, func(ctx context.Context) (int, error) {
		if err := s.files.ValidateExcelFile(opts.HourFile); err != nil {
			return 0, err
		}
		if !report.HourlyOnly {
			if err := s.files.ValidateExcelFile(opts.DailyFile); err != nil {
				return 0, err
			}
		}

		hourly, err := s.loader.LoadHourly(ctx, opts.HourFile)
		if err != nil {
			return 0, err
		}
		report.Hourly = hourly
		s.metrics.RowsLoaded.WithLabelValues("hourly").Set(float64(len(hourly)))
		s.metrics.MissingValues.WithLabelValues("hourly").Set(float64(missingSamples(hourly)))

		if report.HourlyOnly {
			return len(hourly), nil
		}
		daily, err = s.loader.LoadDaily(ctx, opts.DailyFile)
		if err != nil {
			return 0, err
		}
		s.metrics.RowsLoaded.WithLabelValues("daily").Set(float64(len(daily)))
		s.metrics.MissingValues.WithLabelValues("daily").Set(float64(missingDaily(daily)))
		return len(hourly) + len(daily), nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.stage(ctx, StageAggregate, func(context.Context) (int, error) {
		report.Aggregates = dataprocessing.AggregateDaily(report.Hourly)
		s.metrics.RowsLoaded.WithLabelValues("aggregates").Set(float64(len(report.Aggregates)))
		return len(report.Aggregates), nil
	})

	_ = s.stage(ctx, StageMerge, func(context.Context) (int, error) {
		report.Merged = dataprocessing.MergeDaily(report.Aggregates, daily)
		s.metrics.RowsLoaded.WithLabelValues("merged").Set(float64(len(report.Merged)))
		return len(report.Merged), nil
	})

	var main, raw flowduration.Table
	_ = s.stage(ctx, StageRank, func(ctx context.Context) (int, error) {
		main = s.threshold.Calculate(ctx, report.Merged, report.Columns)
		raw = s.reference.Calculate(ctx, report.Merged, report.Columns)
		report.Main = main.Rows
		report.MainRaw = raw.Rows
		for _, c := range report.Columns {
			s.metrics.InvalidatedYears.WithLabelValues(c.String()).Set(float64(main.InvalidatedCount(c)))
		}
		return len(main.Rows), nil
	})

	_ = s.stage(ctx, StagePeaks, func(context.Context) (int, error) {
		report.Peaks = dataprocessing.BuildPeaks(report.Hourly)
		s.metrics.RowsLoaded.WithLabelValues("peaks").Set(float64(len(report.Peaks)))
		return len(report.Peaks), nil
	})

	_ = s.stage(ctx, StageSummary, func(context.Context) (int, error) {
		report.YearSummary = flowduration.BuildYearSummaries(main, report.Hourly)
		report.YearSummaryRaw = flowduration.BuildYearSummaries(raw, report.Hourly)
		return len(report.YearSummary), nil
	})

	return report, nil
}

// Export writes the workbook and, when requested, the columnar and CSV files.
func (s *PostprocessService) Export(ctx context.Context, opts Options, report *domain.Report) error {
	return s.stage(ctx, StageExport, func(ctx context.Context) (int, error) {
		if err := s.workbook.Export(ctx, opts.OutExcel, report); err != nil {
			return 0, err
		}
		if opts.OutParquet != "" {
			if err := s.parquet.Export(ctx, opts.OutParquet, report); err != nil {
				return 0, err
			}
		}
		if opts.OutCSV != "" {
			if err := s.csv.Export(ctx, opts.OutCSV, report); err != nil {
				return 0, err
			}
		}
		return len(report.Main), nil
	})
}

// stage runs fn inside a span, records its duration and logs the row count.
func (s *PostprocessService) stage(ctx context.Context, name string, fn func(context.Context) (int, error)) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, name)
	defer span.End()

	rows, err := fn(ctx)
	s.metrics.ObserveStage(name, start)
	span.SetAttributes(infrastructure.StageAttributes(name, rows)...)
	if err != nil {
		infrastructure.RecordError(span, err)
		s.logger.ErrorContext(ctx, "Stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.InfoContext(ctx, "Stage completed",
		slog.String("stage", name),
		slog.Int("rows", rows),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func missingSamples(samples []domain.HourlySample) int {
	n := 0
	for _, s := range samples {
		if !s.Value.Valid() {
			n++
		}
	}
	return n
}

func missingDaily(rows []domain.ExternalDailyRow) int {
	n := 0
	for _, r := range rows {
		if !r.DailyValue.Valid() {
			n++
		}
	}
	return n
}
