package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/config"
	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/infrastructure"
	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/services"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	configPath string
	opts       services.Options

	sheetMain           string
	sheetMainRaw        string
	sheetPeaks          string
	sheetYearSummary    string
	sheetYearSummaryRaw string

	logLevel    string
	metricsFile string
	traceFile   string
	version     bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "postprocess: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("postprocess", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &cliFlags{}
	fs.StringVar(&f.opts.HourFile, "hour-file", "", "hourly extract workbook (required)")
	fs.StringVar(&f.opts.DailyFile, "daily-file", "", "daily extract workbook; omit for hourly-only mode")
	fs.StringVar(&f.opts.OutExcel, "out-excel", "", "output workbook path (required)")
	fs.StringVar(&f.opts.OutParquet, "out-parquet", "", "directory for the columnar files")
	fs.StringVar(&f.opts.OutCSV, "out-csv", "", "directory for per-sheet CSV files")

	fs.StringVar(&f.sheetMain, "sheet-main", "", "name of the threshold ranking sheet")
	fs.StringVar(&f.sheetMainRaw, "sheet-main-raw", "", "name of the reference ranking sheet")
	fs.StringVar(&f.sheetPeaks, "sheet-peaks", "", "name of the daily peak sheet")
	fs.StringVar(&f.sheetYearSummary, "sheet-year-summary", "", "name of the threshold year summary sheet")
	fs.StringVar(&f.sheetYearSummaryRaw, "sheet-year-summary-raw", "", "name of the reference year summary sheet")

	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write run metrics to this Prometheus textfile")
	fs.StringVar(&f.traceFile, "trace-file", "", "write stage spans to this file")
	fs.BoolVar(&f.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unexpected arguments %v", fs.Args()), nil)
	}
	return f, nil
}

// applyTo overlays the flags that were set onto cfg.
func (f *cliFlags) applyTo(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Report.SheetMain, f.sheetMain)
	set(&cfg.Report.SheetMainRaw, f.sheetMainRaw)
	set(&cfg.Report.SheetPeaks, f.sheetPeaks)
	set(&cfg.Report.SheetYearSummary, f.sheetYearSummary)
	set(&cfg.Report.SheetYearSummaryRaw, f.sheetYearSummaryRaw)
	set(&cfg.Logging.Level, f.logLevel)
	set(&cfg.Telemetry.MetricsFile, f.metricsFile)
	set(&cfg.Telemetry.TraceFile, f.traceFile)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}
	if err := flags.opts.Validate(); err != nil {
		fmt.Fprintln(stderr, "usage: postprocess --hour-file <path> --out-excel <path> [options]")
		return err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	flags.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer closeLog()

	tracing, err := infrastructure.NewTracing(cfg.Telemetry)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize tracing", err)
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	ctx = infrastructure.WithRunID(ctx, infrastructure.GenerateRunID())
	svc := services.NewPostprocessService(cfg, tracing.Tracer, logger)

	report, runErr := svc.Run(ctx, flags.opts)
	if err := svc.Metrics().WriteTextfile(cfg.Telemetry.MetricsFile); err != nil {
		logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
	}
	if runErr != nil {
		logger.ErrorContext(ctx, "Post-processing failed", slog.String("error", runErr.Error()))
		return runErr
	}

	fmt.Fprintf(stdout, "wrote %s (%d years, run %s)\n", flags.opts.OutExcel, len(report.YearSummary), report.RunID)
	return nil
}
