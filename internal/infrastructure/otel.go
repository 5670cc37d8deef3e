package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Pckk-solvers/Water-Info-Acquirer/internal/config"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts"
)

// TracerName is the instrumentation scope of pipeline spans.
const TracerName = "github.com/Pckk-solvers/Water-Info-Acquirer"

// Tracing owns the tracer used for pipeline stage spans. Without a trace
// file it hands out a no-op tracer.
type Tracing struct {
	Tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	file     *os.File
}

// NewTracing builds tracing from configuration. Spans are written
// synchronously as JSON to cfg.TraceFile, one run per file.
func NewTracing(cfg config.TelemetryConfig) (*Tracing, error) {
	if cfg.TraceFile == "" {
		return &Tracing{Tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(cfg.TraceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	tp, err := newTracerProvider(cfg.ServiceName, file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Tracing{
		Tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(contracts.Version)),
		provider: tp,
		file:     file,
	}, nil
}

func newTracerProvider(serviceName string, w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(contracts.Version),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	), nil
}

// Shutdown flushes pending spans and closes the trace file.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	if err := t.provider.Shutdown(ctx); err != nil {
		t.file.Close()
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return t.file.Close()
}

// RecordError marks span as failed.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// StageAttributes are the standard attributes of a pipeline stage span.
func StageAttributes(stage string, rows int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("stage", stage),
		attribute.Int("rows", rows),
	}
}
