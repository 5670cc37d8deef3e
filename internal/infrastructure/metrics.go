package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "waterinfo_postprocess"

// RunMetrics collects the statistics of one post-processing run in its own
// registry, suitable for the node_exporter textfile collector.
type RunMetrics struct {
	registry *prometheus.Registry

	RowsLoaded       *prometheus.GaugeVec
	MissingValues    *prometheus.GaugeVec
	InvalidatedYears *prometheus.GaugeVec
	StageDuration    *prometheus.GaugeVec
	LastSuccess      prometheus.Gauge
}

// NewRunMetrics creates and registers the run collectors
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		RowsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows",
			Help:      "Rows produced per table in the last run.",
		}, []string{"table"}),
		MissingValues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "missing_values",
			Help:      "Missing values per table in the last run.",
		}, []string{"table"}),
		InvalidatedYears: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "invalidated_years",
			Help:      "Years whose ranks were discarded by the missing-data threshold.",
		}, []string{"column"}),
		StageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage in the last run.",
		}, []string{"stage"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	m.registry.MustRegister(m.RowsLoaded, m.MissingValues, m.InvalidatedYears, m.StageDuration, m.LastSuccess)
	return m
}

// ObserveStage records the time elapsed since start for stage
func (m *RunMetrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Set(time.Since(start).Seconds())
}

// Registry exposes the underlying registry
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the registry in text exposition format. An empty
// path is a no-op.
func (m *RunMetrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
