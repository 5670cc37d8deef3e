package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is a captured log record
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// recordStore is shared by a handler and its WithAttrs children.
type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// RecordingHandler captures every record so tests can assert on log lines
type RecordingHandler struct {
	store *recordStore
	attrs []slog.Attr
}

// NewTestLogger creates a logger backed by a RecordingHandler
func NewTestLogger(t *testing.T) (*slog.Logger, *RecordingHandler) {
	t.Helper()
	h := &RecordingHandler{store: &recordStore{}}
	return slog.New(h), h
}

// Enabled implements slog.Handler; every level is captured.
func (h *RecordingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *RecordingHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

// WithAttrs implements slog.Handler
func (h *RecordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &RecordingHandler{store: h.store, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *RecordingHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns the captured records at level
func (h *RecordingHandler) Records(level slog.Level) []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	var out []LogRecord
	for _, r := range h.store.records {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the first record at level whose message contains msg
func (h *RecordingHandler) Find(level slog.Level, msg string) (LogRecord, bool) {
	for _, r := range h.Records(level) {
		if strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// AssertLogContains fails t unless a record at level contains msg
func AssertLogContains(t *testing.T, h *RecordingHandler, level slog.Level, msg string) LogRecord {
	t.Helper()

	r, ok := h.Find(level, msg)
	if !ok {
		t.Errorf("Expected log message not found at level %s: %q", level, msg)
		for _, rec := range h.Records(level) {
			t.Logf("  - %s %v", rec.Message, rec.Attrs)
		}
	}
	return r
}

// AssertNoErrors fails t if any error-level record was captured
func AssertNoErrors(t *testing.T, h *RecordingHandler) {
	t.Helper()

	for _, r := range h.Records(slog.LevelError) {
		t.Errorf("Unexpected error log: %s %v", r.Message, r.Attrs)
	}
}
