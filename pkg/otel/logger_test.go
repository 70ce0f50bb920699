package otel

import (
	"context"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// recordingHandler 捕获日志记录用于断言。
type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func attrValue(r slog.Record, key string) string {
	var v string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v = a.Value.String()
			return false
		}
		return true
	})
	return v
}

func TestSlogLogger_WithFields(t *testing.T) {
	h := &recordingHandler{}
	logger := NewSlogLogger(slog.New(h)).WithFields(map[string]any{"component": "store"})

	logger.Info("document stored")

	if len(h.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(h.records))
	}
	if got := attrValue(h.records[0], "component"); got != "store" {
		t.Errorf("component = %q, want %q", got, "store")
	}
}

func TestSlogLogger_WithContextNoSpan(t *testing.T) {
	logger := NewSlogLogger(slog.New(&recordingHandler{}))

	// 全局追踪器未初始化时返回原 Logger
	if got := logger.WithContext(context.Background()); got != Logger(logger) {
		t.Error("expected the same logger when no span is active")
	}
}

func TestSlogLogger_SiblingsKeepOwnTraceID(t *testing.T) {
	prev := globalTracer
	globalTracer = NewTracer(sdktrace.NewTracerProvider().Tracer("test"))
	defer func() { globalTracer = prev }()

	h := &recordingHandler{}
	// 预留容量，验证派生的 Logger 不共享底层数组
	parent := &SlogLogger{
		logger: slog.New(h),
		attrs:  append(make([]any, 0, 16), "component", "store"),
	}

	ctx1, span1 := globalTracer.Start(context.Background(), "first")
	defer span1.End()
	ctx2, span2 := globalTracer.Start(context.Background(), "second")
	defer span2.End()

	first := parent.WithContext(ctx1)
	second := parent.WithContext(ctx2)

	first.Info("first")
	second.Info("second")

	if len(h.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(h.records))
	}

	want1 := span1.SpanContext().TraceID
	want2 := span2.SpanContext().TraceID
	if want1 == want2 {
		t.Fatal("expected distinct trace ids")
	}

	if got := attrValue(h.records[0], "trace_id"); got != want1 {
		t.Errorf("first trace_id = %s, want %s", got, want1)
	}
	if got := attrValue(h.records[1], "trace_id"); got != want2 {
		t.Errorf("second trace_id = %s, want %s", got, want2)
	}
	if got := attrValue(h.records[0], "component"); got != "store" {
		t.Errorf("component = %q, want %q", got, "store")
	}
}
