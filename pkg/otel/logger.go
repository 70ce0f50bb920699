package otel

import (
	"context"
	"log/slog"
)

// Logger 结构化日志接口。
//
// WithContext 从上下文中提取追踪标识，日志自动关联 Trace。
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithContext 返回带上下文的 Logger（用于关联 Trace ID）
	WithContext(ctx context.Context) Logger

	// WithFields 返回带额外字段的 Logger
	WithFields(fields map[string]any) Logger
}

// SlogLogger slog 适配器
type SlogLogger struct {
	logger *slog.Logger
	attrs  []any
}

// NewSlogLogger 创建 slog 适配器，logger 为 nil 时使用 slog.Default。
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *SlogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *SlogLogger) log(level slog.Level, msg string, args []any) {
	l.logger.Log(context.Background(), level, msg, append(l.attrs, args...)...)
}

// WithContext 返回带追踪标识的 Logger。
// 上下文中无活跃 Span 时返回原 Logger。
func (l *SlogLogger) WithContext(ctx context.Context) Logger {
	span := SpanFromContext(ctx)
	if span == nil {
		return l
	}

	sc := span.SpanContext()
	if sc.TraceID == "" {
		return l
	}

	// 拷贝后追加，避免同源派生的 Logger 共享底层数组
	attrs := make([]any, len(l.attrs), len(l.attrs)+4)
	copy(attrs, l.attrs)
	attrs = append(attrs,
		"trace_id", sc.TraceID,
		"span_id", sc.SpanID,
	)
	return &SlogLogger{logger: l.logger, attrs: attrs}
}

// WithFields 返回带额外字段的 Logger
func (l *SlogLogger) WithFields(fields map[string]any) Logger {
	attrs := make([]any, len(l.attrs), len(l.attrs)+len(fields)*2)
	copy(attrs, l.attrs)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &SlogLogger{logger: l.logger, attrs: attrs}
}

// SpanFromContext 通过全局追踪器从上下文获取 Span。
// 全局追踪器未初始化时返回 nil。
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil || globalTracer == nil {
		return nil
	}
	return globalTracer.SpanFromContext(ctx)
}

// NoopLogger 空实现日志
type NoopLogger struct{}

// NewNoopLogger 创建空实现日志
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...any)           {}
func (l *NoopLogger) Info(msg string, args ...any)            {}
func (l *NoopLogger) Warn(msg string, args ...any)            {}
func (l *NoopLogger) Error(msg string, args ...any)           {}
func (l *NoopLogger) WithContext(ctx context.Context) Logger  { return l }
func (l *NoopLogger) WithFields(fields map[string]any) Logger { return l }

// compile-time interface check
var _ Logger = (*SlogLogger)(nil)
var _ Logger = (*NoopLogger)(nil)
