// Package otel provides observability integration for MemBank
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/easyops/membank-go/pkg/optimizer"
)

// TracedOptimizer wraps a context optimizer with tracing support
type TracedOptimizer struct {
	optimizer *optimizer.Optimizer
	tracer    Tracer
	metrics   Metrics
	logger    Logger
}

// TracedOptimizerOption configures the traced optimizer
type TracedOptimizerOption func(*TracedOptimizer)

// WithTracedOptimizerTracer sets the tracer
func WithTracedOptimizerTracer(tracer Tracer) TracedOptimizerOption {
	return func(t *TracedOptimizer) {
		t.tracer = tracer
	}
}

// WithTracedOptimizerMetrics sets the metrics
func WithTracedOptimizerMetrics(metrics Metrics) TracedOptimizerOption {
	return func(t *TracedOptimizer) {
		t.metrics = metrics
	}
}

// WithTracedOptimizerLogger sets the logger
func WithTracedOptimizerLogger(logger Logger) TracedOptimizerOption {
	return func(t *TracedOptimizer) {
		t.logger = logger
	}
}

// NewTracedOptimizer creates a traced optimizer wrapper
func NewTracedOptimizer(opt *optimizer.Optimizer, opts ...TracedOptimizerOption) *TracedOptimizer {
	to := &TracedOptimizer{
		optimizer: opt,
		tracer:    NewNoopTracer(),
		metrics:   NewNoopMetrics(),
		logger:    NewNoopLogger(),
	}

	for _, opt := range opts {
		opt(to)
	}

	return to
}

// OptimizeContext runs an optimization with tracing
func (t *TracedOptimizer) OptimizeContext(ctx context.Context, req *optimizer.OptimizeRequest) (*optimizer.OptimizationResult, error) {
	strategy := ""
	budget := 0
	corpusSize := 0
	if req != nil {
		strategy = req.Strategy
		budget = req.TokenBudget
		corpusSize = len(req.FilesContent)
	}

	ctx, span := t.tracer.Start(ctx, "optimizer.optimize",
		WithSpanKind(SpanKindInternal),
		WithAttributes(
			OptimizerStrategy(strategy),
			OptimizerBudget(budget),
			attribute.Int(AttrOptimizerCorpusSize, corpusSize),
		),
	)
	defer span.End()

	startTime := time.Now()
	result, err := t.optimizer.OptimizeContext(ctx, req)
	duration := time.Since(startTime)

	t.recordMetrics(ctx, result, err, duration)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(StatusError, err.Error())
		t.logger.WithContext(ctx).Error("context optimization failed",
			"strategy", strategy,
			"budget", budget,
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(OptimizerSelection(len(result.SelectedFiles), len(result.ExcludedFiles), result.TotalTokens)...)
	span.SetAttributes(attribute.Float64(AttrOptimizerUtilization, result.Utilization))
	span.AddEvent("optimizer.result",
		attribute.String(AttrOptimizerStrategy, result.StrategyUsed),
	)
	span.SetStatus(StatusOK, "")

	t.logger.WithContext(ctx).Info("context optimized",
		"strategy", result.StrategyUsed,
		"selected", len(result.SelectedFiles),
		"excluded", len(result.ExcludedFiles),
		"total_tokens", result.TotalTokens,
		"utilization", result.Utilization,
		"duration_ms", duration.Milliseconds(),
	)

	return result, nil
}

// recordMetrics records optimization run metrics
func (t *TracedOptimizer) recordMetrics(ctx context.Context, result *optimizer.OptimizationResult, err error, duration time.Duration) {
	if err != nil {
		t.metrics.Counter(MetricOptimizeRuns).Add(ctx, 1,
			NewAttr("status", "error"),
		)
		t.metrics.Counter(MetricOptimizeErrors).Add(ctx, 1)
		t.metrics.Histogram(MetricOptimizeRunDuration).Record(ctx, duration.Seconds()*1000)
		return
	}

	t.metrics.Counter(MetricOptimizeRuns).Add(ctx, 1,
		NewAttr("status", "success"),
		NewAttr("strategy", result.StrategyUsed),
	)
	t.metrics.Counter(MetricTokensSelected).Add(ctx, int64(result.TotalTokens),
		NewAttr("strategy", result.StrategyUsed),
	)
	t.metrics.Histogram(MetricFilesSelected).Record(ctx, float64(len(result.SelectedFiles)),
		NewAttr("strategy", result.StrategyUsed),
	)
	t.metrics.Histogram(MetricFilesExcluded).Record(ctx, float64(len(result.ExcludedFiles)),
		NewAttr("strategy", result.StrategyUsed),
	)
	t.metrics.Histogram(MetricBudgetUtilization).Record(ctx, result.Utilization,
		NewAttr("strategy", result.StrategyUsed),
	)
	t.metrics.Histogram(MetricOptimizeRunDuration).Record(ctx, duration.Seconds()*1000,
		NewAttr("strategy", result.StrategyUsed),
	)
}

// DocumentStore interface for corpus storage backends
type DocumentStore interface {
	Put(ctx context.Context, name, content string, dependencies []string) error
	Get(ctx context.Context, name string) (string, error)
	Delete(ctx context.Context, name string) error
}

// TracedStore wraps a document store with tracing support
type TracedStore struct {
	store   DocumentStore
	backend string
	tracer  Tracer
	metrics Metrics
}

// NewTracedStore creates a traced store wrapper
func NewTracedStore(store DocumentStore, backend string, tracer Tracer, metrics Metrics) *TracedStore {
	if tracer == nil {
		tracer = NewNoopTracer()
	}
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	return &TracedStore{
		store:   store,
		backend: backend,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Put stores a document with tracing
func (s *TracedStore) Put(ctx context.Context, name, content string, dependencies []string) error {
	return s.traced(ctx, "store.put", name, func(ctx context.Context) error {
		return s.store.Put(ctx, name, content, dependencies)
	})
}

// Get retrieves a document with tracing
func (s *TracedStore) Get(ctx context.Context, name string) (string, error) {
	var content string
	err := s.traced(ctx, "store.get", name, func(ctx context.Context) error {
		var err error
		content, err = s.store.Get(ctx, name)
		return err
	})
	return content, err
}

// Delete removes a document with tracing
func (s *TracedStore) Delete(ctx context.Context, name string) error {
	return s.traced(ctx, "store.delete", name, func(ctx context.Context) error {
		return s.store.Delete(ctx, name)
	})
}

func (s *TracedStore) traced(ctx context.Context, op, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, op,
		WithSpanKind(SpanKindClient),
		WithAttributes(
			StoreBackend(s.backend),
			StoreDocument(name),
		),
	)
	defer span.End()

	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(StatusError, err.Error())
		s.metrics.Counter(MetricStoreErrors).Add(ctx, 1,
			NewAttr("backend", s.backend),
			NewAttr("operation", op),
		)
	} else {
		span.SetStatus(StatusOK, "")
	}

	s.metrics.Counter(MetricStoreOperations).Add(ctx, 1,
		NewAttr("backend", s.backend),
		NewAttr("operation", op),
		NewAttr("status", status),
	)

	return err
}

// compile-time interface check
var _ DocumentStore = (*TracedStore)(nil)
