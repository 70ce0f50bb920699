package otel

import (
	"context"
	"sync"
	"sync/atomic"
)

// Metrics 指标接口。
//
// 按名称返回或创建指标，同名指标共享底层实例。
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
	Gauge(name string) Gauge
}

// Counter 单调递增计数器。
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attr)
}

// Histogram 数值分布直方图。
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attr)
}

// Gauge 可任意赋值的仪表。
type Gauge interface {
	Set(ctx context.Context, value float64, attrs ...Attr)
}

// Attr 指标属性
type Attr struct {
	Key   string
	Value interface{}
}

// NewAttr 创建指标属性
func NewAttr(key string, value interface{}) Attr {
	return Attr{Key: key, Value: value}
}

// InMemoryMetrics 内存指标实现（用于测试和简单场景）
type InMemoryMetrics struct {
	counters   map[string]*InMemoryCounter
	histograms map[string]*InMemoryHistogram
	gauges     map[string]*InMemoryGauge
	mu         sync.Mutex
}

// NewInMemoryMetrics 创建内存指标
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters:   make(map[string]*InMemoryCounter),
		histograms: make(map[string]*InMemoryHistogram),
		gauges:     make(map[string]*InMemoryGauge),
	}
}

// Counter 返回或创建计数器
func (m *InMemoryMetrics) Counter(name string) Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[name]
	if !ok {
		c = &InMemoryCounter{}
		m.counters[name] = c
	}
	return c
}

// Histogram 返回或创建直方图
func (m *InMemoryMetrics) Histogram(name string) Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.histograms[name]
	if !ok {
		h = &InMemoryHistogram{}
		m.histograms[name] = h
	}
	return h
}

// Gauge 返回或创建仪表
func (m *InMemoryMetrics) Gauge(name string) Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.gauges[name]
	if !ok {
		g = &InMemoryGauge{}
		m.gauges[name] = g
	}
	return g
}

// GetCounterValue 获取计数器当前值，不存在时返回 0。
func (m *InMemoryMetrics) GetCounterValue(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c.Value()
	}
	return 0
}

// GetGaugeValue 获取仪表当前值，不存在时返回 0。
func (m *InMemoryMetrics) GetGaugeValue(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.gauges[name]; ok {
		return g.Value()
	}
	return 0
}

// GetHistogramValues 获取直方图已记录的值，不存在时返回 nil。
func (m *InMemoryMetrics) GetHistogramValues(name string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histograms[name]; ok {
		return h.Values()
	}
	return nil
}

// InMemoryCounter 内存计数器
type InMemoryCounter struct {
	value atomic.Int64
}

// Add 增加计数，属性被忽略。
func (c *InMemoryCounter) Add(ctx context.Context, value int64, attrs ...Attr) {
	c.value.Add(value)
}

// Value 获取当前值
func (c *InMemoryCounter) Value() int64 {
	return c.value.Load()
}

// InMemoryHistogram 内存直方图
type InMemoryHistogram struct {
	values []float64
	mu     sync.Mutex
}

// Record 记录值，属性被忽略。
func (h *InMemoryHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values = append(h.values, value)
}

// Values 获取所有记录的值
func (h *InMemoryHistogram) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

// InMemoryGauge 内存仪表
type InMemoryGauge struct {
	value atomic.Value // float64
}

// Set 设置值，属性被忽略。
func (g *InMemoryGauge) Set(ctx context.Context, value float64, attrs ...Attr) {
	g.value.Store(value)
}

// Value 获取当前值
func (g *InMemoryGauge) Value() float64 {
	if v, ok := g.value.Load().(float64); ok {
		return v
	}
	return 0
}

// NoopMetrics 空实现指标
type NoopMetrics struct{}

// NewNoopMetrics 创建空实现指标
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (m *NoopMetrics) Counter(name string) Counter     { return noopCounter }
func (m *NoopMetrics) Histogram(name string) Histogram { return noopHistogram }
func (m *NoopMetrics) Gauge(name string) Gauge         { return noopGauge }

// NoopCounter 空实现计数器
type NoopCounter struct{}

func (c *NoopCounter) Add(ctx context.Context, value int64, attrs ...Attr) {}

// NoopHistogram 空实现直方图
type NoopHistogram struct{}

func (h *NoopHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {}

// NoopGauge 空实现仪表
type NoopGauge struct{}

func (g *NoopGauge) Set(ctx context.Context, value float64, attrs ...Attr) {}

var (
	noopCounter   = &NoopCounter{}
	noopHistogram = &NoopHistogram{}
	noopGauge     = &NoopGauge{}
)

// compile-time interface check
var _ Metrics = (*InMemoryMetrics)(nil)
var _ Metrics = (*NoopMetrics)(nil)
var _ Counter = (*InMemoryCounter)(nil)
var _ Histogram = (*InMemoryHistogram)(nil)
var _ Gauge = (*InMemoryGauge)(nil)
