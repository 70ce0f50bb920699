package otel

import (
	coreconfig "github.com/easyops/membank-go/pkg/core/config"
)

// FromConfig 将核心可观测性配置转换为 otel 提供者配置。
func FromConfig(c coreconfig.ObservabilityConfig) Config {
	cfg := DefaultConfig()
	cfg.Enabled = c.Enabled
	if c.ServiceName != "" {
		cfg.ServiceName = c.ServiceName
	}
	if c.TracerEndpoint != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Endpoint = c.TracerEndpoint
	}
	if c.MetricsEndpoint != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Endpoint = c.MetricsEndpoint
	}
	if c.SampleRate > 0 {
		cfg.Tracing.SampleRate = c.SampleRate
	}
	return cfg
}
