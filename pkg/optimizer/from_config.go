package optimizer

import (
	"fmt"

	coreconfig "github.com/easyops/membank-go/pkg/core/config"
)

// FromConfig 从配置创建优化器
func FromConfig(cfg coreconfig.OptimizerConfig) (*Optimizer, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	counter, err := counterFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	engineCfg := NewConfig(
		WithScoringWeights(Weights{
			Keyword:    cfg.KeywordWeight,
			Centrality: cfg.CentralityWeight,
			Recency:    cfg.RecencyWeight,
			Quality:    cfg.QualityWeight,
		}),
		WithMandatoryFiles(cfg.MandatoryFiles...),
		WithRelevanceBands(cfg.HighRelevance, cfg.LowRelevance),
		WithSectionThreshold(cfg.SectionThreshold),
		WithDefaultStrategy(string(cfg.DefaultStrategy)),
		WithConfigRecencyTau(cfg.RecencyTau.Seconds()),
		WithConfigTokenCounter(counter),
	)

	return New(WithConfig(engineCfg)), nil
}

// counterFromConfig 根据配置选择 Token 计数器。
// 未配置模型时使用默认计数器链。
func counterFromConfig(cfg coreconfig.OptimizerConfig) (TokenCounter, error) {
	if cfg.TokenModel == "" {
		return DefaultTokenCounter(), nil
	}
	counter, err := NewTiktokenCounter(WithModel(cfg.TokenModel))
	if err != nil {
		return nil, fmt.Errorf("token counter for model %q: %w", cfg.TokenModel, err)
	}
	return counter, nil
}
