package config

import "time"

// Strategy 优化策略类型
type Strategy string

const (
	// StrategyPriority 优先级策略
	StrategyPriority Strategy = "priority"
	// StrategyDependencyAware 依赖感知策略
	StrategyDependencyAware Strategy = "dependency_aware"
	// StrategySectionLevel 分节策略
	StrategySectionLevel Strategy = "section_level"
	// StrategyHybrid 混合策略
	StrategyHybrid Strategy = "hybrid"
)

// IsValid 检查策略是否有效
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyPriority, StrategyDependencyAware, StrategySectionLevel, StrategyHybrid:
		return true
	default:
		return false
	}
}

// OptimizerConfig 上下文优化配置
type OptimizerConfig struct {
	// DefaultStrategy 默认优化策略
	DefaultStrategy Strategy `koanf:"default_strategy"`
	// DefaultBudget 默认 Token 预算
	// 默认: 8000
	DefaultBudget int `koanf:"default_budget"`
	// MandatoryFiles 必选文件列表
	MandatoryFiles []string `koanf:"mandatory_files"`

	// KeywordWeight 关键词重合度权重
	KeywordWeight float64 `koanf:"keyword_weight"`
	// CentralityWeight 依赖中心度权重
	CentralityWeight float64 `koanf:"centrality_weight"`
	// RecencyWeight 新近度权重
	RecencyWeight float64 `koanf:"recency_weight"`
	// QualityWeight 质量分权重
	QualityWeight float64 `koanf:"quality_weight"`

	// HighRelevance 高相关阈值（整文件保留）
	HighRelevance float64 `koanf:"high_relevance"`
	// LowRelevance 低相关阈值（整文件剔除）
	LowRelevance float64 `koanf:"low_relevance"`
	// SectionThreshold 分节保留阈值
	SectionThreshold float64 `koanf:"section_threshold"`

	// RecencyTau 新近度衰减时间常数
	// 默认: 168h (一周)
	RecencyTau time.Duration `koanf:"recency_tau"`
	// TokenModel Token 计数使用的模型名称
	TokenModel string `koanf:"token_model"`
}

// Validate 验证优化配置
func (c *OptimizerConfig) Validate() error {
	if c.DefaultStrategy != "" && !c.DefaultStrategy.IsValid() {
		return ErrInvalidStrategy
	}
	if c.DefaultBudget < 0 {
		return ErrInvalidBudget
	}
	for _, w := range []float64{c.KeywordWeight, c.CentralityWeight, c.RecencyWeight, c.QualityWeight} {
		if w < 0 {
			return ErrInvalidWeight
		}
	}
	for _, t := range []float64{c.HighRelevance, c.LowRelevance, c.SectionThreshold} {
		if t < 0 || t > 1 {
			return ErrInvalidThreshold
		}
	}
	if c.HighRelevance != 0 && c.LowRelevance > c.HighRelevance {
		return ErrInvalidThreshold
	}
	return nil
}

// WithDefaults 返回带默认值的配置
func (c OptimizerConfig) WithDefaults() OptimizerConfig {
	if c.DefaultStrategy == "" {
		c.DefaultStrategy = StrategyDependencyAware
	}
	if c.DefaultBudget == 0 {
		c.DefaultBudget = 8000
	}
	if c.KeywordWeight == 0 && c.CentralityWeight == 0 && c.RecencyWeight == 0 && c.QualityWeight == 0 {
		c.KeywordWeight = 0.4
		c.CentralityWeight = 0.3
		c.RecencyWeight = 0.2
		c.QualityWeight = 0.1
	}
	if c.HighRelevance == 0 {
		c.HighRelevance = 0.8
	}
	if c.LowRelevance == 0 {
		c.LowRelevance = 0.3
	}
	if c.SectionThreshold == 0 {
		c.SectionThreshold = 0.5
	}
	if c.RecencyTau == 0 {
		c.RecencyTau = 168 * time.Hour
	}
	return c
}
