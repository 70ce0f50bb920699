package optimizer

// Config 保存优化引擎的配置。
//
// 配置在构造时检查并补齐默认值，运行期不再做散落的
// 默认值查找。
type Config struct {
	// Weights 相关性评分权重。
	Weights Weights

	// MandatoryFiles 必选文件列表，priority 策略在相关性
	// 排序之前优先纳入这些文件。
	MandatoryFiles []string

	// HighRelevance section_level 策略整体纳入的分数下限。
	HighRelevance float64

	// LowRelevance section_level 策略丢弃候选的分数上限；
	// 位于 [LowRelevance, HighRelevance) 的候选做分段选择。
	LowRelevance float64

	// SectionThreshold 分段被纳入所需的最低分段得分。
	SectionThreshold float64

	// DefaultStrategy 请求未指定策略时使用的策略名。
	DefaultStrategy string

	// RecencyTau 新近性衰减时间常数（秒）。
	RecencyTau float64

	// TokenCounter 要使用的 Token 计数器。
	TokenCounter TokenCounter
}

// ConfigOption 配置 Config。
type ConfigOption func(*Config)

// WithScoringWeights 设置评分权重。
func WithScoringWeights(w Weights) ConfigOption {
	return func(c *Config) {
		c.Weights = w
	}
}

// WithMandatoryFiles 设置必选文件列表。
func WithMandatoryFiles(files ...string) ConfigOption {
	return func(c *Config) {
		c.MandatoryFiles = files
	}
}

// WithRelevanceBands 设置 section_level 策略的分层阈值。
func WithRelevanceBands(high, low float64) ConfigOption {
	return func(c *Config) {
		c.HighRelevance = high
		c.LowRelevance = low
	}
}

// WithSectionThreshold 设置分段纳入的最低得分。
func WithSectionThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.SectionThreshold = threshold
	}
}

// WithDefaultStrategy 设置默认策略名。
func WithDefaultStrategy(strategy string) ConfigOption {
	return func(c *Config) {
		c.DefaultStrategy = strategy
	}
}

// WithConfigRecencyTau 设置新近性衰减时间常数（秒）。
func WithConfigRecencyTau(tau float64) ConfigOption {
	return func(c *Config) {
		c.RecencyTau = tau
	}
}

// WithConfigTokenCounter 设置 Token 计数器。
func WithConfigTokenCounter(counter TokenCounter) ConfigOption {
	return func(c *Config) {
		c.TokenCounter = counter
	}
}

// DefaultConfig 返回具有合理默认值的 Config。
func DefaultConfig() *Config {
	return &Config{
		Weights:          DefaultWeights(),
		HighRelevance:    0.8,
		LowRelevance:     0.3,
		SectionThreshold: 0.5,
		DefaultStrategy:  StrategyDependencyAware,
		RecencyTau:       defaultRecencyTau,
		TokenCounter:     nil, // 需要时使用 DefaultTokenCounter()
	}
}

// NewConfig 使用给定的选项创建新的 Config。
func NewConfig(opts ...ConfigOption) *Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTokenCounter 返回配置的 Token 计数器或默认计数器。
func (c *Config) GetTokenCounter() TokenCounter {
	if c.TokenCounter != nil {
		return c.TokenCounter
	}
	return DefaultTokenCounter()
}
