package optimizer

import (
	"context"
	"math"

	coreerrors "github.com/easyops/membank-go/pkg/core/errors"
	"github.com/easyops/membank-go/pkg/graph"
)

// OptimizeRequest 一次上下文优化的全部输入。
//
// 请求在入口处统一校验，运行期不再做散落的字段检查。
type OptimizeRequest struct {
	// TaskDescription 自然语言任务描述。
	TaskDescription string

	// FilesContent 候选语料：文件名 -> 内容。
	FilesContent map[string]string

	// FilesMetadata 可选的文档元数据：文件名 -> 元信息。
	FilesMetadata map[string]DocumentMetadata

	// TokenBudget Token 总预算，必须非负。
	TokenBudget int

	// Strategy 策略名，空串表示使用配置的默认策略。
	// 未知名称降级为依赖感知算法，但会原样回显。
	Strategy string

	// QualityScores 可选的质量分覆盖：文件名 -> 分数。
	QualityScores map[string]float64
}

// NewOptimizeRequest 从文档列表构建优化请求。
//
// 元数据中带质量分的文档会同时写入 QualityScores，
// 重名文档以后出现的为准。
func NewOptimizeRequest(docs []Document, task string, budget int) *OptimizeRequest {
	req := &OptimizeRequest{
		TaskDescription: task,
		TokenBudget:     budget,
		FilesContent:    make(map[string]string, len(docs)),
		FilesMetadata:   make(map[string]DocumentMetadata, len(docs)),
		QualityScores:   make(map[string]float64),
	}

	for _, doc := range docs {
		req.FilesContent[doc.Name] = doc.Content
		req.FilesMetadata[doc.Name] = doc.Metadata
		if doc.Metadata.QualityScore != nil {
			req.QualityScores[doc.Name] = *doc.Metadata.QualityScore
		} else {
			delete(req.QualityScores, doc.Name)
		}
	}

	return req
}

// Optimizer 上下文优化引擎的入口。
//
// 评分器、策略和依赖图通过构造注入；Optimizer 自身
// 不持有可变状态，同一实例可以并发处理多个请求，
// 前提是注入的依赖图没有被并发修改。
type Optimizer struct {
	config     *Config
	counter    TokenCounter
	deps       graph.DependencyFn
	scorer     Scorer
	strategies *Strategies
}

// Option 配置 Optimizer。
type Option func(*Optimizer)

// WithConfig 设置配置。
func WithConfig(config *Config) Option {
	return func(o *Optimizer) {
		if config != nil {
			o.config = config
		}
	}
}

// WithTokenCounter 设置 Token 计数器。
func WithTokenCounter(counter TokenCounter) Option {
	return func(o *Optimizer) {
		o.counter = counter
	}
}

// WithDependencyFn 设置依赖查询回调。
func WithDependencyFn(deps graph.DependencyFn) Option {
	return func(o *Optimizer) {
		o.deps = deps
	}
}

// WithDependencyGraph 使用内存依赖图作为依赖来源。
func WithDependencyGraph(g *graph.Graph) Option {
	return func(o *Optimizer) {
		if g != nil {
			o.deps = g.Dependencies
		}
	}
}

// WithScorer 设置相关性评分器。
func WithScorer(scorer Scorer) Option {
	return func(o *Optimizer) {
		o.scorer = scorer
	}
}

// New 使用给定选项创建 Optimizer。
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(o)
	}

	// 如果未配置则设置默认值
	if o.counter == nil {
		o.counter = o.config.GetTokenCounter()
	}
	if o.scorer == nil {
		o.scorer = NewRelevanceScorer(
			WithWeights(o.config.Weights),
			WithDependencies(o.deps),
			WithRecencyTau(o.config.RecencyTau),
		)
	}
	if o.strategies == nil {
		o.strategies = NewStrategies(o.counter, o.scorer, o.config)
	}

	return o
}

// Config 返回优化器的配置。
func (o *Optimizer) Config() *Config {
	return o.config
}

// OptimizeContext 执行一次上下文优化。
//
// 空语料是合法输入：返回带解释性说明的空结果而不是错误。
// 评分器每次调用恰好执行一次，没有跨调用缓存。评分器或
// 策略产生的错误原样向上传播，本方法不是故障隔离边界。
func (o *Optimizer) OptimizeContext(ctx context.Context, req *OptimizeRequest) (*OptimizationResult, error) {
	if req == nil {
		return nil, coreerrors.ErrInvalidRequest
	}
	if req.TokenBudget < 0 {
		return nil, coreerrors.ErrNegativeBudget
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = o.config.DefaultStrategy
	}

	if len(req.FilesContent) == 0 {
		result := newResult(strategy)
		result.SetMetadata(MetadataNote, "no files provided; nothing to select")
		result.SetMetadata(MetadataRelevanceScores, map[string]float64{})
		result.finalize(req.TokenBudget)
		return result, nil
	}

	scores, err := o.scorer.ScoreFiles(req.TaskDescription, req.FilesContent, req.FilesMetadata, req.QualityScores)
	if err != nil {
		return nil, err
	}

	totals, rounded := extractTotals(req.FilesContent, scores)

	input := &StrategyInput{
		Task:         req.TaskDescription,
		Files:        req.FilesContent,
		Scores:       totals,
		Budget:       req.TokenBudget,
		Dependencies: o.effectiveDependencies(req),
	}

	result := o.dispatch(strategy, input)
	result.StrategyUsed = strategy

	// 合并相关性分数，但不覆盖策略已写入的元数据键
	if _, exists := result.Metadata[MetadataRelevanceScores]; !exists {
		result.SetMetadata(MetadataRelevanceScores, rounded)
	}

	return result, nil
}

// dispatch 按策略名选择算法。
// 未知名称静默降级为依赖感知算法（约定的宽容行为）。
func (o *Optimizer) dispatch(strategy string, input *StrategyInput) *OptimizationResult {
	switch strategy {
	case StrategyPriority:
		return o.strategies.OptimizeByPriority(input)
	case StrategySectionLevel:
		return o.strategies.OptimizeWithSections(input)
	case StrategyHybrid:
		return o.strategies.OptimizeHybrid(input)
	case StrategyDependencyAware:
		return o.strategies.OptimizeByDependencies(input)
	default:
		return o.strategies.OptimizeByDependencies(input)
	}
}

// effectiveDependencies 返回本次请求的依赖来源：
// 优先使用注入的依赖回调，否则回退到元数据声明的依赖。
func (o *Optimizer) effectiveDependencies(req *OptimizeRequest) graph.DependencyFn {
	if o.deps != nil {
		return o.deps
	}
	meta := req.FilesMetadata
	return func(name string) []string {
		return meta[name].Dependencies
	}
}

// extractTotals 提取每个文件的相关性总分。
// 缺失或非法（NaN/Inf）的分数恢复为 0.0，绝不报错；
// rounded 为保留 3 位小数的输出版本。
func extractTotals(files map[string]string, scores map[string]Score) (totals, rounded map[string]float64) {
	totals = make(map[string]float64, len(files))
	rounded = make(map[string]float64, len(files))
	for name := range files {
		total := scores[name].Total
		if math.IsNaN(total) || math.IsInf(total, 0) {
			total = 0
		}
		totals[name] = total
		rounded[name] = roundScore(total)
	}
	return totals, rounded
}
