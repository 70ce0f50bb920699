package optimizer

import (
	"math"
	"strings"
	"time"

	"github.com/easyops/membank-go/pkg/graph"
)

// Scorer 定义文档相关性评分接口。
type Scorer interface {
	// ScoreFiles 对文档集合做多因子评分，返回每个文档的
	// 总分和分量明细。quality 可以为 nil。
	ScoreFiles(task string, files map[string]string, meta map[string]DocumentMetadata, quality map[string]float64) (map[string]Score, error)

	// ScoreSections 按 Markdown 标题切分内容并逐段评分，
	// 返回文档顺序的分段得分列表。
	ScoreSections(task, content string) []SectionScore
}

// ScoreComponents 相关性总分的分量明细。
type ScoreComponents struct {
	// Keyword 任务描述与内容的关键词重叠度。
	Keyword float64
	// Centrality 文档在依赖图中的度中心性。
	Centrality float64
	// Recency 基于最近修改时间的新近性。
	Recency float64
	// Quality 调用方提供的质量分，缺失时为中性 0.5。
	Quality float64
}

// Score 单个文档的相关性评分。
type Score struct {
	// Total 加权总分（0.0-1.0）。
	Total float64
	// Components 分量明细。
	Components ScoreComponents
}

// SectionScore 单个分段的评分。
type SectionScore struct {
	// Section 分段名称（标题文本，首个标题之前为 "preamble"）。
	Section string
	// Score 分段与任务的关键词相关性。
	Score float64
}

// Weights 多因子评分的权重。
//
// 调用方负责保证权重大致归一（和约为 1.0），评分器不做校验。
type Weights struct {
	Keyword    float64 `koanf:"keyword"`
	Centrality float64 `koanf:"centrality"`
	Recency    float64 `koanf:"recency"`
	Quality    float64 `koanf:"quality"`
}

// DefaultWeights 返回默认评分权重。
func DefaultWeights() Weights {
	return Weights{
		Keyword:    0.4,
		Centrality: 0.3,
		Recency:    0.2,
		Quality:    0.1,
	}
}

// RelevanceScorer 基于关键词、依赖中心性、新近性和质量分
// 的多因子评分器。
type RelevanceScorer struct {
	weights Weights
	deps    graph.DependencyFn

	// matcher 可选的关键词匹配器，为 nil 时使用词集重叠比率。
	matcher KeywordMatcher

	// tau 新近性指数衰减的时间常数（秒）。
	tau float64

	// now 当前时间来源，测试中可替换以保证确定性。
	now func() time.Time
}

// ScorerOption 配置 RelevanceScorer。
type ScorerOption func(*RelevanceScorer)

// WithWeights 设置评分权重。
func WithWeights(w Weights) ScorerOption {
	return func(s *RelevanceScorer) {
		s.weights = w
	}
}

// WithDependencies 设置依赖查询回调，用于中心性分量。
func WithDependencies(deps graph.DependencyFn) ScorerOption {
	return func(s *RelevanceScorer) {
		s.deps = deps
	}
}

// WithKeywordMatcher 设置关键词匹配器，替换默认的重叠比率。
func WithKeywordMatcher(matcher KeywordMatcher) ScorerOption {
	return func(s *RelevanceScorer) {
		s.matcher = matcher
	}
}

// WithRecencyTau 设置新近性衰减的时间常数（秒）。
func WithRecencyTau(tau float64) ScorerOption {
	return func(s *RelevanceScorer) {
		s.tau = tau
	}
}

// WithClock 设置当前时间来源（测试用）。
func WithClock(now func() time.Time) ScorerOption {
	return func(s *RelevanceScorer) {
		s.now = now
	}
}

// NewRelevanceScorer 创建新的 RelevanceScorer。
func NewRelevanceScorer(opts ...ScorerOption) *RelevanceScorer {
	s := &RelevanceScorer{
		weights: DefaultWeights(),
		tau:     defaultRecencyTau,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tau <= 0 {
		s.tau = defaultRecencyTau
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// defaultRecencyTau 文档语料的默认衰减常数：7 天。
const defaultRecencyTau = 7 * 24 * 3600

// ScoreFiles 对文档集合做多因子评分。
func (s *RelevanceScorer) ScoreFiles(task string, files map[string]string, meta map[string]DocumentMetadata, quality map[string]float64) (map[string]Score, error) {
	names := sortedKeys(files)
	taskTokens := keywordSet(task)
	degrees, maxDegree := s.corpusDegrees(names, meta)

	if s.matcher != nil {
		docs := make([]string, 0, len(names))
		for _, name := range names {
			docs = append(docs, files[name])
		}
		s.matcher.Fit(docs)
	}

	scores := make(map[string]Score, len(names))
	for _, name := range names {
		components := ScoreComponents{
			Keyword:    s.keyword(task, taskTokens, files[name]),
			Centrality: normalizedDegree(degrees[name], maxDegree),
			Recency:    s.recency(meta[name].LastModified),
			Quality:    qualityOf(name, meta[name], quality),
		}

		total := s.weights.Keyword*components.Keyword +
			s.weights.Centrality*components.Centrality +
			s.weights.Recency*components.Recency +
			s.weights.Quality*components.Quality

		scores[name] = Score{Total: total, Components: components}
	}

	return scores, nil
}

// ScoreSections 按 Markdown 标题切分内容并逐段评分。
func (s *RelevanceScorer) ScoreSections(task, content string) []SectionScore {
	taskTokens := keywordSet(task)
	sections := splitSections(content)

	scores := make([]SectionScore, 0, len(sections))
	for _, sec := range sections {
		scores = append(scores, SectionScore{
			Section: sec.name,
			Score:   overlapRatio(taskTokens, keywordSet(sec.content)),
		})
	}
	return scores
}

// keyword 计算关键词分量。
func (s *RelevanceScorer) keyword(task string, taskTokens map[string]struct{}, content string) float64 {
	if s.matcher != nil {
		return s.matcher.Match(task, content)
	}
	return overlapRatio(taskTokens, keywordSet(content))
}

// corpusDegrees 统计每个文档在语料内的出入度。
//
// 依赖边优先来自注入的依赖回调，否则使用元数据中声明的依赖。
// 指向语料之外的边不计入。
func (s *RelevanceScorer) corpusDegrees(names []string, meta map[string]DocumentMetadata) (map[string]int, int) {
	inSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		inSet[n] = struct{}{}
	}

	degrees := make(map[string]int, len(names))
	for _, name := range names {
		for _, dep := range s.dependenciesOf(name, meta) {
			if _, ok := inSet[dep]; !ok {
				continue
			}
			degrees[name]++
			degrees[dep]++
		}
	}

	maxDegree := 0
	for _, d := range degrees {
		if d > maxDegree {
			maxDegree = d
		}
	}
	return degrees, maxDegree
}

// dependenciesOf 返回文档的直接依赖。
func (s *RelevanceScorer) dependenciesOf(name string, meta map[string]DocumentMetadata) []string {
	if s.deps != nil {
		return s.deps(name)
	}
	return meta[name].Dependencies
}

// recency 计算新近性分量。
// 无时间戳返回中性 0.5，未来时间按当前时间处理。
func (s *RelevanceScorer) recency(lastModified time.Time) float64 {
	if lastModified.IsZero() {
		return 0.5
	}
	delta := s.now().Sub(lastModified).Seconds()
	if delta < 0 {
		delta = 0
	}
	return math.Exp(-delta / s.tau)
}

// qualityOf 解析质量分量。
// 优先级：quality 映射 > 元数据质量分 > 中性 0.5。
func qualityOf(name string, meta DocumentMetadata, quality map[string]float64) float64 {
	if quality != nil {
		if q, ok := quality[name]; ok {
			return clamp01(q)
		}
	}
	if meta.QualityScore != nil {
		return clamp01(*meta.QualityScore)
	}
	return 0.5
}

// normalizedDegree 将度数归一化到 [0,1]。
func normalizedDegree(degree, maxDegree int) float64 {
	if maxDegree == 0 {
		return 0
	}
	return float64(degree) / float64(maxDegree)
}

// overlapRatio 计算任务词集与内容词集的重叠比率。
func overlapRatio(task, content map[string]struct{}) float64 {
	if len(task) == 0 || len(content) == 0 {
		return 0
	}
	overlap := 0
	for token := range task {
		if _, ok := content[token]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(task))
}

// keywordSet 将文本分词为小写词集，过滤停用词。
func keywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range tokenize(text) {
		if _, stop := stopWords[token]; stop {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// tokenize 将文本分割为小写词元用于比较。
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if isTokenChar(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isTokenChar 返回该字符是否应该是词元的一部分。
func isTokenChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r >= 0x4E00 && r <= 0x9FFF // 中文字符
}

// stopWords 关键词匹配时过滤的常见虚词。
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "this": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {},
}

// clamp01 将值限制在 [0,1]。
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// 编译时接口检查
var _ Scorer = (*RelevanceScorer)(nil)
