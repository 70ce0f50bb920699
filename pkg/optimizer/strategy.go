package optimizer

import (
	"sort"

	"github.com/easyops/membank-go/pkg/graph"
)

// StrategyInput 选择算法的全部输入。
//
// 策略是纯函数：相同输入总是产生完全相同的结果。
// Dependencies 为 nil 时按无依赖处理。
type StrategyInput struct {
	// Task 任务描述，分段再评分时使用。
	Task string

	// Files 候选文件内容：文件名 -> 内容。
	Files map[string]string

	// Scores 每个文件的相关性总分。
	Scores map[string]float64

	// Budget Token 总预算。
	Budget int

	// Dependencies 依赖查询回调。
	Dependencies graph.DependencyFn
}

// Strategies 四种预算受限的选择算法。
//
// 公共契约：TotalTokens 不超过预算（唯一例外是被标记的
// 必选文件溢出）；同分并列时先高分、再按名称升序。
type Strategies struct {
	counter TokenCounter
	scorer  Scorer
	config  *Config
}

// NewStrategies 创建 Strategies。
// counter/scorer 为 nil 时使用配置的默认实现。
func NewStrategies(counter TokenCounter, scorer Scorer, config *Config) *Strategies {
	if config == nil {
		config = DefaultConfig()
	}
	if counter == nil {
		counter = config.GetTokenCounter()
	}
	if scorer == nil {
		scorer = NewRelevanceScorer(
			WithWeights(config.Weights),
			WithRecencyTau(config.RecencyTau),
		)
	}
	return &Strategies{
		counter: counter,
		scorer:  scorer,
		config:  config,
	}
}

// candidate 一个参与排序的候选文件。
type candidate struct {
	name   string
	score  float64
	tokens int
}

// rankCandidates 构建候选列表：分数降序，同分按名称升序。
// skip 中的文件不参与排序。
func (s *Strategies) rankCandidates(in *StrategyInput, skip map[string]bool) []candidate {
	candidates := make([]candidate, 0, len(in.Files))
	for _, name := range sortedKeys(in.Files) {
		if skip[name] {
			continue
		}
		candidates = append(candidates, candidate{
			name:   name,
			score:  in.Scores[name],
			tokens: s.counter.Count(in.Files[name]),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})
	return candidates
}

// dependenciesOrNone 返回输入的依赖回调，nil 时返回空回调。
func dependenciesOrNone(in *StrategyInput) graph.DependencyFn {
	if in.Dependencies != nil {
		return in.Dependencies
	}
	return func(string) []string { return nil }
}
