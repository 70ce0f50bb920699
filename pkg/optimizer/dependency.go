package optimizer

import (
	"sort"

	"github.com/easyops/membank-go/pkg/graph"
)

// OptimizeByDependencies 连同依赖闭包整体纳入候选。
//
// 候选的准入成本 = 自身 Token 量 + 尚未入选的传递依赖
// 闭包的 Token 量；只有候选和它的全部未满足闭包能一起
// 装进剩余预算时才纳入（按候选全有或全无）。已入选的
// 共享依赖不会被重复计费。语料之外的依赖静默忽略。
//
// 不变式：任何入选文件的语料内传递依赖也全部入选。
func (s *Strategies) OptimizeByDependencies(in *StrategyInput) *OptimizationResult {
	result := newResult(StrategyDependencyAware)
	deps := dependenciesOrNone(in)
	remaining := in.Budget
	selected := make(map[string]bool, len(in.Files))

	for _, cand := range s.rankCandidates(in, nil) {
		if selected[cand.name] {
			// 已作为其它候选的依赖纳入
			continue
		}

		unmet, unmetTokens := s.unmetClosure(cand.name, in, deps, selected)
		cost := cand.tokens + unmetTokens

		if cost > remaining {
			result.ExcludedFiles = append(result.ExcludedFiles, cand.name)
			continue
		}

		for _, dep := range unmet {
			selected[dep] = true
			result.SelectedFiles = append(result.SelectedFiles, dep)
		}
		selected[cand.name] = true
		result.SelectedFiles = append(result.SelectedFiles, cand.name)
		result.TotalTokens += cost
		remaining -= cost
	}

	result.finalize(in.Budget)
	return result
}

// unmetClosure 返回候选尚未入选的语料内传递依赖，
// 按名称升序，以及它们的 Token 总量。
func (s *Strategies) unmetClosure(name string, in *StrategyInput, deps graph.DependencyFn, selected map[string]bool) ([]string, int) {
	closure := graph.TransitiveDependencies(name, deps)

	unmet := make([]string, 0, len(closure))
	for dep := range closure {
		if selected[dep] {
			continue
		}
		if _, ok := in.Files[dep]; !ok {
			continue
		}
		unmet = append(unmet, dep)
	}
	sort.Strings(unmet)

	tokens := 0
	for _, dep := range unmet {
		tokens += s.counter.Count(in.Files[dep])
	}
	return unmet, tokens
}
