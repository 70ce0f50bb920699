package optimizer

import "sort"

// sectionCandidate 参与排序的分段候选。
type sectionCandidate struct {
	file    string
	section string
	index   int
	score   float64
	tokens  int
}

// OptimizeWithSections 按相关性分层做分段选择。
//
// 分数不低于 HighRelevance 的候选整体纳入；位于
// [LowRelevance, HighRelevance) 中间带的候选通过
// ScoreSections 逐段再评分，仅纳入得分不低于
// SectionThreshold 且装得下的分段；低于 LowRelevance 的
// 候选整体丢弃。只有分段入选的文件既不在 SelectedFiles
// 也不在 ExcludedFiles 中。
func (s *Strategies) OptimizeWithSections(in *StrategyInput) *OptimizationResult {
	result := newResult(StrategySectionLevel)
	remaining := in.Budget

	for _, cand := range s.rankCandidates(in, nil) {
		switch {
		case cand.score >= s.config.HighRelevance:
			if cand.tokens <= remaining {
				result.SelectedFiles = append(result.SelectedFiles, cand.name)
				result.TotalTokens += cand.tokens
				remaining -= cand.tokens
			} else {
				result.ExcludedFiles = append(result.ExcludedFiles, cand.name)
			}

		case cand.score >= s.config.LowRelevance:
			picked, tokens := s.pickSections(in.Task, cand.name, in.Files[cand.name], remaining)
			if len(picked) == 0 {
				result.ExcludedFiles = append(result.ExcludedFiles, cand.name)
				continue
			}
			result.SelectedSections[cand.name] = picked
			result.TotalTokens += tokens
			remaining -= tokens

		default:
			result.ExcludedFiles = append(result.ExcludedFiles, cand.name)
		}
	}

	result.finalize(in.Budget)
	return result
}

// pickSections 在剩余预算内选择文件的高分分段。
// 返回分段名列表（按得分降序的选择顺序）与 Token 总量。
func (s *Strategies) pickSections(task, file, content string, remaining int) ([]string, int) {
	candidates := s.sectionCandidates(task, file, content)

	var picked []string
	total := 0
	for _, sec := range candidates {
		if sec.score < s.config.SectionThreshold {
			continue
		}
		if sec.tokens > remaining-total {
			continue
		}
		picked = append(picked, sec.section)
		total += sec.tokens
	}
	return picked, total
}

// sectionCandidates 切分并评分文件的全部分段，
// 按得分降序、同分按文档内顺序排列。
func (s *Strategies) sectionCandidates(task, file, content string) []sectionCandidate {
	sections := splitSections(content)
	scores := s.scorer.ScoreSections(task, content)

	candidates := make([]sectionCandidate, 0, len(sections))
	for i, sec := range sections {
		score := 0.0
		if i < len(scores) {
			score = scores[i].Score
		}
		candidates = append(candidates, sectionCandidate{
			file:    file,
			section: sec.name,
			index:   i,
			score:   score,
			tokens:  s.counter.Count(sec.content),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})
	return candidates
}
