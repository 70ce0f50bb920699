package optimizer

// OptimizeByPriority 按相关性贪心装填预算。
//
// 必选文件在相关性排序之前优先纳入；自身 Token 量超出
// 整个预算的必选文件仍被强制纳入，并记录在
// MetadataMandatoryOverflow 下 —— 这是预算上限的唯一例外。
// 其余候选按分数降序尽力装填：装不下的候选被跳过而不是
// 截断序列，后续更小的候选仍有机会入选。
func (s *Strategies) OptimizeByPriority(in *StrategyInput) *OptimizationResult {
	result := newResult(StrategyPriority)
	remaining := in.Budget
	handled := make(map[string]bool, len(in.Files))
	var overflow []string

	// 1. 必选文件优先
	for _, name := range s.config.MandatoryFiles {
		content, ok := in.Files[name]
		if !ok || handled[name] {
			continue
		}
		handled[name] = true
		tokens := s.counter.Count(content)

		switch {
		case tokens <= remaining:
			result.SelectedFiles = append(result.SelectedFiles, name)
			result.TotalTokens += tokens
			remaining -= tokens
		case tokens > in.Budget:
			// 必选文件比整个预算还大：强制纳入并标记
			result.SelectedFiles = append(result.SelectedFiles, name)
			result.TotalTokens += tokens
			remaining -= tokens
			overflow = append(overflow, name)
		default:
			result.ExcludedFiles = append(result.ExcludedFiles, name)
		}
	}

	// 2. 其余候选按分数装填剩余预算
	for _, cand := range s.rankCandidates(in, handled) {
		if cand.tokens <= remaining {
			result.SelectedFiles = append(result.SelectedFiles, cand.name)
			result.TotalTokens += cand.tokens
			remaining -= cand.tokens
			continue
		}
		result.ExcludedFiles = append(result.ExcludedFiles, cand.name)
	}

	if len(overflow) > 0 {
		result.SetMetadata(MetadataMandatoryOverflow, overflow)
	}

	result.finalize(in.Budget)
	return result
}
