package optimizer

import "sort"

// OptimizeHybrid 两阶段混合选择。
//
// 第一阶段运行 OptimizeByDependencies 作为基础选择；
// 若预算有剩余，第二阶段对第一阶段排除的文件逐段再评分，
// 用全局最优的分段机会性地填满剩余预算。
//
// 结果元数据始终同时携带 MetadataPhase1Files 和
// MetadataPhase2Sections —— 即使第一阶段已耗尽预算、
// 第二阶段为空。
func (s *Strategies) OptimizeHybrid(in *StrategyInput) *OptimizationResult {
	base := s.OptimizeByDependencies(in)

	result := newResult(StrategyHybrid)
	result.SelectedFiles = append(result.SelectedFiles, base.SelectedFiles...)
	result.TotalTokens = base.TotalTokens

	phase1 := make([]string, len(base.SelectedFiles))
	copy(phase1, base.SelectedFiles)
	result.SetMetadata(MetadataPhase1Files, phase1)

	phase2 := make(map[string][]string)
	remaining := in.Budget - base.TotalTokens

	// 第二阶段：收集全部被排除文件的分段候选，全局择优
	var candidates []sectionCandidate
	for _, file := range s.rankExcluded(base.ExcludedFiles, in.Scores) {
		for _, sec := range s.sectionCandidates(in.Task, file, in.Files[file]) {
			if sec.score < s.config.SectionThreshold {
				continue
			}
			candidates = append(candidates, sec)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].file != candidates[j].file {
			return candidates[i].file < candidates[j].file
		}
		return candidates[i].index < candidates[j].index
	})

	for _, sec := range candidates {
		if sec.tokens > remaining {
			continue
		}
		phase2[sec.file] = append(phase2[sec.file], sec.section)
		result.TotalTokens += sec.tokens
		remaining -= sec.tokens
	}

	// 没有任何分段入选的文件保持排除状态
	for _, file := range base.ExcludedFiles {
		if _, ok := phase2[file]; !ok {
			result.ExcludedFiles = append(result.ExcludedFiles, file)
		}
	}

	result.SelectedSections = phase2
	result.SetMetadata(MetadataPhase2Sections, phase2)

	result.finalize(in.Budget)
	return result
}

// rankExcluded 将排除文件按分数降序、名称升序排列。
func (s *Strategies) rankExcluded(files []string, scores map[string]float64) []string {
	ranked := make([]string, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}
