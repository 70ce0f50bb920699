package optimizer

import (
	"math"
	"sort"
)

// 策略名称。
const (
	// StrategyPriority 按相关性贪心装填。
	StrategyPriority = "priority"
	// StrategyDependencyAware 连同依赖闭包整体纳入。
	StrategyDependencyAware = "dependency_aware"
	// StrategySectionLevel 按相关性分层做分段选择。
	StrategySectionLevel = "section_level"
	// StrategyHybrid 依赖优先、剩余预算用分段补齐。
	StrategyHybrid = "hybrid"
)

// 约定的结果元数据键。
const (
	// MetadataRelevanceScores 每个文档的相关性总分（保留 3 位小数）。
	MetadataRelevanceScores = "relevance_scores"
	// MetadataMandatoryOverflow 自身超出总预算仍被强制纳入的必选文件。
	MetadataMandatoryOverflow = "mandatory_overflow"
	// MetadataNote 解释性说明（例如空语料）。
	MetadataNote = "note"
	// MetadataPhase1Files hybrid 策略第一阶段选中的文件。
	MetadataPhase1Files = "phase1_files"
	// MetadataPhase2Sections hybrid 策略第二阶段补入的分段。
	MetadataPhase2Sections = "phase2_sections"
)

// OptimizationResult 一次上下文优化的结果。
//
// 结果是请求级值对象，调用之间不共享任何状态。
// 不变式：TotalTokens 不超过预算（唯一例外是被标记的必选
// 文件溢出），SelectedFiles 与 ExcludedFiles 不相交。
type OptimizationResult struct {
	// SelectedFiles 整体纳入的文件，按选择顺序。
	SelectedFiles []string

	// SelectedSections 按分段纳入的内容：文件 -> 分段名列表。
	SelectedSections map[string][]string

	// TotalTokens 选中内容的 Token 总量。
	TotalTokens int

	// Utilization 预算利用率 TotalTokens/budget，预算为 0 时为 0。
	Utilization float64

	// ExcludedFiles 被排除的候选文件。
	ExcludedFiles []string

	// StrategyUsed 调用方请求的策略名，原样回显。
	StrategyUsed string

	// Metadata 开放的附加信息，始终包含 relevance_scores。
	Metadata map[string]interface{}
}

// newResult 创建带空集合的结果骨架。
func newResult(strategy string) *OptimizationResult {
	return &OptimizationResult{
		SelectedFiles:    []string{},
		SelectedSections: make(map[string][]string),
		ExcludedFiles:    []string{},
		StrategyUsed:     strategy,
		Metadata:         make(map[string]interface{}),
	}
}

// finalize 计算利用率并保证列表确定有序。
func (r *OptimizationResult) finalize(budget int) {
	r.Utilization = utilization(r.TotalTokens, budget)
	sort.Strings(r.ExcludedFiles)
}

// SetMetadata 设置元数据值。
func (r *OptimizationResult) SetMetadata(key string, value interface{}) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}
	r.Metadata[key] = value
}

// utilization 计算预算利用率，预算为 0 时返回 0 避免除零。
func utilization(totalTokens, budget int) float64 {
	if budget <= 0 {
		return 0
	}
	return float64(totalTokens) / float64(budget)
}

// roundScore 将分数保留 3 位小数。
// 非法数值（NaN/Inf）恢复为 0.0 而不是向上传播。
func roundScore(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*1000) / 1000
}

// sortedKeys 返回映射按名称升序的键列表。
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
