package otel

import "go.opentelemetry.io/otel/attribute"

// 预定义的语义属性键
// 遵循 OpenTelemetry 语义约定
const (
	// Optimizer 相关属性
	AttrOptimizerStrategy    = "optimizer.strategy"
	AttrOptimizerBudget      = "optimizer.budget"
	AttrOptimizerTotalTokens = "optimizer.total_tokens"
	AttrOptimizerUtilization = "optimizer.utilization"
	AttrOptimizerSelected    = "optimizer.selected_count"
	AttrOptimizerExcluded    = "optimizer.excluded_count"
	AttrOptimizerCorpusSize  = "optimizer.corpus_size"

	// Scoring 相关属性
	AttrScoringTask     = "scoring.task"
	AttrScoringDocCount = "scoring.document_count"

	// Graph 相关属性
	AttrGraphNodes  = "graph.node_count"
	AttrGraphEdges  = "graph.edge_count"
	AttrGraphCycles = "graph.cycle_count"

	// Store 相关属性
	AttrStoreBackend  = "store.backend"
	AttrStoreDocument = "store.document"

	// Error 相关属性
	AttrErrorType      = "error.type"
	AttrErrorMessage   = "error.message"
	AttrErrorRetryable = "error.retryable"
)

// OptimizerStrategy 创建策略名称属性
func OptimizerStrategy(name string) attribute.KeyValue {
	return attribute.String(AttrOptimizerStrategy, name)
}

// OptimizerBudget 创建 Token 预算属性
func OptimizerBudget(budget int) attribute.KeyValue {
	return attribute.Int(AttrOptimizerBudget, budget)
}

// OptimizerSelection 创建选择结果属性
func OptimizerSelection(selected, excluded, totalTokens int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrOptimizerSelected, selected),
		attribute.Int(AttrOptimizerExcluded, excluded),
		attribute.Int(AttrOptimizerTotalTokens, totalTokens),
	}
}

// StoreBackend 创建存储后端属性
func StoreBackend(backend string) attribute.KeyValue {
	return attribute.String(AttrStoreBackend, backend)
}

// StoreDocument 创建文档名称属性
func StoreDocument(name string) attribute.KeyValue {
	return attribute.String(AttrStoreDocument, name)
}

// ErrorAttrs 创建错误属性
func ErrorAttrs(errType, message string, retryable bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, message),
		attribute.Bool(AttrErrorRetryable, retryable),
	}
}
