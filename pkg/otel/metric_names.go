package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// Optimizer 指标
	MetricOptimizeRuns        = "optimizer.runs"           // 计数器: 优化执行次数
	MetricOptimizeRunDuration = "optimizer.run.duration"   // 直方图: 优化执行时间(ms)
	MetricOptimizeErrors      = "optimizer.errors"         // 计数器: 优化错误次数
	MetricTokensSelected      = "optimizer.tokens.selected" // 计数器: 选中 Token 总数
	MetricFilesSelected       = "optimizer.files.selected"  // 直方图: 每次选中的文件数
	MetricFilesExcluded       = "optimizer.files.excluded"  // 直方图: 每次剔除的文件数
	MetricBudgetUtilization   = "optimizer.budget.utilization" // 直方图: 预算利用率

	// Scoring 指标
	MetricScoringDuration = "scoring.duration"  // 直方图: 评分时间(ms)
	MetricScoringDocs     = "scoring.documents" // 计数器: 评分文档数

	// Graph 指标
	MetricGraphBuilds = "graph.builds" // 计数器: 图构建次数
	MetricGraphCycles = "graph.cycles" // 计数器: 检出的环数

	// Store 指标
	MetricStoreOperations = "store.operations" // 计数器: 存储操作次数
	MetricStoreErrors     = "store.errors"     // 计数器: 存储错误次数
	MetricStoreDocuments  = "store.documents"  // 仪表: 存储文档数量
)

// MetricUnit 指标单位
type MetricUnit string

const (
	UnitNone         MetricUnit = ""
	UnitMilliseconds MetricUnit = "ms"
	UnitSeconds      MetricUnit = "s"
	UnitBytes        MetricUnit = "By"
	UnitCount        MetricUnit = "1"
)

// MetricDescription 指标描述
type MetricDescription struct {
	Name        string
	Description string
	Unit        MetricUnit
	Type        string // counter, histogram, gauge
}

// PredefinedMetrics 预定义指标列表
var PredefinedMetrics = []MetricDescription{
	{MetricOptimizeRuns, "Number of optimization runs", UnitCount, "counter"},
	{MetricOptimizeRunDuration, "Duration of optimization runs", UnitMilliseconds, "histogram"},
	{MetricOptimizeErrors, "Number of optimization errors", UnitCount, "counter"},
	{MetricTokensSelected, "Number of tokens selected into context", UnitCount, "counter"},
	{MetricFilesSelected, "Number of files selected per run", UnitCount, "histogram"},
	{MetricFilesExcluded, "Number of files excluded per run", UnitCount, "histogram"},
	{MetricBudgetUtilization, "Fraction of the token budget consumed", UnitNone, "histogram"},

	{MetricScoringDuration, "Duration of relevance scoring", UnitMilliseconds, "histogram"},
	{MetricScoringDocs, "Number of documents scored", UnitCount, "counter"},

	{MetricGraphBuilds, "Number of dependency graph builds", UnitCount, "counter"},
	{MetricGraphCycles, "Number of dependency cycles detected", UnitCount, "counter"},

	{MetricStoreOperations, "Number of corpus store operations", UnitCount, "counter"},
	{MetricStoreErrors, "Number of corpus store errors", UnitCount, "counter"},
	{MetricStoreDocuments, "Number of documents in the corpus store", UnitCount, "gauge"},
}
