package optimizer

import "time"

// DocumentMetadata 文档的可选元信息。
//
// 所有字段都是可选的：缺失的质量分和时间戳由评分器
// 使用中性默认值补齐，不会导致总分归零。
type DocumentMetadata struct {
	// QualityScore 调用方提供的质量分（0.0-1.0），nil 表示未知。
	QualityScore *float64

	// LastModified 最近修改时间，零值表示未知。
	LastModified time.Time

	// Dependencies 文档声明依赖的其它文档标识。
	Dependencies []string
}

// Document 参与优化的文档，请求级值对象。
//
// 文档不在引擎内部持久化：每次优化调用都从调用方
// 提供的内容和元数据重新构建。
type Document struct {
	// Name 文档标识（文件名）。
	Name string

	// Content 文档内容。
	Content string

	// TokenCount 内容的 Token 数量。
	TokenCount int

	// Metadata 可选元信息。
	Metadata DocumentMetadata
}

// NewDocument 创建 Document 并用给定计数器计算 Token 数量。
func NewDocument(name, content string, counter TokenCounter, meta DocumentMetadata) Document {
	if counter == nil {
		counter = DefaultTokenCounter()
	}
	return Document{
		Name:       name,
		Content:    content,
		TokenCount: counter.Count(content),
		Metadata:   meta,
	}
}

// BuildDocuments 从内容与元数据映射构建文档列表，按名称升序。
func BuildDocuments(files map[string]string, meta map[string]DocumentMetadata, counter TokenCounter) []Document {
	if counter == nil {
		counter = DefaultTokenCounter()
	}
	names := sortedKeys(files)
	docs := make([]Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, NewDocument(name, files[name], counter, meta[name]))
	}
	return docs
}
