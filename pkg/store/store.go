// Package store provides storage backends for the document corpus.
//
// This package defines interfaces for corpus storage (in-memory, SQLite)
// and dependency-graph storage (Neo4j).
package store

import (
	"context"
	"sort"
	"time"

	"github.com/easyops/membank-go/pkg/optimizer"
)

// CorpusStore 语料存储接口
//
// 用于持久化待优化的文档集合，支持 CRUD 操作和全量加载。
// 默认实现使用内存存储，生产环境建议使用 SQLite。
type CorpusStore interface {
	// Put 存储文档
	Put(ctx context.Context, doc StoredDocument) error

	// Get 获取文档
	Get(ctx context.Context, name string) (*StoredDocument, error)

	// Delete 删除文档
	Delete(ctx context.Context, name string) error

	// List 按名称排序返回全部文档
	List(ctx context.Context) ([]StoredDocument, error)

	// Count 统计数量
	Count(ctx context.Context) (int, error)

	// Clear 清空语料
	Clear(ctx context.Context) error

	// Close 关闭连接
	Close() error
}

// StoredDocument 持久化文档结构
type StoredDocument struct {
	Name         string   `json:"name"`
	Content      string   `json:"content"`
	Dependencies []string `json:"dependencies,omitempty"`
	// QualityScore 质量分 [0, 1]，nil 表示未评估
	QualityScore *float64  `json:"quality_score,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
	// Revision 每次写入生成的修订标识
	Revision  string    `json:"revision,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BuildRequest 将语料转换为优化请求
func BuildRequest(docs []StoredDocument, task string, budget int) *optimizer.OptimizeRequest {
	converted := make([]optimizer.Document, 0, len(docs))
	for _, doc := range docs {
		converted = append(converted, optimizer.Document{
			Name:     doc.Name,
			Content:  doc.Content,
			Metadata: doc.metadata(),
		})
	}
	return optimizer.NewOptimizeRequest(converted, task, budget)
}

// metadata 转换为优化器的文档元数据，依赖列表做防御性拷贝。
func (d StoredDocument) metadata() optimizer.DocumentMetadata {
	return optimizer.DocumentMetadata{
		QualityScore: d.QualityScore,
		LastModified: d.LastModified,
		Dependencies: append([]string(nil), d.Dependencies...),
	}
}

// sortDocuments 按名称排序
func sortDocuments(docs []StoredDocument) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Name < docs[j].Name
	})
}

// Backend 存储后端类型
type Backend string

const (
	// BackendMemory 内存存储
	BackendMemory Backend = "memory"
	// BackendSQLite SQLite 存储
	BackendSQLite Backend = "sqlite"
	// BackendNeo4j Neo4j 存储
	BackendNeo4j Backend = "neo4j"
)

// Config 存储配置
type Config struct {
	// Backend 存储后端
	Backend Backend `json:"backend"`

	// SQLite 配置
	SQLitePath string `json:"sqlite_path,omitempty"`

	// Neo4j 配置
	Neo4jURI      string `json:"neo4j_uri,omitempty"`
	Neo4jUsername string `json:"neo4j_username,omitempty"`
	Neo4jPassword string `json:"neo4j_password,omitempty"`
}

// DefaultConfig 返回默认配置（内存存储）
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendMemory,
	}
}
