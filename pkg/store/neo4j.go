package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/easyops/membank-go/pkg/graph"
)

// Neo4jCorpusStore Neo4j 语料存储
//
// 基于 Neo4j 的图存储实现，文档为 Document 节点，
// 声明依赖为 DEPENDS_ON 关系，支持按图查询依赖。
type Neo4jCorpusStore struct {
	driver neo4j.DriverWithContext
}

// Neo4jConfig Neo4j 配置
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
}

// NewNeo4jCorpusStore 创建 Neo4j 语料存储
func NewNeo4jCorpusStore(config Neo4jConfig) (*Neo4jCorpusStore, error) {
	if config.URI == "" {
		config.URI = "bolt://localhost:7687"
	}

	auth := neo4j.NoAuth()
	if config.Username != "" && config.Password != "" {
		auth = neo4j.BasicAuth(config.Username, config.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(config.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	// 验证连接
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify connectivity: %w", err)
	}

	store := &Neo4jCorpusStore{driver: driver}

	// 创建索引
	if err := store.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

// createIndexes 创建索引
func (s *Neo4jCorpusStore) createIndexes(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	indexes := []string{
		"CREATE CONSTRAINT document_name IF NOT EXISTS FOR (d:Document) REQUIRE d.name IS UNIQUE",
		"CREATE INDEX document_updated_at IF NOT EXISTS FOR (d:Document) ON (d.updated_at)",
	}

	for _, idx := range indexes {
		_, err := session.Run(ctx, idx, nil)
		if err != nil {
			// 忽略索引已存在的错误
			if !strings.Contains(err.Error(), "already exists") {
				return err
			}
		}
	}

	return nil
}

// Put 存储文档及其依赖边
func (s *Neo4jCorpusStore) Put(ctx context.Context, doc StoredDocument) error {
	if doc.Name == "" {
		return ErrInvalidInput
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	now := time.Now().UnixMilli()

	var lastModified int64
	if !doc.LastModified.IsZero() {
		lastModified = doc.LastModified.UnixMilli()
	}

	var quality interface{}
	if doc.QualityScore != nil {
		quality = *doc.QualityScore
	}

	query := `
	MERGE (d:Document {name: $name})
	ON CREATE SET
		d.content = $content,
		d.quality = $quality,
		d.last_modified = $lastModified,
		d.revision = $revision,
		d.created_at = $now,
		d.updated_at = $now
	ON MATCH SET
		d.content = $content,
		d.quality = $quality,
		d.last_modified = $lastModified,
		d.revision = $revision,
		d.updated_at = $now
	WITH d
	OPTIONAL MATCH (d)-[r:DEPENDS_ON]->()
	DELETE r
	`

	params := map[string]interface{}{
		"name":         doc.Name,
		"content":      doc.Content,
		"quality":      quality,
		"lastModified": lastModified,
		"revision":     uuid.NewString(),
		"now":          now,
	}

	if _, err := session.Run(ctx, query, params); err != nil {
		return err
	}

	// 重建依赖边，依赖目标可以尚未入库
	for _, dep := range doc.Dependencies {
		depQuery := `
		MATCH (d:Document {name: $name})
		MERGE (t:Document {name: $dep})
		ON CREATE SET t.created_at = $now, t.updated_at = $now, t.revision = $revision
		MERGE (d)-[:DEPENDS_ON]->(t)
		`
		_, err := session.Run(ctx, depQuery, map[string]interface{}{
			"name":     doc.Name,
			"dep":      dep,
			"now":      now,
			"revision": uuid.NewString(),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Get 获取文档
func (s *Neo4jCorpusStore) Get(ctx context.Context, name string) (*StoredDocument, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `
	MATCH (d:Document {name: $name})
	OPTIONAL MATCH (d)-[:DEPENDS_ON]->(t:Document)
	RETURN d, collect(t.name) as deps
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"name": name})
	if err != nil {
		return nil, err
	}

	if result.Next(ctx) {
		record := result.Record()
		nodeVal, _ := record.Get("d")
		node := nodeVal.(neo4j.Node)

		doc := s.nodeToDocument(node)

		depsVal, _ := record.Get("deps")
		for _, d := range depsVal.([]interface{}) {
			if depName, ok := d.(string); ok {
				doc.Dependencies = append(doc.Dependencies, depName)
			}
		}

		return doc, nil
	}

	return nil, ErrNotFound
}

// Delete 删除文档及其关系
func (s *Neo4jCorpusStore) Delete(ctx context.Context, name string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `MATCH (d:Document {name: $name}) DETACH DELETE d`

	result, err := session.Run(ctx, query, map[string]interface{}{"name": name})
	if err != nil {
		return err
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return err
	}

	if summary.Counters().NodesDeleted() == 0 {
		return ErrNotFound
	}

	return nil
}

// List 按名称排序返回全部文档
func (s *Neo4jCorpusStore) List(ctx context.Context) ([]StoredDocument, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `
	MATCH (d:Document)
	OPTIONAL MATCH (d)-[:DEPENDS_ON]->(t:Document)
	RETURN d, collect(t.name) as deps
	ORDER BY d.name
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	var results []StoredDocument
	for result.Next(ctx) {
		record := result.Record()
		nodeVal, _ := record.Get("d")
		node := nodeVal.(neo4j.Node)

		doc := s.nodeToDocument(node)

		depsVal, _ := record.Get("deps")
		for _, d := range depsVal.([]interface{}) {
			if depName, ok := d.(string); ok {
				doc.Dependencies = append(doc.Dependencies, depName)
			}
		}

		results = append(results, *doc)
	}

	return results, nil
}

// Count 统计数量
func (s *Neo4jCorpusStore) Count(ctx context.Context) (int, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (d:Document) RETURN count(d) as count`, nil)
	if err != nil {
		return 0, err
	}

	if result.Next(ctx) {
		countVal, _ := result.Record().Get("count")
		return int(countVal.(int64)), nil
	}

	return 0, nil
}

// Clear 清空所有数据
func (s *Neo4jCorpusStore) Clear(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `MATCH (d:Document) DETACH DELETE d`, nil)
	return err
}

// Close 关闭连接
func (s *Neo4jCorpusStore) Close() error {
	return s.driver.Close(context.Background())
}

// Dependencies 查询文档的直接依赖
func (s *Neo4jCorpusStore) Dependencies(ctx context.Context, name string) ([]string, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `
	MATCH (d:Document {name: $name})-[:DEPENDS_ON]->(t:Document)
	RETURN t.name as name
	ORDER BY t.name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"name": name})
	if err != nil {
		return nil, err
	}

	var deps []string
	for result.Next(ctx) {
		nameVal, _ := result.Record().Get("name")
		if depName, ok := nameVal.(string); ok {
			deps = append(deps, depName)
		}
	}

	return deps, nil
}

// Dependents 查询直接依赖该文档的文档
func (s *Neo4jCorpusStore) Dependents(ctx context.Context, name string) ([]string, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `
	MATCH (d:Document)-[:DEPENDS_ON]->(t:Document {name: $name})
	RETURN d.name as name
	ORDER BY d.name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"name": name})
	if err != nil {
		return nil, err
	}

	var deps []string
	for result.Next(ctx) {
		nameVal, _ := result.Record().Get("name")
		if depName, ok := nameVal.(string); ok {
			deps = append(deps, depName)
		}
	}

	return deps, nil
}

// DependencyFn 返回可供图遍历使用的依赖查询函数
//
// 查询失败时返回空依赖，遍历按孤立节点处理。
func (s *Neo4jCorpusStore) DependencyFn(ctx context.Context) graph.DependencyFn {
	return func(node string) []string {
		deps, err := s.Dependencies(ctx, node)
		if err != nil {
			return nil
		}
		return deps
	}
}

// nodeToDocument 将 Neo4j 节点转换为文档
func (s *Neo4jCorpusStore) nodeToDocument(node neo4j.Node) *StoredDocument {
	doc := &StoredDocument{
		Name:      getStringProp(node.Props, "name"),
		Content:   getStringProp(node.Props, "content"),
		Revision:  getStringProp(node.Props, "revision"),
		CreatedAt: time.UnixMilli(getInt64Prop(node.Props, "created_at")),
		UpdatedAt: time.UnixMilli(getInt64Prop(node.Props, "updated_at")),
	}

	if v, ok := node.Props["quality"].(float64); ok {
		doc.QualityScore = &v
	}
	if lm := getInt64Prop(node.Props, "last_modified"); lm != 0 {
		doc.LastModified = time.UnixMilli(lm)
	}

	return doc
}

// getStringProp 获取字符串属性
func getStringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

// getInt64Prop 获取 int64 属性
func getInt64Prop(props map[string]interface{}, key string) int64 {
	if v, ok := props[key].(int64); ok {
		return v
	}
	return 0
}

// Compile-time interface check
var _ CorpusStore = (*Neo4jCorpusStore)(nil)
