package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCorpusStore SQLite 语料存储
//
// 基于 SQLite 的持久化语料存储，适用于生产环境。
type SQLiteCorpusStore struct {
	db *sql.DB
}

// NewSQLiteCorpusStore 创建 SQLite 语料存储
func NewSQLiteCorpusStore(dbPath string) (*SQLiteCorpusStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteCorpusStore{db: db}

	// 初始化表结构
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化表结构
func (s *SQLiteCorpusStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		content TEXT,
		dependencies TEXT,
		quality REAL,
		last_modified INTEGER,
		revision TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at);
	`

	_, err := s.db.Exec(query)
	return err
}

// Put 存储文档
func (s *SQLiteCorpusStore) Put(ctx context.Context, doc StoredDocument) error {
	if doc.Name == "" {
		return ErrInvalidInput
	}

	deps, err := json.Marshal(doc.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to marshal dependencies: %w", err)
	}

	var quality sql.NullFloat64
	if doc.QualityScore != nil {
		quality = sql.NullFloat64{Float64: *doc.QualityScore, Valid: true}
	}

	var lastModified sql.NullInt64
	if !doc.LastModified.IsZero() {
		lastModified = sql.NullInt64{Int64: doc.LastModified.UnixMilli(), Valid: true}
	}

	now := time.Now().UnixMilli()
	createdAt := now
	if !doc.CreatedAt.IsZero() {
		createdAt = doc.CreatedAt.UnixMilli()
	}

	query := `
	INSERT INTO documents (name, content, dependencies, quality, last_modified, revision, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		content = excluded.content,
		dependencies = excluded.dependencies,
		quality = excluded.quality,
		last_modified = excluded.last_modified,
		revision = excluded.revision,
		updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.Name, doc.Content, string(deps), quality, lastModified, uuid.NewString(), createdAt, now,
	)
	return err
}

// Get 获取文档
func (s *SQLiteCorpusStore) Get(ctx context.Context, name string) (*StoredDocument, error) {
	query := `SELECT name, content, dependencies, quality, last_modified, revision, created_at, updated_at
	FROM documents WHERE name = ?`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete 删除文档
func (s *SQLiteCorpusStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// List 按名称排序返回全部文档
func (s *SQLiteCorpusStore) List(ctx context.Context) ([]StoredDocument, error) {
	query := `SELECT name, content, dependencies, quality, last_modified, revision, created_at, updated_at
	FROM documents ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []StoredDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *doc)
	}

	return results, rows.Err()
}

// Count 统计数量
func (s *SQLiteCorpusStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// Clear 清空语料
func (s *SQLiteCorpusStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}

// Close 关闭连接
func (s *SQLiteCorpusStore) Close() error {
	return s.db.Close()
}

// scanner 兼容 sql.Row 和 sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanDocument 扫描一行文档记录
func scanDocument(row scanner) (*StoredDocument, error) {
	var doc StoredDocument
	var depsStr string
	var quality sql.NullFloat64
	var lastModified sql.NullInt64
	var createdAt, updatedAt int64

	if err := row.Scan(
		&doc.Name, &doc.Content, &depsStr, &quality, &lastModified, &doc.Revision, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if depsStr != "" {
		if err := json.Unmarshal([]byte(depsStr), &doc.Dependencies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dependencies: %w", err)
		}
	}
	if quality.Valid {
		q := quality.Float64
		doc.QualityScore = &q
	}
	if lastModified.Valid {
		doc.LastModified = time.UnixMilli(lastModified.Int64)
	}

	doc.CreatedAt = time.UnixMilli(createdAt)
	doc.UpdatedAt = time.UnixMilli(updatedAt)

	return &doc, nil
}

// Compile-time interface check
var _ CorpusStore = (*SQLiteCorpusStore)(nil)
