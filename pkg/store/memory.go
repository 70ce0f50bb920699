package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCorpusStore 内存语料存储
//
// 基于 map 的简单实现，适用于测试和轻量级场景。
type MemoryCorpusStore struct {
	docs   map[string]*StoredDocument
	closed bool
	mu     sync.RWMutex
}

// NewMemoryCorpusStore 创建内存语料存储
func NewMemoryCorpusStore() *MemoryCorpusStore {
	return &MemoryCorpusStore{
		docs: make(map[string]*StoredDocument),
	}
}

// Put 存储文档
func (s *MemoryCorpusStore) Put(ctx context.Context, doc StoredDocument) error {
	if doc.Name == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	now := time.Now()
	if existing, ok := s.docs[doc.Name]; ok {
		doc.CreatedAt = existing.CreatedAt
	} else if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.Revision = uuid.NewString()

	s.docs[doc.Name] = &doc
	return nil
}

// Get 获取文档
func (s *MemoryCorpusStore) Get(ctx context.Context, name string) (*StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	doc, exists := s.docs[name]
	if !exists {
		return nil, ErrNotFound
	}

	copied := *doc
	copied.Dependencies = append([]string(nil), doc.Dependencies...)
	return &copied, nil
}

// Delete 删除文档
func (s *MemoryCorpusStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, exists := s.docs[name]; !exists {
		return ErrNotFound
	}

	delete(s.docs, name)
	return nil
}

// List 按名称排序返回全部文档
func (s *MemoryCorpusStore) List(ctx context.Context) ([]StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	results := make([]StoredDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		copied := *doc
		copied.Dependencies = append([]string(nil), doc.Dependencies...)
		results = append(results, copied)
	}
	sortDocuments(results)

	return results, nil
}

// Count 统计数量
func (s *MemoryCorpusStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	return len(s.docs), nil
}

// Clear 清空语料
func (s *MemoryCorpusStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.docs = make(map[string]*StoredDocument)
	return nil
}

// Close 关闭存储
func (s *MemoryCorpusStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Compile-time interface check
var _ CorpusStore = (*MemoryCorpusStore)(nil)
