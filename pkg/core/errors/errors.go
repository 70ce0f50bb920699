// Package errors 定义引擎的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidRequest 请求无效
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNegativeBudget Token 预算为负数
	ErrNegativeBudget = errors.New("token budget must be non-negative")
)

// 存储相关错误
var (
	// ErrDocumentNotFound 文档未找到
	ErrDocumentNotFound = errors.New("document not found")
	// ErrStoreUnavailable 存储不可用
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreClosed 存储已关闭
	ErrStoreClosed = errors.New("store closed")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsRetryable 判断错误是否可重试
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrStoreUnavailable)
}

// IsFatal 判断错误是否为致命错误（不可恢复）
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNegativeBudget)
}
