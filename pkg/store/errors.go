package store

import "errors"

// Store errors
var (
	// ErrNotFound 未找到
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput 无效输入
	ErrInvalidInput = errors.New("invalid input")
	// ErrConnectionFailed 连接失败
	ErrConnectionFailed = errors.New("connection failed")
	// ErrStoreClosed 存储已关闭
	ErrStoreClosed = errors.New("store closed")
)
