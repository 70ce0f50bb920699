package config

import "errors"

// 配置验证相关错误
var (
	// ErrInvalidStrategy 策略名称无效
	ErrInvalidStrategy = errors.New("invalid optimization strategy")
	// ErrInvalidBudget 预算值无效
	ErrInvalidBudget = errors.New("token budget must not be negative")
	// ErrInvalidWeight 权重值无效
	ErrInvalidWeight = errors.New("scoring weight must not be negative")
	// ErrInvalidThreshold 阈值无效
	ErrInvalidThreshold = errors.New("relevance threshold must be between 0 and 1")
	// ErrInvalidBackend 存储后端无效
	ErrInvalidBackend = errors.New("invalid store backend")
	// ErrPathRequired 存储路径必填
	ErrPathRequired = errors.New("store path is required")
	// ErrURIRequired 连接地址必填
	ErrURIRequired = errors.New("store uri is required")
)
