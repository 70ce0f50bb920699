package store

import (
	"fmt"

	coreconfig "github.com/easyops/membank-go/pkg/core/config"
)

// FromConfig 从配置创建语料存储
func FromConfig(cfg coreconfig.StoreConfig) (CorpusStore, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return NewCorpusStore(&Config{
		Backend:       Backend(cfg.Backend),
		SQLitePath:    cfg.SQLitePath,
		Neo4jURI:      cfg.Neo4jURI,
		Neo4jUsername: cfg.Neo4jUsername,
		Neo4jPassword: cfg.Neo4jPassword,
	})
}
