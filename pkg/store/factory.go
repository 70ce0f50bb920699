package store

// NewCorpusStore 根据配置创建语料存储
func NewCorpusStore(config *Config) (CorpusStore, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Backend {
	case BackendSQLite:
		return NewSQLiteCorpusStore(config.SQLitePath)
	case BackendNeo4j:
		return NewNeo4jCorpusStore(Neo4jConfig{
			URI:      config.Neo4jURI,
			Username: config.Neo4jUsername,
			Password: config.Neo4jPassword,
		})
	case BackendMemory:
		fallthrough
	default:
		return NewMemoryCorpusStore(), nil
	}
}
