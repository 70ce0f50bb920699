package config

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

// IsValid 检查后端是否有效
func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendSQLite, BackendNeo4j:
		return true
	default:
		return false
	}
}

// StoreConfig 语料存储配置
type StoreConfig struct {
	// Backend 存储后端
	Backend Backend `koanf:"backend"`

	// SQLite 配置
	SQLitePath string `koanf:"sqlite_path"`

	// Neo4j 配置
	Neo4jURI      string `koanf:"neo4j_uri"`
	Neo4jUsername string `koanf:"neo4j_username"`
	Neo4jPassword string `koanf:"neo4j_password"`
}

// Validate 验证存储配置
func (c *StoreConfig) Validate() error {
	if c.Backend != "" && !c.Backend.IsValid() {
		return ErrInvalidBackend
	}
	switch c.Backend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return ErrPathRequired
		}
	case BackendNeo4j:
		if c.Neo4jURI == "" {
			return ErrURIRequired
		}
	}
	return nil
}

// WithDefaults 返回带默认值的配置
func (c StoreConfig) WithDefaults() StoreConfig {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	return c
}
