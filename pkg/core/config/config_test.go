package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Optimizer.DefaultStrategy != StrategyDependencyAware {
		t.Errorf("default strategy = %s, want %s", cfg.Optimizer.DefaultStrategy, StrategyDependencyAware)
	}
	if cfg.Optimizer.DefaultBudget != 8000 {
		t.Errorf("default budget = %d, want 8000", cfg.Optimizer.DefaultBudget)
	}
	if cfg.Optimizer.KeywordWeight != 0.4 {
		t.Errorf("keyword weight = %f, want 0.4", cfg.Optimizer.KeywordWeight)
	}
	if cfg.Optimizer.RecencyTau != 168*time.Hour {
		t.Errorf("recency tau = %v, want 168h", cfg.Optimizer.RecencyTau)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("store backend = %s, want memory", cfg.Store.Backend)
	}
	if cfg.Observability.SampleRate != 1.0 {
		t.Errorf("sample rate = %f, want 1.0", cfg.Observability.SampleRate)
	}
	if cfg.Observability.ServiceName != "membank" {
		t.Errorf("service name = %s, want membank", cfg.Observability.ServiceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MEMBANK_OPTIMIZER__DEFAULT_BUDGET", "1234")
	t.Setenv("MEMBANK_OPTIMIZER__DEFAULT_STRATEGY", "priority")
	t.Setenv("MEMBANK_STORE__BACKEND", "sqlite")
	t.Setenv("MEMBANK_STORE__SQLITE_PATH", "/tmp/corpus.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Optimizer.DefaultBudget != 1234 {
		t.Errorf("budget = %d, want 1234", cfg.Optimizer.DefaultBudget)
	}
	if cfg.Optimizer.DefaultStrategy != StrategyPriority {
		t.Errorf("strategy = %s, want priority", cfg.Optimizer.DefaultStrategy)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("backend = %s, want sqlite", cfg.Store.Backend)
	}
	if cfg.Store.SQLitePath != "/tmp/corpus.db" {
		t.Errorf("sqlite path = %s, want /tmp/corpus.db", cfg.Store.SQLitePath)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"optimizer": {"default_budget": 2000, "default_strategy": "hybrid"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Optimizer.DefaultBudget != 2000 {
		t.Errorf("budget = %d, want 2000", cfg.Optimizer.DefaultBudget)
	}
	if cfg.Optimizer.DefaultStrategy != StrategyHybrid {
		t.Errorf("strategy = %s, want hybrid", cfg.Optimizer.DefaultStrategy)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "optimizer:\n  default_budget: 3000\nstore:\n  backend: neo4j\n  neo4j_uri: bolt://localhost:7687\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Optimizer.DefaultBudget != 3000 {
		t.Errorf("budget = %d, want 3000", cfg.Optimizer.DefaultBudget)
	}
	if cfg.Store.Backend != BackendNeo4j {
		t.Errorf("backend = %s, want neo4j", cfg.Store.Backend)
	}
	if cfg.Store.Neo4jURI != "bolt://localhost:7687" {
		t.Errorf("neo4j uri = %s", cfg.Store.Neo4jURI)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Optimizer.DefaultBudget != 8000 {
		t.Errorf("budget = %d, want default 8000", cfg.Optimizer.DefaultBudget)
	}
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("key = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loader := NewLoader()
	if err := loader.LoadFile(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestStrategy_IsValid(t *testing.T) {
	valid := []Strategy{StrategyPriority, StrategyDependencyAware, StrategySectionLevel, StrategyHybrid}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if Strategy("beam_search").IsValid() {
		t.Error("expected beam_search to be invalid")
	}
	if Strategy("").IsValid() {
		t.Error("expected empty strategy to be invalid")
	}
}

func TestOptimizerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OptimizerConfig
		wantErr error
	}{
		{"empty", OptimizerConfig{}, nil},
		{"valid", OptimizerConfig{DefaultStrategy: StrategyPriority, DefaultBudget: 100}, nil},
		{"bad strategy", OptimizerConfig{DefaultStrategy: "greedy"}, ErrInvalidStrategy},
		{"negative budget", OptimizerConfig{DefaultBudget: -1}, ErrInvalidBudget},
		{"negative weight", OptimizerConfig{KeywordWeight: -0.1}, ErrInvalidWeight},
		{"threshold above one", OptimizerConfig{HighRelevance: 1.2}, ErrInvalidThreshold},
		{"low above high", OptimizerConfig{HighRelevance: 0.4, LowRelevance: 0.6}, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StoreConfig
		wantErr error
	}{
		{"empty", StoreConfig{}, nil},
		{"memory", StoreConfig{Backend: BackendMemory}, nil},
		{"bad backend", StoreConfig{Backend: "redis"}, ErrInvalidBackend},
		{"sqlite without path", StoreConfig{Backend: BackendSQLite}, ErrPathRequired},
		{"sqlite with path", StoreConfig{Backend: BackendSQLite, SQLitePath: "/tmp/a.db"}, nil},
		{"neo4j without uri", StoreConfig{Backend: BackendNeo4j}, ErrURIRequired},
		{"neo4j with uri", StoreConfig{Backend: BackendNeo4j, Neo4jURI: "bolt://localhost:7687"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
