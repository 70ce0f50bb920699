package store

import (
	"errors"
	"testing"

	coreconfig "github.com/easyops/membank-go/pkg/core/config"
)

func TestFromConfig_DefaultsToMemory(t *testing.T) {
	s, err := FromConfig(coreconfig.StoreConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*MemoryCorpusStore); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}
}

func TestFromConfig_InvalidBackend(t *testing.T) {
	_, err := FromConfig(coreconfig.StoreConfig{Backend: "redis"})
	if err == nil {
		t.Fatal("expected error for invalid backend")
	}
	if !errors.Is(err, coreconfig.ErrInvalidBackend) {
		t.Errorf("expected ErrInvalidBackend, got %v", err)
	}
}

func TestFromConfig_SQLiteRequiresPath(t *testing.T) {
	_, err := FromConfig(coreconfig.StoreConfig{Backend: coreconfig.BackendSQLite})
	if !errors.Is(err, coreconfig.ErrPathRequired) {
		t.Errorf("expected ErrPathRequired, got %v", err)
	}
}
