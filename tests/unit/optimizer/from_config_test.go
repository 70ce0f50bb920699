package optimizer_test

import (
	"context"
	"testing"
	"time"

	coreconfig "github.com/easyops/membank-go/pkg/core/config"
	"github.com/easyops/membank-go/pkg/optimizer"
)

func TestFromConfig_Defaults(t *testing.T) {
	opt, err := optimizer.FromConfig(coreconfig.OptimizerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "review auth flow",
		FilesContent:    map[string]string{"auth.md": "auth flow and session review"},
		TokenBudget:     1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StrategyUsed != optimizer.StrategyDependencyAware {
		t.Errorf("strategy = %s, want %s", result.StrategyUsed, optimizer.StrategyDependencyAware)
	}
}

func TestFromConfig_AppliesSettings(t *testing.T) {
	cfg := coreconfig.OptimizerConfig{
		DefaultStrategy: coreconfig.StrategyPriority,
		DefaultBudget:   500,
		MandatoryFiles:  []string{"core.md"},
		KeywordWeight:   1.0,
		RecencyTau:      24 * time.Hour,
	}

	opt, err := optimizer.FromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "anything",
		FilesContent: map[string]string{
			"core.md":  "core module",
			"extra.md": "unrelated notes",
		},
		TokenBudget: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.StrategyUsed != optimizer.StrategyPriority {
		t.Errorf("strategy = %s, want %s", result.StrategyUsed, optimizer.StrategyPriority)
	}
	if len(result.SelectedFiles) == 0 || result.SelectedFiles[0] != "core.md" {
		t.Errorf("expected core.md selected first, got %v", result.SelectedFiles)
	}
}

func TestFromConfig_InvalidStrategy(t *testing.T) {
	_, err := optimizer.FromConfig(coreconfig.OptimizerConfig{DefaultStrategy: "greedy"})
	if err == nil {
		t.Fatal("expected error for invalid strategy")
	}
}

func TestFromConfig_NegativeBudget(t *testing.T) {
	_, err := optimizer.FromConfig(coreconfig.OptimizerConfig{DefaultBudget: -5})
	if err == nil {
		t.Fatal("expected error for negative budget")
	}
}
