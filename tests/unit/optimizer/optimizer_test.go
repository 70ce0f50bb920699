package optimizer_test

import (
	"context"
	"errors"
	"testing"

	coreerrors "github.com/easyops/membank-go/pkg/core/errors"
	"github.com/easyops/membank-go/pkg/optimizer"
)

// charCounter 每个字符记一个 token，保证测试确定性。
func charCounter() optimizer.TokenCounter {
	return &optimizer.EstimatedCounter{CharsPerToken: 1}
}

// fakeScorer 返回固定分数的评分器。
type fakeScorer struct {
	files    map[string]float64
	sections map[string][]optimizer.SectionScore
}

func (f *fakeScorer) ScoreFiles(task string, files map[string]string, meta map[string]optimizer.DocumentMetadata, quality map[string]float64) (map[string]optimizer.Score, error) {
	out := make(map[string]optimizer.Score, len(files))
	for name := range files {
		out[name] = optimizer.Score{Total: f.files[name]}
	}
	return out, nil
}

func (f *fakeScorer) ScoreSections(task, content string) []optimizer.SectionScore {
	return f.sections[content]
}

// errScorer 总是返回错误的评分器。
type errScorer struct{ err error }

func (e *errScorer) ScoreFiles(task string, files map[string]string, meta map[string]optimizer.DocumentMetadata, quality map[string]float64) (map[string]optimizer.Score, error) {
	return nil, e.err
}

func (e *errScorer) ScoreSections(task, content string) []optimizer.SectionScore {
	return nil
}

func newTestOptimizer(scores map[string]float64, opts ...optimizer.ConfigOption) *optimizer.Optimizer {
	cfg := optimizer.NewConfig(append(opts, optimizer.WithConfigTokenCounter(charCounter()))...)
	return optimizer.New(
		optimizer.WithConfig(cfg),
		optimizer.WithScorer(&fakeScorer{files: scores}),
	)
}

func TestOptimizeContext_NilRequest(t *testing.T) {
	opt := optimizer.New()

	_, err := opt.OptimizeContext(context.Background(), nil)
	if !errors.Is(err, coreerrors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestOptimizeContext_NegativeBudget(t *testing.T) {
	opt := optimizer.New()

	req := &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent:    map[string]string{"a.md": "content"},
		TokenBudget:     -1,
	}

	_, err := opt.OptimizeContext(context.Background(), req)
	if !errors.Is(err, coreerrors.ErrNegativeBudget) {
		t.Errorf("expected ErrNegativeBudget, got %v", err)
	}
}

func TestOptimizeContext_EmptyCorpus(t *testing.T) {
	opt := newTestOptimizer(nil)

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "anything",
		TokenBudget:     1000,
	})
	if err != nil {
		t.Fatalf("empty corpus should not error: %v", err)
	}

	if len(result.SelectedFiles) != 0 || len(result.ExcludedFiles) != 0 {
		t.Errorf("expected empty selection, got selected=%v excluded=%v",
			result.SelectedFiles, result.ExcludedFiles)
	}
	if result.Utilization != 0 {
		t.Errorf("Utilization = %f, want 0", result.Utilization)
	}
	if _, ok := result.Metadata["note"]; !ok {
		t.Error("expected explanatory note in metadata")
	}
	scores, ok := result.Metadata["relevance_scores"].(map[string]float64)
	if !ok || len(scores) != 0 {
		t.Errorf("expected empty relevance_scores map, got %v", result.Metadata["relevance_scores"])
	}
	if result.StrategyUsed != optimizer.StrategyDependencyAware {
		t.Errorf("StrategyUsed = %q, want default strategy", result.StrategyUsed)
	}
}

func TestOptimizeContext_DefaultStrategy(t *testing.T) {
	opt := newTestOptimizer(map[string]float64{"a.md": 0.9})

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent:    map[string]string{"a.md": "short"},
		TokenBudget:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.StrategyUsed != optimizer.StrategyDependencyAware {
		t.Errorf("StrategyUsed = %q, want %q", result.StrategyUsed, optimizer.StrategyDependencyAware)
	}
}

func TestOptimizeContext_UnknownStrategyEchoed(t *testing.T) {
	opt := newTestOptimizer(map[string]float64{"a.md": 0.9})

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent:    map[string]string{"a.md": "short"},
		TokenBudget:     100,
		Strategy:        "beam_search",
	})
	if err != nil {
		t.Fatalf("unknown strategy should not error: %v", err)
	}

	if result.StrategyUsed != "beam_search" {
		t.Errorf("StrategyUsed = %q, want the requested name echoed back", result.StrategyUsed)
	}
	if len(result.SelectedFiles) != 1 {
		t.Errorf("expected fallback algorithm to run, selected=%v", result.SelectedFiles)
	}
}

func TestOptimizeContext_ZeroBudget(t *testing.T) {
	opt := newTestOptimizer(map[string]float64{"a.md": 0.9})

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent:    map[string]string{"a.md": "content"},
		TokenBudget:     0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.SelectedFiles) != 0 {
		t.Errorf("nothing should fit a zero budget, got %v", result.SelectedFiles)
	}
	if result.Utilization != 0 {
		t.Errorf("Utilization = %f, want 0 for zero budget", result.Utilization)
	}
}

func TestOptimizeContext_ScorerErrorPropagates(t *testing.T) {
	wantErr := errors.New("scoring backend down")
	opt := optimizer.New(optimizer.WithScorer(&errScorer{err: wantErr}))

	_, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent:    map[string]string{"a.md": "content"},
		TokenBudget:     100,
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected scorer error to propagate, got %v", err)
	}
}

func TestOptimizeContext_RelevanceScoresRounded(t *testing.T) {
	opt := newTestOptimizer(map[string]float64{
		"a.md": 0.23456,
		"b.md": 0.9,
	})

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent:    map[string]string{"a.md": "aaa", "b.md": "bbb"},
		TokenBudget:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores, ok := result.Metadata["relevance_scores"].(map[string]float64)
	if !ok {
		t.Fatalf("expected relevance_scores map, got %T", result.Metadata["relevance_scores"])
	}
	if len(scores) != 2 {
		t.Errorf("expected a score for every candidate, got %v", scores)
	}
	if scores["a.md"] != 0.235 {
		t.Errorf("score for a.md = %v, want 0.235 (rounded to 3 decimals)", scores["a.md"])
	}
}

func TestOptimizeContext_BudgetCeiling(t *testing.T) {
	opt := newTestOptimizer(map[string]float64{
		"a.md": 0.9,
		"b.md": 0.8,
		"c.md": 0.7,
	})

	budget := 25
	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent: map[string]string{
			"a.md": "aaaaaaaaaaaaaaaaaaaa", // 20 tokens
			"b.md": "bbbbbbbbbb",           // 10 tokens
			"c.md": "cccc",                 // 4 tokens
		},
		TokenBudget: budget,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalTokens > budget {
		t.Errorf("TotalTokens = %d exceeds budget %d", result.TotalTokens, budget)
	}
	wantUtilization := float64(result.TotalTokens) / float64(budget)
	if result.Utilization != wantUtilization {
		t.Errorf("Utilization = %f, want %f", result.Utilization, wantUtilization)
	}
}

func TestOptimizeContext_MetadataDependenciesUsed(t *testing.T) {
	opt := newTestOptimizer(map[string]float64{
		"app.md": 0.9,
		"lib.md": 0.1,
	})

	result, err := opt.OptimizeContext(context.Background(), &optimizer.OptimizeRequest{
		TaskDescription: "task",
		FilesContent: map[string]string{
			"app.md": "aaaaa", // 5 tokens
			"lib.md": "lllll", // 5 tokens
		},
		FilesMetadata: map[string]optimizer.DocumentMetadata{
			"app.md": {Dependencies: []string{"lib.md"}},
		},
		TokenBudget: 100,
		Strategy:    optimizer.StrategyDependencyAware,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.SelectedFiles) != 2 {
		t.Fatalf("expected both files selected, got %v", result.SelectedFiles)
	}
	// 依赖在候选之前入选
	if result.SelectedFiles[0] != "lib.md" || result.SelectedFiles[1] != "app.md" {
		t.Errorf("expected [lib.md app.md], got %v", result.SelectedFiles)
	}
}
