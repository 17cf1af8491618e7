package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/josinaldojr/docs-chat-rag/internal/config"
	"github.com/josinaldojr/docs-chat-rag/internal/rag"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DatabaseURL = "bolt://" + filepath.Join(t.TempDir(), "index.db")
	cfg.CollectionName = "docs"
	cfg.LLM.OpenAIAPIKey = "sk-test"
	return cfg
}

func TestNew_FreshStoreIsReadyAndEmpty(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	got, err := a.Repo.SearchSimilarChunks(ctx, []float32{1, 0}, 3)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result on fresh store, got %v, %v", got, err)
	}

	// a coleção já existe sem precisar rodar a ingestão
	if _, err := a.Repo.InsertChunk(ctx, &rag.DocChunk{Content: "x"}, []float32{1, 0}); err != nil {
		t.Fatalf("expected collection to be created at startup: %v", err)
	}
}

func TestNew_BadDatabaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseURL = "mysql://localhost/db"

	if _, err := New(context.Background(), cfg); !errors.Is(err, rag.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
