package rag

import (
	"context"
	"errors"
	"testing"
)

func TestVectorStore_SearchRankOrderAndLimit(t *testing.T) {
	repo := newBoltRepo(t)
	mustInsert(t, repo, "revenue", "Revenue in 2023 was $5M.", []float32{1, 0, 0})
	mustInsert(t, repo, "costs", "Costs in 2023 were $3M.", []float32{0.7, 0.7, 0})
	mustInsert(t, repo, "hr", "We hired 12 people.", []float32{0, 0, 1})

	emb := &keywordEmbedder{vectors: map[string][]float32{"revenue": {1, 0.1, 0}}, def: []float32{0, 0, 1}}
	store := NewVectorStore(repo, emb)

	got, err := store.Search(context.Background(), "What was 2023 revenue?", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "revenue" || got[1].ID != "costs" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Score > got[1].Score {
		t.Errorf("expected non-decreasing distance, got %f then %f", got[0].Score, got[1].Score)
	}
}

func TestVectorStore_MaxDistanceFloor(t *testing.T) {
	repo := newBoltRepo(t)
	mustInsert(t, repo, "near", "perto", []float32{1, 0})
	mustInsert(t, repo, "far", "longe", []float32{0, 1})

	store := NewVectorStore(repo, &keywordEmbedder{def: []float32{1, 0}})
	store.MaxDistance = 0.5

	got, err := store.Search(context.Background(), "pergunta", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "near" {
		t.Fatalf("expected only the near chunk, got %+v", got)
	}
}

func TestVectorStore_EmptyStoreIsNotAnError(t *testing.T) {
	store := NewVectorStore(newBoltRepo(t), &keywordEmbedder{def: []float32{1, 0}})

	got, err := store.Search(context.Background(), "pergunta", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestVectorStore_InvalidInput(t *testing.T) {
	emb := &keywordEmbedder{def: []float32{1, 0}}
	store := NewVectorStore(newBoltRepo(t), emb)
	ctx := context.Background()

	if _, err := store.Search(ctx, "  \t", 3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank query, got %v", err)
	}
	if _, err := store.Search(ctx, "pergunta", 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for k=0, got %v", err)
	}
	if emb.calls != 0 {
		t.Errorf("embedder should not be called on invalid input, got %d calls", emb.calls)
	}
}

func TestVectorStore_PropagatesEmbeddingError(t *testing.T) {
	emb := &keywordEmbedder{err: ErrAuthentication}
	store := NewVectorStore(newBoltRepo(t), emb)

	if _, err := store.Search(context.Background(), "pergunta", 3); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}
