package rag

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	if got := CosineDistance([]float32{1, 0}, []float32{2, 0}); math.Abs(got) > 1e-9 {
		t.Errorf("expected 0 for same direction, got %f", got)
	}
	if got := CosineDistance([]float32{1, 0}, []float32{0, 1}); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected 1 for orthogonal, got %f", got)
	}
	if got := CosineDistance([]float32{1, 0}, []float32{-1, 0}); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected 2 for opposite, got %f", got)
	}
	if got := CosineDistance([]float32{1, 0}, []float32{1, 0, 0}); got != 1 {
		t.Errorf("expected 1 for mismatched dims, got %f", got)
	}
}

func TestBoltRepository_SearchOrdersByDistance(t *testing.T) {
	repo := newBoltRepo(t)
	mustInsert(t, repo, "far", "longe", []float32{0, 1})
	mustInsert(t, repo, "near", "perto", []float32{1, 0})
	mustInsert(t, repo, "mid", "meio", []float32{1, 1})

	got, err := repo.SearchSimilarChunks(context.Background(), []float32{0.9, 0.1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}

	wantOrder := []string{"near", "mid", "far"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score < got[i-1].Score {
			t.Errorf("scores not non-decreasing: %f after %f", got[i].Score, got[i-1].Score)
		}
	}
}

func TestBoltRepository_LimitAndMetadata(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	_, err := repo.InsertChunk(ctx, &DocChunk{
		ID:       "1",
		Content:  "conteúdo",
		Metadata: map[string]any{"source": "relatorio.pdf"},
	}, []float32{1, 0})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	mustInsert(t, repo, "2", "outro", []float32{0, 1})

	got, err := repo.SearchSimilarChunks(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Source() != "relatorio.pdf" {
		t.Errorf("expected source metadata, got %v", got[0].Metadata)
	}
}

func TestBoltRepository_EmptyAndMissingCollection(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	got, err := repo.SearchSimilarChunks(ctx, []float32{1, 0}, 3)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no results and no error, got %v, %v", got, err)
	}

	other := &BoltRepository{db: repo.db, collection: "missing"}
	got, err = other.SearchSimilarChunks(ctx, []float32{1, 0}, 3)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no results for missing collection, got %v, %v", got, err)
	}
	if _, err := other.InsertChunk(ctx, &DocChunk{Content: "x"}, []float32{1}); err == nil {
		t.Fatalf("expected error inserting into missing collection")
	}
}

func TestBoltRepository_RejectsNonPositiveLimit(t *testing.T) {
	repo := newBoltRepo(t)

	_, err := repo.SearchSimilarChunks(context.Background(), []float32{1, 0}, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBoltRepository_DeleteCollection(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()
	mustInsert(t, repo, "1", "a", []float32{1, 0})

	if err := repo.DeleteCollection(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.SearchSimilarChunks(ctx, []float32{1, 0}, 3)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty collection after delete, got %v, %v", got, err)
	}

	// a coleção continua existindo para novas inserções
	mustInsert(t, repo, "2", "b", []float32{1, 0})
}

func TestBoltRepository_DimensionMismatchIsAnError(t *testing.T) {
	repo := newBoltRepo(t)
	mustInsert(t, repo, "1", "gravado com outro modelo", []float32{1, 0, 0})

	got, err := repo.SearchSimilarChunks(context.Background(), []float32{1, 0}, 3)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v (chunks %v)", err, got)
	}
	if len(got) != 0 {
		t.Errorf("expected no chunks on mismatch, got %d", len(got))
	}
	if !IsFatal(err) {
		t.Errorf("dimension mismatch should end the session")
	}
}
