package rag

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// keywordEmbedder devolve vetores fixos por palavra-chave; textos sem
// palavra conhecida caem no vetor default.
type keywordEmbedder struct {
	vectors map[string][]float32
	def     []float32
	calls   int
	err     error
}

func (e *keywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	for kw, v := range e.vectors {
		if strings.Contains(strings.ToLower(text), kw) {
			return v, nil
		}
	}
	return e.def, nil
}

// fakeSearcher devolve sempre os mesmos trechos e conta as chamadas.
type fakeSearcher struct {
	chunks []DocChunk
	err    error
	calls  int
}

func (s *fakeSearcher) Search(ctx context.Context, query string, k int) ([]DocChunk, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if k < len(s.chunks) {
		return s.chunks[:k], nil
	}
	return s.chunks, nil
}

// echoGenerator imita um modelo obediente: sem contexto devolve a recusa,
// senão devolve a linha do contexto que contém needle.
type echoGenerator struct {
	needle  string
	prompts []Prompt
	err     error
}

func (g *echoGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	p := string(prompt)
	ctxText := p[len("CONTEXTO:\n"):strings.Index(p, "\n\nREGRAS:")]
	if strings.TrimSpace(ctxText) == "" {
		return RefusalAnswer, nil
	}
	for _, line := range strings.Split(ctxText, "\n") {
		if g.needle != "" && strings.Contains(line, g.needle) {
			return line, nil
		}
	}
	return RefusalAnswer, nil
}

func newBoltRepo(t *testing.T) *BoltRepository {
	t.Helper()
	repo, err := OpenBoltRepository(filepath.Join(t.TempDir(), "index.db"), "docs")
	if err != nil {
		t.Fatalf("open bolt repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := repo.EnsureCollection(context.Background()); err != nil {
		t.Fatalf("ensure collection: %v", err)
	}
	return repo
}

func mustInsert(t *testing.T, repo Repository, id, content string, vec []float32) {
	t.Helper()
	if _, err := repo.InsertChunk(context.Background(), &DocChunk{ID: id, Content: content}, vec); err != nil {
		t.Fatalf("insert %s: %v", id, err)
	}
}
