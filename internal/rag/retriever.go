package rag

import (
	"context"
	"fmt"
	"strings"
)

// Searcher é o que o Retriever precisa do banco vetorial.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]DocChunk, error)
}

type Retriever struct {
	store Searcher
}

func NewRetriever(store Searcher) *Retriever {
	return &Retriever{store: store}
}

// Retrieve busca os k trechos mais próximos e monta o contexto na ordem do ranking.
// k < 1 é rejeitado antes de qualquer chamada de rede.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) (*RetrievalResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidInput, k)
	}

	chunks, err := r.store.Search(ctx, question, k)
	if err != nil {
		return nil, err
	}

	return &RetrievalResult{
		Query:   question,
		Chunks:  chunks,
		Context: BuildContext(chunks),
	}, nil
}

// BuildContext
// "Documento N:" + texto do trecho, um bloco por trecho separado por linha em branco.
// Sem trechos, o contexto é "".
func BuildContext(chunks []DocChunk) string {
	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		parts = append(parts, fmt.Sprintf("Documento %d:\n%s\n", i+1, strings.TrimSpace(c.Content)))
	}
	return strings.Join(parts, "\n")
}
