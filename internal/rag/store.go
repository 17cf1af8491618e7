package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// VectorStore é o cliente de busca por similaridade: embeda a pergunta e
// consulta o repositório. Seguro para uso concorrente desde que o
// repositório e o cliente de embeddings também sejam.
type VectorStore struct {
	repo       Repository
	embeddings EmbeddingsClient

	// MaxDistance descarta trechos com distância acima do piso (0 desliga).
	MaxDistance float64
}

func NewVectorStore(repo Repository, embeddings EmbeddingsClient) *VectorStore {
	return &VectorStore{repo: repo, embeddings: embeddings}
}

// Search devolve até k trechos, do mais próximo para o mais distante.
// Coleção vazia ou nada acima do piso de relevância resulta em slice vazio, sem erro.
func (s *VectorStore) Search(ctx context.Context, query string, k int) ([]DocChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidInput, k)
	}

	vec, err := s.embeddings.Embed(ctx, q)
	if err != nil {
		return nil, err
	}

	chunks, err := s.repo.SearchSimilarChunks(ctx, vec, k)
	if err != nil {
		return nil, err
	}

	if s.MaxDistance > 0 {
		kept := chunks[:0]
		for _, c := range chunks {
			if c.Score <= s.MaxDistance {
				kept = append(kept, c)
			}
		}
		if dropped := len(chunks) - len(kept); dropped > 0 {
			slog.Debug("chunks below relevance floor dropped", "dropped", dropped, "maxDistance", s.MaxDistance)
		}
		chunks = kept
	}

	return chunks, nil
}
