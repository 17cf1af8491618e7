package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service é o pipeline de resposta: Retriever -> RenderPrompt -> Generator,
// em sequência e sem retry. Não guarda estado entre chamadas; as
// dependências são criadas uma vez no startup e compartilhadas.
type Service struct {
	retriever *Retriever
	llm       Generator
	topK      int
}

func NewService(retriever *Retriever, llm Generator, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		retriever: retriever,
		llm:       llm,
		topK:      topK,
	}
}

// Answer responde uma pergunta usando o top-k configurado. Devolve o texto do
// modelo sem alterações (que pode ser a frase de recusa) ou um erro tipado.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	resp, err := s.Ask(ctx, AskRequest{Question: question})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	q := strings.TrimSpace(req.Question)
	if q == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	topK := req.TopK
	if topK == 0 {
		topK = s.topK
	}

	slog.Debug("retrieving", "topK", topK)
	res, err := s.retriever.Retrieve(ctx, q, topK)
	if err != nil {
		return nil, err
	}

	slog.Debug("assembling prompt", "chunks", len(res.Chunks))
	prompt := RenderPrompt(res.Context, q)

	slog.Debug("generating", "promptBytes", len(prompt))
	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	passages := make([]string, 0, len(res.Chunks))
	for _, c := range res.Chunks {
		passages = append(passages, c.Content)
	}

	return &AskResponse{
		Answer:   answer,
		Passages: passages,
	}, nil
}
