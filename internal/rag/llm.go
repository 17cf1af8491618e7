package rag

import "context"

// EmbeddingsClient converte um texto em um vetor de dimensão fixa.
type EmbeddingsClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator envia o prompt ao modelo e devolve o texto gerado sem alterações.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
