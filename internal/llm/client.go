package llm

import (
	"context"
	"fmt"

	"github.com/josinaldojr/docs-chat-rag/internal/config"
	"github.com/josinaldojr/docs-chat-rag/internal/rag"
)

// Client embeda textos e gera respostas com o mesmo provedor.
type Client interface {
	rag.EmbeddingsClient
	rag.Generator
}

// NewClient cria o cliente do provedor configurado. Deve ser chamado uma vez
// no startup; o resultado é compartilhado por todas as perguntas.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.ChatModel)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.ChatModel)
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", rag.ErrConfiguration, cfg.Provider)
	}
}
