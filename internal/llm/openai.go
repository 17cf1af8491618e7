package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/josinaldojr/docs-chat-rag/internal/rag"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIEmbeddingModel = "text-embedding-3-small"
	DefaultOpenAIChatModel      = "gpt-4o-mini"
)

// OpenAIClient usa a API da OpenAI (ou compatível, via baseURL) para
// embeddings e chat. O *openai.Client é seguro para uso concorrente.
type OpenAIClient struct {
	client         *openai.Client
	embeddingModel string
	chatModel      string
}

func NewOpenAIClient(apiKey, baseURL, embeddingModel, chatModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing OPENAI_API_KEY", rag.ErrConfiguration)
	}
	if embeddingModel == "" {
		embeddingModel = DefaultOpenAIEmbeddingModel
	}
	if chatModel == "" {
		chatModel = DefaultOpenAIChatModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(cfg),
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
	}, nil
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	clean := normalizeWhitespace(text)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty text for embedding", rag.ErrInvalidInput)
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embeddingModel),
		Input: []string{clean},
	})
	if err != nil {
		return nil, openAIError(rag.ErrConnection, "openai embeddings", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: openai embeddings: no embedding data returned", rag.ErrConnection)
	}

	raw := resp.Data[0].Embedding
	out := make([]float32, len(raw))
	for i := range raw {
		out[i] = float32(raw[i])
	}
	return out, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt rag.Prompt) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: string(prompt)},
		},
	})
	if err != nil {
		return "", openAIError(rag.ErrGeneration, "openai chat completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai chat completion: no choices returned", rag.ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}

func openAIError(kind error, op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && isAuthStatus(apiErr.HTTPStatusCode) {
		return fmt.Errorf("%w: %s: %w", rag.ErrAuthentication, op, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && isAuthStatus(reqErr.HTTPStatusCode) {
		return fmt.Errorf("%w: %s: %w", rag.ErrAuthentication, op, err)
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}

var _ rag.EmbeddingsClient = (*OpenAIClient)(nil)
var _ rag.Generator = (*OpenAIClient)(nil)
