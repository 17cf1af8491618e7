package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/josinaldojr/docs-chat-rag/internal/rag"
	"google.golang.org/genai"
)

const (
	DefaultGeminiEmbeddingModel = "models/text-embedding-004"
	DefaultGeminiChatModel      = "gemini-2.5-flash"
	geminiEmbedDim              = 768
)

type GeminiClient struct {
	client         *genai.Client
	embeddingModel string
	chatModel      string
}

func NewGeminiClient(ctx context.Context, apiKey, embeddingModel, chatModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing GOOGLE_API_KEY or GEMINI_API_KEY", rag.ErrConfiguration)
	}
	if embeddingModel == "" {
		embeddingModel = DefaultGeminiEmbeddingModel
	}
	if chatModel == "" {
		chatModel = DefaultGeminiChatModel
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %w", rag.ErrConfiguration, err)
	}

	return &GeminiClient{client: c, embeddingModel: embeddingModel, chatModel: chatModel}, nil
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	clean := normalizeWhitespace(text)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty text for embedding", rag.ErrInvalidInput)
	}

	resp, err := g.client.Models.EmbedContent(
		ctx,
		g.embeddingModel,
		genai.Text(clean),
		&genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(int32(geminiEmbedDim)),
		},
	)
	if err != nil {
		return nil, geminiError(rag.ErrConnection, "gemini embed", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: gemini embed: no embeddings returned", rag.ErrConnection)
	}

	values := resp.Embeddings[0].Values
	if len(values) != geminiEmbedDim {
		return nil, fmt.Errorf("%w: unexpected embedding size %d (expected %d)", rag.ErrConnection, len(values), geminiEmbedDim)
	}

	out := make([]float32, geminiEmbedDim)
	for i, v := range values {
		out[i] = float32(v)
	}
	return out, nil
}

// Generate manda o prompt como uma única mensagem de usuário e devolve o
// texto exatamente como veio do modelo.
func (g *GeminiClient) Generate(ctx context.Context, prompt rag.Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](Temperature),
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.chatModel,
		genai.Text(string(prompt)),
		cfg,
	)
	if err != nil {
		return "", geminiError(rag.ErrGeneration, "gemini generateContent", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: empty response from gemini", rag.ErrGeneration)
	}

	return resp.Text(), nil
}

// geminiError trata 401/403 e "API key not valid" (que a API devolve como 400)
// como credencial inválida.
func geminiError(kind error, op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if isAuthStatus(apiErr.Code) ||
			(apiErr.Code == 400 && strings.Contains(apiErr.Message, "API key")) {
			return fmt.Errorf("%w: %s: %w", rag.ErrAuthentication, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}

var _ rag.EmbeddingsClient = (*GeminiClient)(nil)
var _ rag.Generator = (*GeminiClient)(nil)
