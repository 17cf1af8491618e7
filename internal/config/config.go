package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/josinaldojr/docs-chat-rag/internal/rag"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config é lido uma vez no startup. Ordem de precedência: defaults,
// arquivo YAML opcional, .env e por fim variáveis de ambiente.
type Config struct {
	DatabaseURL    string `yaml:"database_url"`
	CollectionName string `yaml:"collection_name"`
	Port           string `yaml:"port"`
	LogLevel       string `yaml:"log_level"`

	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

type LLMConfig struct {
	Provider       string `yaml:"provider"` // "openai" ou "gemini"
	OpenAIAPIKey   string `yaml:"-"`
	OpenAIBaseURL  string `yaml:"openai_base_url"`
	GeminiAPIKey   string `yaml:"-"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

type RetrievalConfig struct {
	TopK        int     `yaml:"top_k"`
	MaxDistance float64 `yaml:"max_distance"` // 0 desliga o piso de relevância
}

func DefaultConfig() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
		},
		Retrieval: RetrievalConfig{
			TopK: rag.DefaultTopK,
		},
	}
}

// Load monta a configuração e valida. Qualquer falha embrulha rag.ErrConfiguration.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("RAG_CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read config file: %w", rag.ErrConfiguration, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse config file %s: %w", rag.ErrConfiguration, path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.CollectionName = getEnv("PG_VECTOR_COLLECTION_NAME", c.CollectionName)
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", c.LLM.Provider))
	c.LLM.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.LLM.OpenAIAPIKey)
	c.LLM.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.LLM.OpenAIBaseURL)
	c.LLM.GeminiAPIKey = getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", c.LLM.GeminiAPIKey))

	switch c.LLM.Provider {
	case ProviderGemini:
		c.LLM.EmbeddingModel = getEnv("GEMINI_EMBEDDING_MODEL", c.LLM.EmbeddingModel)
		c.LLM.ChatModel = getEnv("GEMINI_CHAT_MODEL", c.LLM.ChatModel)
	default:
		c.LLM.EmbeddingModel = getEnv("OPENAI_MODEL", c.LLM.EmbeddingModel)
		c.LLM.ChatModel = getEnv("OPENAI_CHAT_MODEL", c.LLM.ChatModel)
	}

	if v := getEnv("RAG_TOP_K", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RAG_TOP_K: %w", rag.ErrConfiguration, err)
		}
		c.Retrieval.TopK = n
	}
	if v := getEnv("RAG_MAX_DISTANCE", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: RAG_MAX_DISTANCE: %w", rag.ErrConfiguration, err)
		}
		c.Retrieval.MaxDistance = f
	}
	return nil
}

// Validate falha rápido listando todas as chaves ausentes de uma vez.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_API_KEY or GEMINI_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.CollectionName == "" {
		errs = append(errs, errors.New("PG_VECTOR_COLLECTION_NAME is not set"))
	}
	if c.Retrieval.TopK < 1 {
		errs = append(errs, fmt.Errorf("top_k must be >= 1, got %d", c.Retrieval.TopK))
	}
	if c.Retrieval.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("max_distance must be >= 0, got %g", c.Retrieval.MaxDistance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", rag.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
