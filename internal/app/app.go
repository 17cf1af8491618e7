package app

import (
	"context"

	"github.com/josinaldojr/docs-chat-rag/internal/config"
	"github.com/josinaldojr/docs-chat-rag/internal/db"
	"github.com/josinaldojr/docs-chat-rag/internal/llm"
	"github.com/josinaldojr/docs-chat-rag/internal/rag"
)

// App segura os handles de longa duração (repositório e pipeline),
// criados uma vez no startup e reaproveitados por todas as perguntas.
type App struct {
	Repo    rag.Repository
	Service *rag.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	repo, err := db.OpenRepository(ctx, cfg.DatabaseURL, cfg.CollectionName)
	if err != nil {
		return nil, err
	}

	// banco recém-criado: sem schema a busca falharia em vez de voltar vazia
	if err := repo.EnsureCollection(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}

	store := rag.NewVectorStore(repo, client)
	store.MaxDistance = cfg.Retrieval.MaxDistance

	return &App{
		Repo:    repo,
		Service: rag.NewService(rag.NewRetriever(store), client, cfg.Retrieval.TopK),
	}, nil
}

func (a *App) Close() error {
	return a.Repo.Close()
}
