package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/josinaldojr/docs-chat-rag/internal/rag"
)

// NewPool cria o pool e faz um ping para falhar cedo se o banco não responde.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse db config: %w", rag.ErrConfiguration, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to db: %w", rag.ErrConnection, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, rag.StoreError("ping db", err)
	}

	return pool, nil
}

// OpenRepository escolhe o backend pelo esquema da URL:
// postgres:// ou postgresql:// para pgvector, bolt://<caminho> para o arquivo local.
func OpenRepository(ctx context.Context, databaseURL, collection string) (rag.Repository, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid DATABASE_URL: %w", rag.ErrConfiguration, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		pool, err := NewPool(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return rag.NewPgRepository(pool, collection), nil
	case "bolt":
		path := u.Host + u.Path
		if path == "" {
			return nil, fmt.Errorf("%w: bolt DATABASE_URL needs a file path", rag.ErrConfiguration)
		}
		return rag.OpenBoltRepository(path, collection)
	default:
		return nil, fmt.Errorf("%w: unsupported DATABASE_URL scheme %q", rag.ErrConfiguration, u.Scheme)
	}
}
