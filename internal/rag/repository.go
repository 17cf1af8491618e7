package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Repository é o contrato mínimo do índice vetorial: busca por vetor já
// calculado e gravação de trechos (usada só pela ingestão).
type Repository interface {
	SearchSimilarChunks(ctx context.Context, embedding []float32, limit int) ([]DocChunk, error)
	InsertChunk(ctx context.Context, c *DocChunk, embedding []float32) (string, error)
	EnsureCollection(ctx context.Context) error
	DeleteCollection(ctx context.Context) error
	Close() error
}

// Mesmo layout de tabelas do PGVector do LangChain, para ler índices já
// populados por ele.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS langchain_pg_collection (
		uuid UUID PRIMARY KEY,
		name VARCHAR NOT NULL UNIQUE,
		cmetadata JSON
	)`,
	`CREATE TABLE IF NOT EXISTS langchain_pg_embedding (
		id VARCHAR PRIMARY KEY,
		collection_id UUID REFERENCES langchain_pg_collection(uuid) ON DELETE CASCADE,
		embedding VECTOR,
		document VARCHAR,
		cmetadata JSONB
	)`,
}

type PgRepository struct {
	db         *pgxpool.Pool
	collection string
}

func NewPgRepository(db *pgxpool.Pool, collection string) *PgRepository {
	return &PgRepository{db: db, collection: collection}
}

// SearchSimilarChunks faz a busca vetorial por distância de cosseno dentro da coleção.
func (r *PgRepository) SearchSimilarChunks(ctx context.Context, embedding []float32, limit int) ([]DocChunk, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidInput, limit)
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.document, e.cmetadata, e.embedding <=> $2 AS distance
		FROM langchain_pg_embedding e
		JOIN langchain_pg_collection c ON e.collection_id = c.uuid
		WHERE c.name = $1
		ORDER BY distance
		LIMIT $3
	`, r.collection, vec, limit)
	if err != nil {
		return nil, StoreError("similarity search", err)
	}
	defer rows.Close()

	var chunks []DocChunk
	for rows.Next() {
		var (
			c        DocChunk
			document *string
		)
		if err := rows.Scan(&c.ID, &document, &c.Metadata, &c.Score); err != nil {
			return nil, StoreError("scan chunk", err)
		}
		if document != nil {
			c.Content = *document
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, StoreError("similarity search", err)
	}

	return chunks, nil
}

func (r *PgRepository) InsertChunk(ctx context.Context, c *DocChunk, embedding []float32) (string, error) {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := c.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO langchain_pg_embedding (id, collection_id, embedding, document, cmetadata)
		SELECT $1::varchar, uuid, $3::vector, $4::varchar, $5::jsonb
		FROM langchain_pg_collection
		WHERE name = $2
	`, id, r.collection, pgvector.NewVector(embedding), c.Content, metadata)
	if err != nil {
		return "", StoreError("insert chunk", err)
	}
	if tag.RowsAffected() == 0 {
		return "", fmt.Errorf("insert chunk: collection %q does not exist", r.collection)
	}

	return id, nil
}

// EnsureCollection cria extensão, tabelas e a coleção se ainda não existirem.
func (r *PgRepository) EnsureCollection(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return StoreError("ensure schema", err)
		}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO langchain_pg_collection (uuid, name, cmetadata)
		VALUES ($1, $2, '{}')
		ON CONFLICT (name) DO NOTHING
	`, uuid.New(), r.collection)
	if err != nil {
		return StoreError("ensure collection", err)
	}
	return nil
}

// DeleteCollection apaga os trechos da coleção, mantendo o registro dela.
func (r *PgRepository) DeleteCollection(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM langchain_pg_embedding
		WHERE collection_id IN (SELECT uuid FROM langchain_pg_collection WHERE name = $1)
	`, r.collection)
	if err != nil {
		return StoreError("delete collection", err)
	}
	return nil
}

func (r *PgRepository) Close() error {
	r.db.Close()
	return nil
}

// StoreError classifica falhas do Postgres: credencial rejeitada vira
// ErrAuthentication, dimensão de vetor incompatível vira ErrConfiguration e o
// resto vira ErrConnection.
func StoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "28P01", pgErr.Code == "28000":
			return fmt.Errorf("%w: %s: %w", ErrAuthentication, op, err)
		case pgErr.Code == "22000" && strings.Contains(pgErr.Message, "different vector dimensions"):
			// índice gravado com outro modelo de embeddings
			return fmt.Errorf("%w: %s: %w", ErrConfiguration, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrConnection, op, err)
}

var _ Repository = (*PgRepository)(nil)
