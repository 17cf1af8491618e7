package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var errDimensionMismatch = errors.New("embedding dimension mismatch")

// BoltRepository guarda os trechos num arquivo bbolt local, um bucket por
// coleção, e faz busca por força bruta. Serve para rodar sem Postgres.
type BoltRepository struct {
	db         *bolt.DB
	collection string
}

type boltRecord struct {
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding"`
}

func OpenBoltRepository(path, collection string) (*BoltRepository, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt store %s: %w", ErrConnection, path, err)
	}
	return &BoltRepository{db: db, collection: collection}, nil
}

func (r *BoltRepository) SearchSimilarChunks(ctx context.Context, embedding []float32, limit int) ([]DocChunk, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidInput, limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: similarity search: %w", ErrConnection, err)
	}

	var chunks []DocChunk
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(r.collection))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec boltRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode chunk %s: %w", k, err)
			}
			if len(rec.Embedding) != len(embedding) {
				return fmt.Errorf("%w: chunk %s: different vector dimensions %d and %d",
					errDimensionMismatch, k, len(rec.Embedding), len(embedding))
			}
			chunks = append(chunks, DocChunk{
				ID:       string(k),
				Content:  rec.Content,
				Metadata: rec.Metadata,
				Score:    CosineDistance(embedding, rec.Embedding),
			})
			return nil
		})
	})
	if errors.Is(err, errDimensionMismatch) {
		return nil, fmt.Errorf("%w: similarity search: %w", ErrConfiguration, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %w", ErrConnection, err)
	}

	// desempate pelo id para manter a ordem estável entre chamadas
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Score == chunks[j].Score {
			return chunks[i].ID < chunks[j].ID
		}
		return chunks[i].Score < chunks[j].Score
	})

	if limit < len(chunks) {
		chunks = chunks[:limit]
	}
	return chunks, nil
}

func (r *BoltRepository) InsertChunk(ctx context.Context, c *DocChunk, embedding []float32) (string, error) {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	data, err := json.Marshal(boltRecord{
		Content:   c.Content,
		Metadata:  c.Metadata,
		Embedding: embedding,
	})
	if err != nil {
		return "", fmt.Errorf("encode chunk: %w", err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(r.collection))
		if b == nil {
			return fmt.Errorf("collection %q does not exist", r.collection)
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("insert chunk: %w", err)
	}
	return id, nil
}

func (r *BoltRepository) EnsureCollection(ctx context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(r.collection))
		return err
	})
}

func (r *BoltRepository) DeleteCollection(ctx context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(r.collection)) == nil {
			return nil
		}
		if err := tx.DeleteBucket([]byte(r.collection)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(r.collection))
		return err
	})
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}

// CosineDistance devolve 1 - cos(a, b), mesma métrica do operador <=> do pgvector.
// Vetores de tamanhos diferentes ou nulos ficam a distância 1.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

var _ Repository = (*BoltRepository)(nil)
