package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medibot-backend/internal/models"
)

// PgChunkRepo stores chunks in PostgreSQL with the pgvector extension.
type PgChunkRepo struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

func NewPgChunkRepo(pool *pgxpool.Pool, embedder Embedder) *PgChunkRepo {
	return &PgChunkRepo{pool: pool, embedder: embedder}
}

func (r *PgChunkRepo) SimilaritySearch(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	sql := `SELECT id, content, source, chunk_index, metadata, 1 - (embedding <=> $1::vector) AS score
		FROM chunks
		ORDER BY embedding <=> $1::vector
		LIMIT $2`

	rows, err := r.pool.Query(ctx, sql, vectorLiteral(vec), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		var (
			c        models.Chunk
			metadata []byte
			score    float64
		)
		if err := rows.Scan(&c.ID, &c.Text, &c.Source, &c.Index, &metadata, &score); err != nil {
			return nil, err
		}
		c.Score = float32(score)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata for chunk %s: %w", c.ID, err)
			}
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (r *PgChunkRepo) Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if err := checkUpsertLengths(len(chunks), len(vectors)); err != nil {
		return err
	}

	query := `INSERT INTO chunks (id, content, source, chunk_index, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5, $6::vector)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			source = EXCLUDED.source,
			chunk_index = EXCLUDED.chunk_index,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding`

	batch := &pgx.Batch{}
	for i, c := range chunks {
		metadata := c.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		metaBytes, _ := json.Marshal(metadata)
		batch.Queue(query, c.ID, c.Text, c.Source, c.Index, metaBytes, vectorLiteral(vectors[i]))
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range chunks {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert chunk %s: %w", chunks[i].ID, err)
		}
	}
	return nil
}

// vectorLiteral formats v in pgvector's text representation, e.g. "[0.1,0.2]".
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
