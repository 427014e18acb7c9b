package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"medibot-backend/internal/models"
)

// Embedder maps text to the vector space shared by ingestion and retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChunkStore is implemented by every vector backend.
type ChunkStore interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]models.Chunk, error)
	Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error
}

var (
	_ ChunkStore = (*PineconeChunkRepo)(nil)
	_ ChunkStore = (*PgChunkRepo)(nil)
)

// ChunkID derives a stable identifier for chunk index of source, so that
// re-ingesting a file overwrites its previous vectors.
func ChunkID(source string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", source, index))).String()
}

func checkUpsertLengths(chunks, vectors int) error {
	if chunks != vectors {
		return fmt.Errorf("chunks and vectors length mismatch: %d != %d", chunks, vectors)
	}
	return nil
}
