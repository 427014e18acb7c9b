package repository

import (
	"medibot-backend/internal/config"
	"medibot-backend/internal/database"
)

// OpenChunkStore connects the vector backend selected by cfg. The returned
// close function releases its connections.
func OpenChunkStore(cfg *config.Config, embedder Embedder) (ChunkStore, func(), error) {
	switch cfg.VectorBackend {
	case config.BackendPgvector:
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewPgChunkRepo(pool, embedder), pool.Close, nil
	default:
		idx, err := database.NewPineconeIndex(cfg.PineconeAPIKey, cfg.PineconeIndex, cfg.PineconeNamespace)
		if err != nil {
			return nil, nil, err
		}
		return NewPineconeChunkRepo(idx, embedder), func() { idx.Close() }, nil
	}
}
