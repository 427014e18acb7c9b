package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockTTL = 10 * time.Minute

// ManifestRepo records which source files have been ingested, keyed by path,
// and guards concurrent ingestion of the same content.
type ManifestRepo struct {
	redis *redis.Client
}

func NewManifestRepo(redisClient *redis.Client) *ManifestRepo {
	return &ManifestRepo{redis: redisClient}
}

// Hash returns the content hash recorded for path, or "" if none.
func (r *ManifestRepo) Hash(ctx context.Context, path string) (string, error) {
	hash, err := r.redis.Get(ctx, manifestKey(path)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read manifest for %s: %w", path, err)
	}
	return hash, nil
}

func (r *ManifestRepo) Record(ctx context.Context, path, hash string) error {
	if err := r.redis.Set(ctx, manifestKey(path), hash, 0).Err(); err != nil {
		return fmt.Errorf("failed to record manifest for %s: %w", path, err)
	}
	return nil
}

// Lock reports whether the caller acquired the ingestion lock for hash.
func (r *ManifestRepo) Lock(ctx context.Context, hash string) (bool, error) {
	return r.redis.SetNX(ctx, lockKey(hash), "1", lockTTL).Result()
}

func (r *ManifestRepo) Unlock(ctx context.Context, hash string) error {
	return r.redis.Del(ctx, lockKey(hash)).Err()
}

func manifestKey(path string) string {
	return fmt.Sprintf("ingest:manifest:%s", path)
}

func lockKey(hash string) string {
	return fmt.Sprintf("ingest_lock:%s", hash)
}
