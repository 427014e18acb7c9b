package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"medibot-backend/internal/models"
	"medibot-backend/internal/repository"
)

// BatchEmbedder produces document-side embeddings, one per text, in order.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkWriter is the write side of the vector index.
type ChunkWriter interface {
	Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error
}

// Manifest remembers ingested file hashes. It is optional.
type Manifest interface {
	Hash(ctx context.Context, path string) (string, error)
	Record(ctx context.Context, path, hash string) error
	Lock(ctx context.Context, hash string) (bool, error)
	Unlock(ctx context.Context, hash string) error
}

type textExtractor interface {
	Supported(path string) bool
	ExtractTextFromPath(path string) (string, error)
}

type IngestService struct {
	extractor textExtractor
	splitter  *TextSplitter
	embedder  BatchEmbedder
	store     ChunkWriter
	manifest  Manifest
}

// NewIngestService wires the ingestion pipeline. manifest may be nil, in which
// case every discovered file is ingested.
func NewIngestService(extractor textExtractor, splitter *TextSplitter, embedder BatchEmbedder, store ChunkWriter, manifest Manifest) *IngestService {
	return &IngestService{
		extractor: extractor,
		splitter:  splitter,
		embedder:  embedder,
		store:     store,
		manifest:  manifest,
	}
}

// Discover walks dir for supported files and returns one job per file, sorted by path.
func (s *IngestService) Discover(dir string) ([]models.IngestJob, error) {
	var jobs []models.IngestJob
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.extractor.Supported(path) {
			return nil
		}
		hash, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", path, err)
		}
		jobs = append(jobs, models.IngestJob{Path: path, Hash: hash})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	return jobs, nil
}

// Ingest processes a single file: extract, split, embed, upsert, record.
func (s *IngestService) Ingest(ctx context.Context, job models.IngestJob) models.IngestResult {
	result := models.IngestResult{Path: job.Path}

	if s.manifest != nil {
		recorded, err := s.manifest.Hash(ctx, job.Path)
		if err != nil {
			result.Err = err
			return result
		}
		if recorded == job.Hash {
			result.Skipped = true
			return result
		}

		locked, err := s.manifest.Lock(ctx, job.Hash)
		if err != nil {
			result.Err = fmt.Errorf("failed to lock %s: %w", job.Path, err)
			return result
		}
		if !locked {
			// Another ingestion run has this file
			result.Skipped = true
			return result
		}
		defer s.manifest.Unlock(context.Background(), job.Hash)
	}

	text, err := s.extractor.ExtractTextFromPath(job.Path)
	if err != nil {
		result.Err = fmt.Errorf("failed to extract %s: %w", job.Path, err)
		return result
	}

	pieces := s.splitter.Split(text)
	if len(pieces) == 0 {
		return result
	}

	chunks := make([]models.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = models.Chunk{
			ID:       repository.ChunkID(job.Path, i),
			Text:     p,
			Source:   job.Path,
			Index:    i,
			Metadata: map[string]string{"file_hash": job.Hash, "chunks_in_file": strconv.Itoa(len(pieces))},
		}
	}

	vectors, err := s.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		result.Err = fmt.Errorf("failed to embed %s: %w", job.Path, err)
		return result
	}

	if err := s.store.Upsert(ctx, chunks, vectors); err != nil {
		result.Err = fmt.Errorf("failed to store %s: %w", job.Path, err)
		return result
	}

	if s.manifest != nil {
		if err := s.manifest.Record(ctx, job.Path, job.Hash); err != nil {
			log.Printf("WARNING: %v", err)
		}
	}

	result.Chunks = len(chunks)
	return result
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
