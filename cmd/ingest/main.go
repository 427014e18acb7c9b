package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibot-backend/internal/config"
	"medibot-backend/internal/database"
	"medibot-backend/internal/metrics"
	"medibot-backend/internal/repository"
	"medibot-backend/internal/services"
	"medibot-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting MediBot ingestion...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiEmbeddingModel,
		cfg.GeminiConcurrentReqs,
		metrics.New(),
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (embeddings: %s)", cfg.GeminiEmbeddingModel)

	// ──── Step 3: Connect Vector Index ────
	store, closeStore, err := repository.OpenChunkStore(cfg, geminiService)
	if err != nil {
		log.Fatalf("✗ Vector index connection failed: %v", err)
	}
	defer closeStore()
	log.Printf("✓ Vector index connected (%s)", cfg.VectorBackend)

	// ──── Step 4: Connect Manifest (optional) ────
	var manifest services.Manifest
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		manifest = repository.NewManifestRepo(redisClient)
		log.Println("✓ Redis manifest connected")
	} else {
		log.Println("  REDIS_URL not set, every file will be re-ingested")
	}

	// ──── Step 5: Discover Source Files ────
	ingestService := services.NewIngestService(
		services.NewFileExtractService(),
		services.NewTextSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		geminiService,
		store,
		manifest,
	)

	jobs, err := ingestService.Discover(cfg.DataDir)
	if err != nil {
		log.Fatalf("✗ Failed to scan %s: %v", cfg.DataDir, err)
	}
	log.Printf("✓ Found %d source files in %s", len(jobs), cfg.DataDir)

	// ──── Step 6: Run Worker Pool ────
	start := time.Now()
	summary := worker.NewPool(ingestService, cfg.IngestWorkers).Run(ctx, jobs)

	log.Printf("✓ Ingestion finished in %s: %d files, %d chunks, %d skipped, %d failed",
		time.Since(start).Round(time.Millisecond), summary.Files, summary.Chunks, summary.Skipped, summary.Failed)

	if summary.Failed > 0 || summary.Files < len(jobs) {
		log.Printf("✗ %d of %d files were not ingested", len(jobs)-summary.Files+summary.Failed, len(jobs))
		closeStore()
		os.Exit(1)
	}
}
