package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibot-backend/internal/config"
	"medibot-backend/internal/handlers"
	"medibot-backend/internal/metrics"
	"medibot-backend/internal/repository"
	"medibot-backend/internal/router"
	"medibot-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting MediBot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Metrics Registry ────
	m := metrics.New()
	log.Println("✓ Metrics registry initialized")

	// ──── Step 3: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiEmbeddingModel,
		cfg.GeminiConcurrentReqs,
		m,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (chat: %s, embeddings: %s)", cfg.GeminiModel, cfg.GeminiEmbeddingModel)

	// ──── Step 4: Connect Vector Index ────
	store, closeStore, err := repository.OpenChunkStore(cfg, geminiService)
	if err != nil {
		log.Fatalf("✗ Vector index connection failed: %v", err)
	}
	defer closeStore()
	log.Printf("✓ Vector index connected (%s)", cfg.VectorBackend)

	// ──── Step 5: Initialize Services ────
	classifier := services.NewIntentClassifier(geminiService)
	responder := services.NewResponder(store, geminiService, cfg.RetrievalTopK, m)
	localizer := services.NewLocalizer(geminiService)
	chatService := services.NewChatService(classifier, responder, localizer, cfg.MaxMessageLength, m)

	// ──── Step 6: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(chatService, cfg.VectorBackend)
	r := router.New(chatHandler, m.Handler(), cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // up to three sequential model calls per request
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ MediBot Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat:    http://localhost:%s/get", cfg.Port)
	log.Printf("  Metrics: http://localhost:%s/metrics", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
