package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendPinecone = "pinecone"
	BackendPgvector = "pgvector"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiEmbeddingModel string
	GeminiConcurrentReqs int

	// Vector index
	VectorBackend     string
	PineconeAPIKey    string
	PineconeIndex     string
	PineconeNamespace string
	DatabaseURL       string

	// Redis (ingestion manifest, optional)
	RedisURL string

	// Chat
	RetrievalTopK    int
	MaxMessageLength int

	// Ingestion
	DataDir       string
	ChunkSize     int
	ChunkOverlap  int
	IngestWorkers int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:         mustGetEnv("GOOGLE_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnvOrDefault("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		VectorBackend:        getEnvOrDefault("VECTOR_BACKEND", BackendPinecone),
		PineconeIndex:        getEnvOrDefault("PINECONE_INDEX", "medibot"),
		PineconeNamespace:    getEnvOrDefault("PINECONE_NAMESPACE", ""),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		RetrievalTopK:        getEnvAsIntOrDefault("RETRIEVAL_TOP_K", 5),
		MaxMessageLength:     getEnvAsIntOrDefault("MAX_MESSAGE_LENGTH", 500),
		DataDir:              getEnvOrDefault("DATA_DIR", "Data"),
		ChunkSize:            getEnvAsIntOrDefault("CHUNK_SIZE", 500),
		ChunkOverlap:         getEnvAsIntOrDefault("CHUNK_OVERLAP", 20),
		IngestWorkers:        getEnvAsIntOrDefault("INGEST_WORKERS", 4),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	// Credentials of the selected backend are required; the other backend's are ignored.
	switch cfg.VectorBackend {
	case BackendPinecone:
		cfg.PineconeAPIKey = mustGetEnv("PINECONE_API_KEY")
	case BackendPgvector:
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	default:
		panic(fmt.Sprintf("unknown VECTOR_BACKEND %q (expected %q or %q)", cfg.VectorBackend, BackendPinecone, BackendPgvector))
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
