package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"medibot-backend/internal/metrics"
	"medibot-backend/internal/models"
)

// ChunkSearcher is the query side of the vector index.
type ChunkSearcher interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]models.Chunk, error)
}

// Responder answers medical queries from retrieved context.
type Responder struct {
	index   ChunkSearcher
	gen     Generator
	topK    int
	metrics *metrics.Metrics
}

func NewResponder(index ChunkSearcher, gen Generator, topK int, m *metrics.Metrics) *Responder {
	if topK <= 0 {
		topK = 5
	}
	return &Responder{
		index:   index,
		gen:     gen,
		topK:    topK,
		metrics: m,
	}
}

// Respond retrieves context for message and generates an answer. On generation
// failure the returned string is a fixed apology and err is non-nil.
func (r *Responder) Respond(ctx context.Context, message string) (string, error) {
	chunks := r.retrieve(ctx, message)
	prompt := RenderAnswerPrompt(BuildContext(chunks), message)

	answer, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrNoCandidates) || errors.Is(err, ErrEmptyResponse) {
			return ApologyNoResponse, err
		}
		return ApologyGenerationErr, err
	}
	return answer, nil
}

// retrieve never fails: an unreachable index is logged and treated as an empty result.
func (r *Responder) retrieve(ctx context.Context, message string) []models.Chunk {
	start := time.Now()
	chunks, err := r.index.SimilaritySearch(ctx, message, r.topK)
	r.metrics.ObserveCall(metrics.CallSearch, time.Since(start))
	if err != nil {
		log.Printf("Retrieval failed, continuing without context: %v", err)
		r.metrics.RecordFallback(metrics.StageRetrieve)
		return nil
	}
	if len(chunks) > r.topK {
		chunks = chunks[:r.topK]
	}
	r.metrics.ObserveRetrieved(len(chunks))
	log.Printf("Retrieved %d chunks: [%s]", len(chunks), describeChunks(chunks))
	return chunks
}

// BuildContext joins chunk texts with newlines, or returns NoContextFound when
// there is nothing to join.
func BuildContext(chunks []models.Chunk) string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	if len(texts) == 0 {
		return NoContextFound
	}
	return strings.Join(texts, "\n")
}

func describeChunks(chunks []models.Chunk) string {
	sources := make([]string, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, fmt.Sprintf("%s#%d", c.Source, c.Index))
	}
	return strings.Join(sources, ", ")
}
