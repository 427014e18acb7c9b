package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"medibot-backend/internal/metrics"
)

var (
	// ErrNoCandidates is returned when the model produced no candidate with a text part,
	// e.g. because the output was blocked.
	ErrNoCandidates = errors.New("gemini returned no candidates")
	// ErrEmptyResponse is returned when the first text part is blank.
	ErrEmptyResponse = errors.New("gemini returned empty text")
)

// embedBatchLimit is the maximum number of contents per BatchEmbedContents call.
const embedBatchLimit = 100

type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	queryEmb *genai.EmbeddingModel
	docEmb   *genai.EmbeddingModel
	metrics  *metrics.Metrics
	rateChan chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName, embeddingModel string, concurrentReqs int, m *metrics.Metrics) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Queries and documents are embedded with distinct task types so that
	// query-time and ingestion-time vectors live in the same space.
	queryEmb := client.EmbeddingModel(embeddingModel)
	queryEmb.TaskType = genai.TaskTypeRetrievalQuery
	docEmb := client.EmbeddingModel(embeddingModel)
	docEmb.TaskType = genai.TaskTypeRetrievalDocument

	if concurrentReqs <= 0 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:   client,
		model:    model,
		queryEmb: queryEmb,
		docEmb:   docEmb,
		metrics:  m,
		rateChan: rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Generate sends a single-turn prompt and returns the trimmed first text part
// of the first candidate.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	start := time.Now()
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	s.metrics.ObserveCall(metrics.CallGenerate, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return firstText(resp)
}

// Embed returns the query-side embedding for text.
func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	resp, err := s.queryEmb.EmbedContent(ctx, genai.Text(text))
	s.metrics.ObserveCall(metrics.CallEmbed, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("Gemini embedding error: %w", err)
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("Gemini returned an empty embedding")
	}
	return resp.Embedding.Values, nil
}

// EmbedBatch returns document-side embeddings, one per text, in order.
func (s *GeminiService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for begin := 0; begin < len(texts); begin += embedBatchLimit {
		end := min(begin+embedBatchLimit, len(texts))

		batch := s.docEmb.NewBatch()
		for _, t := range texts[begin:end] {
			batch.AddContent(genai.Text(t))
		}

		start := time.Now()
		resp, err := s.docEmb.BatchEmbedContents(ctx, batch)
		s.metrics.ObserveCall(metrics.CallEmbed, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("Gemini batch embedding error: %w", err)
		}
		if len(resp.Embeddings) != end-begin {
			return nil, fmt.Errorf("Gemini returned %d embeddings for %d texts", len(resp.Embeddings), end-begin)
		}
		for _, e := range resp.Embeddings {
			vectors = append(vectors, e.Values)
		}
	}
	return vectors, nil
}

// Helper functions

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", ErrNoCandidates
	}
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text := strings.TrimSpace(string(t))
			if text == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}
	}
	return "", ErrNoCandidates
}
