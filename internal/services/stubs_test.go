package services

import (
	"context"
	"strings"
	"sync"

	"medibot-backend/internal/models"
)

type generateFunc func(prompt string) (string, error)

// stubGenerator routes prompts by their leading text so a single stub can serve
// the classifier, the localizer and the responder.
type stubGenerator struct {
	mu       sync.Mutex
	classify generateFunc
	localize generateFunc
	answer   generateFunc
	prompts  []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	var fn generateFunc
	switch {
	case strings.HasPrefix(prompt, "Classify the user's message"):
		fn = s.classify
	case strings.HasPrefix(prompt, "User wrote:"):
		fn = s.localize
	default:
		fn = s.answer
	}
	if fn == nil {
		return "", ErrNoCandidates
	}
	return fn(prompt)
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *stubGenerator) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

func fixed(text string) generateFunc {
	return func(string) (string, error) { return text, nil }
}

func failing(err error) generateFunc {
	return func(string) (string, error) { return "", err }
}

type stubSearcher struct {
	chunks    []models.Chunk
	err       error
	calls     int
	lastQuery string
	lastK     int
}

func (s *stubSearcher) SimilaritySearch(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	s.calls++
	s.lastQuery = query
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	return s.chunks, nil
}

func newTestChatService(gen *stubGenerator, index *stubSearcher) *ChatService {
	return NewChatService(
		NewIntentClassifier(gen),
		NewResponder(index, gen, 5, nil),
		NewLocalizer(gen),
		500,
		nil,
	)
}
