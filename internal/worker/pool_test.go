package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"medibot-backend/internal/models"
)

type stubIngester struct {
	mu   sync.Mutex
	seen []string
}

func (s *stubIngester) Ingest(ctx context.Context, job models.IngestJob) models.IngestResult {
	s.mu.Lock()
	s.seen = append(s.seen, job.Path)
	s.mu.Unlock()

	switch {
	case strings.HasPrefix(job.Path, "bad"):
		return models.IngestResult{Path: job.Path, Err: errors.New("extract failed")}
	case strings.HasPrefix(job.Path, "old"):
		return models.IngestResult{Path: job.Path, Skipped: true}
	default:
		return models.IngestResult{Path: job.Path, Chunks: 3}
	}
}

func TestPool_RunAggregatesResults(t *testing.T) {
	ing := &stubIngester{}
	p := NewPool(ing, 3)

	jobs := []models.IngestJob{
		{Path: "a.pdf"}, {Path: "b.pdf"}, {Path: "bad.pdf"}, {Path: "old.txt"}, {Path: "c.txt"},
	}
	summary := p.Run(context.Background(), jobs)

	want := models.IngestSummary{Files: 5, Chunks: 9, Skipped: 1, Failed: 1}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
	if len(ing.seen) != len(jobs) {
		t.Fatalf("expected every job to be processed once, got %v", ing.seen)
	}
}

func TestPool_RunNoJobs(t *testing.T) {
	p := NewPool(&stubIngester{}, 0)

	if got := p.Run(context.Background(), nil); got != (models.IngestSummary{}) {
		t.Fatalf("expected empty summary, got %+v", got)
	}
}

func TestPool_RunCancelled(t *testing.T) {
	ing := &stubIngester{}
	p := NewPool(ing, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := p.Run(ctx, []models.IngestJob{{Path: "a.pdf"}, {Path: "b.pdf"}})
	if summary.Files > 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
