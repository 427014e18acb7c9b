package worker

import (
	"context"
	"log"
	"sync"

	"medibot-backend/internal/models"
)

// Ingester processes a single file job.
type Ingester interface {
	Ingest(ctx context.Context, job models.IngestJob) models.IngestResult
}

type Pool struct {
	ingester    Ingester
	workerCount int
}

func NewPool(ingester Ingester, workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &Pool{
		ingester:    ingester,
		workerCount: workerCount,
	}
}

// Run feeds jobs to the workers and blocks until every job has been handled
// or ctx is cancelled. Jobs not started before cancellation are not counted.
func (p *Pool) Run(ctx context.Context, jobs []models.IngestJob) models.IngestSummary {
	jobChan := make(chan models.IngestJob)
	results := make(chan models.IngestResult)

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.worker(ctx, id, jobChan, results)
		}(i)
	}
	log.Printf("Started %d worker goroutines", p.workerCount)

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case jobChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var summary models.IngestSummary
	for res := range results {
		summary.Files++
		summary.Chunks += res.Chunks
		switch {
		case res.Err != nil:
			summary.Failed++
		case res.Skipped:
			summary.Skipped++
		}
	}
	return summary
}

func (p *Pool) worker(ctx context.Context, id int, jobs <-chan models.IngestJob, results chan<- models.IngestResult) {
	for job := range jobs {
		if ctx.Err() != nil {
			log.Printf("Worker %d shutting down", id)
			return
		}

		log.Printf("Worker %d: processing %s", id, job.Path)
		res := p.ingester.Ingest(ctx, job)

		switch {
		case res.Err != nil:
			log.Printf("Worker %d: %s failed: %v", id, job.Path, res.Err)
		case res.Skipped:
			log.Printf("Worker %d: %s unchanged, skipped", id, job.Path)
		default:
			log.Printf("Worker %d: %s stored %d chunks", id, job.Path, res.Chunks)
		}

		results <- res
	}
}
