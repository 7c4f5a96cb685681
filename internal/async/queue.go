package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/internal/observability/metrics"
	"github.com/upay-labs/docuflow/internal/pipeline"
)

// Job is the smallest useful unit of work: one document to orchestrate.
type Job struct {
	DocumentID  uuid.UUID
	SubmittedAt time.Time
}

// ProcessorQueue fans jobs out to a fixed worker pool. Each worker runs one
// orchestration attempt per job; the atomic claim in the repository makes
// duplicate submissions harmless.
type ProcessorQueue struct {
	proc    *pipeline.Processor
	logger  *slog.Logger
	metrics *metrics.PipelineMetrics
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func WithMetrics(m *metrics.PipelineMetrics) Option {
	return func(q *ProcessorQueue) {
		q.metrics = m
	}
}

func NewProcessorQueue(proc *pipeline.Processor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					q.runJob(workerID, job)
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) runJob(workerID int, job Job) {
	if q.metrics != nil {
		q.metrics.StartDocument()
		q.metrics.SetQueueDepth(len(q.ch))
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	err := q.proc.ProcessDocument(ctx, job.DocumentID)
	cancel()

	if q.metrics != nil {
		q.metrics.FinishDocument(time.Since(start), err)
	}
	if err != nil {
		q.logger.Error("processing failed", "worker_id", workerID, "document_id", job.DocumentID, "error", err)
	} else {
		q.logger.Info("processed document", "worker_id", workerID, "document_id", job.DocumentID)
	}
}

func (q *ProcessorQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "document_id", job.DocumentID)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued document for processing", "document_id", job.DocumentID)
	default:
		q.logger.Warn("queue full, applying backpressure", "document_id", job.DocumentID)
		q.ch <- job
	}
	return nil
}

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
