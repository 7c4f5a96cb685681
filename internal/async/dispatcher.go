package async

import (
	"context"
	"time"

	"log/slog"

	"github.com/upay-labs/docuflow/internal/repository"
)

// Dispatcher polls the persisted queue for entries still in the queued state
// and feeds them into the worker pool. Re-dispatching an entry a worker has
// already claimed is a no-op, so the poll interval only bounds latency.
type Dispatcher struct {
	queue    repository.QueueRepository
	pool     *ProcessorQueue
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

func NewDispatcher(queue repository.QueueRepository, pool *ProcessorQueue, interval time.Duration, logger *slog.Logger) *Dispatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		queue:    queue,
		pool:     pool,
		interval: interval,
		batch:    64,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("dispatcher started", "interval", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped")
			return
		case <-ticker.C:
			d.dispatchOnce(ctx)
		}
	}
}

func (d *Dispatcher) dispatchOnce(ctx context.Context) {
	ids, err := d.queue.ListQueuedDocumentIDs(ctx, d.batch)
	if err != nil {
		d.logger.Error("failed to list queued documents", "error", err)
		return
	}
	now := time.Now()
	for _, id := range ids {
		if err := d.pool.Enqueue(ctx, Job{DocumentID: id, SubmittedAt: now}); err != nil {
			d.logger.Error("failed to enqueue document", "document_id", id, "error", err)
		}
	}
	if len(ids) > 0 {
		d.logger.Debug("dispatched queued documents", "count", len(ids))
	}
}
