package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/extract"
	"github.com/upay-labs/docuflow/internal/repository"
)

// NoCategoryErrorLog is the error_log text recorded when a document enters
// processing without an assigned category.
const NoCategoryErrorLog = "No category assigned"

// progress checkpoint after extraction, before fields are written
const progressExtracted = 60

// Processor drives one document and its queue entry through the pipeline:
// claim, extract, validate, persist, complete. Extraction failures are
// caught here and converted into the failed/error transition; nothing is
// retried automatically.
type Processor struct {
	docs    repository.DocumentRepository
	queue   repository.QueueRepository
	fields  repository.FieldRepository
	backend extract.Backend
	policy  *Policy
	logger  *slog.Logger
}

func NewProcessor(
	docs repository.DocumentRepository,
	queue repository.QueueRepository,
	fields repository.FieldRepository,
	backend extract.Backend,
	policy *Policy,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		docs:    docs,
		queue:   queue,
		fields:  fields,
		backend: backend,
		policy:  policy,
		logger:  logger,
	}
}

// ProcessDocument runs one orchestration attempt for documentID. When it
// returns, the document is never left in an intermediate state: either the
// claim was lost (no state change), or the pair reached
// (review_pending, completed) or (error, failed).
func (p *Processor) ProcessDocument(ctx context.Context, documentID uuid.UUID) error {
	entry, err := p.queue.Claim(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotClaimable) {
			// Another run holds the entry, or it already finished.
			p.logger.Debug("queue entry not claimable", "document_id", documentID)
			return nil
		}
		return fmt.Errorf("claim queue entry: %w", err)
	}

	doc, err := p.docs.GetByID(ctx, documentID)
	if err != nil {
		p.failRun(ctx, entry.ID, documentID, fmt.Sprintf("load document: %v", err))
		return fmt.Errorf("load document: %w", err)
	}

	if doc.Category == nil {
		p.failRun(ctx, entry.ID, documentID, NoCategoryErrorLog)
		return fmt.Errorf("process document %s: no category assigned", documentID)
	}

	raw, err := p.backend.Extract(ctx, doc.FilePath, *doc.Category)
	if err != nil {
		p.logger.Error("extraction failed", "document_id", documentID, "error", err)
		p.failRun(ctx, entry.ID, documentID, err.Error())
		return fmt.Errorf("extract: %w", err)
	}

	if err := p.queue.SetProgress(ctx, entry.ID, progressExtracted); err != nil {
		p.logger.Warn("progress update failed", "entry_id", entry.ID, "error", err)
	}

	fields := p.policy.Apply(documentID, *doc.Category, raw, time.Now().UTC())
	if err := p.fields.CreateBatch(ctx, fields); err != nil {
		p.failRun(ctx, entry.ID, documentID, fmt.Sprintf("persist fields: %v", err))
		return fmt.Errorf("persist fields: %w", err)
	}

	if err := p.queue.Complete(ctx, entry.ID); err != nil {
		return fmt.Errorf("complete queue entry: %w", err)
	}
	if err := p.docs.UpdateStatus(ctx, documentID, constants.DocReviewPending); err != nil {
		return fmt.Errorf("update document status: %w", err)
	}

	p.logger.Info("document processed",
		"document_id", documentID,
		"category", string(*doc.Category),
		"fields", len(fields),
	)
	return nil
}

// failRun records the terminal failed/error transition for this attempt.
func (p *Processor) failRun(ctx context.Context, entryID, documentID uuid.UUID, errorLog string) {
	if err := p.queue.Fail(ctx, entryID, errorLog); err != nil {
		p.logger.Error("queue fail transition failed", "entry_id", entryID, "error", err)
	}
	if err := p.docs.UpdateStatus(ctx, documentID, constants.DocError); err != nil {
		p.logger.Error("document error transition failed", "document_id", documentID, "error", err)
	}
}
