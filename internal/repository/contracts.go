package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/entity"
)

// ErrNotClaimable is returned by Claim when the entry is absent or not in
// the queued state. A claim conflict is not an error condition for the
// pipeline; the losing run simply walks away.
var ErrNotClaimable = errors.New("queue entry not claimable")

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.DocumentStatus) error
	ListByStatus(ctx context.Context, status constants.DocumentStatus) ([]*entity.Document, error)
	CountByStatus(ctx context.Context) (map[constants.DocumentStatus]int, error)
}

type QueueRepository interface {
	// Enqueue creates the entry for a document. At most one entry may exist
	// per document; a second enqueue fails.
	Enqueue(ctx context.Context, entry *entity.QueueEntry) error
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*entity.QueueEntry, error)
	// Claim atomically moves the document's entry from queued to processing
	// with progress reset to 0. Exactly one concurrent caller wins; all
	// others get ErrNotClaimable.
	Claim(ctx context.Context, documentID uuid.UUID) (*entity.QueueEntry, error)
	// SetProgress advances progress within the current attempt. Progress is
	// monotonically non-decreasing; regressions are rejected by the store.
	SetProgress(ctx context.Context, id uuid.UUID, percent int) error
	Complete(ctx context.Context, id uuid.UUID) error
	Fail(ctx context.Context, id uuid.UUID, errorLog string) error
	// ListQueuedDocumentIDs returns documents whose entries are still queued,
	// oldest first, for dispatcher pickup.
	ListQueuedDocumentIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}

type FieldRepository interface {
	CreateBatch(ctx context.Context, fields []*entity.ExtractedField) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtractedField, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*entity.ExtractedField, error)
	UpdateValue(ctx context.Context, id uuid.UUID, value string, status constants.ValidationStatus) error
}
