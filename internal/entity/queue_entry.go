package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
)

// QueueEntry tracks one processing attempt for a Document.
// At most one entry exists per document (enforced at creation time).
type QueueEntry struct {
	ID              uuid.UUID             `json:"id"`
	DocumentID      uuid.UUID             `json:"document_id"`
	Status          constants.QueueStatus `json:"status"`
	ProgressPercent int                   `json:"progress_percent"`
	Priority        int                   `json:"priority"`
	ErrorLog        *string               `json:"error_log,omitempty"`
	QueuedAt        time.Time             `json:"queued_at"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
}
