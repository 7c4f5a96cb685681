package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/entity"
)

type queueRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewQueueRepository(db *sql.DB, log *slog.Logger) QueueRepository {
	return &queueRepo{db: db, log: log}
}

func (r *queueRepo) Enqueue(ctx context.Context, entry *entity.QueueEntry) error {
	// document_id is UNIQUE: a second entry for the same document fails here.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO queue_entries (id, document_id, status, progress_percent, priority, queued_at)
VALUES ($1,$2,$3,$4,$5,$6)
`,
		entry.ID.String(), entry.DocumentID.String(), string(entry.Status),
		entry.ProgressPercent, entry.Priority, entry.QueuedAt.UTC(),
	)
	if err != nil {
		r.log.Error("enqueue failed", "document_id", entry.DocumentID, "error", err)
		return fmt.Errorf("insert queue entry: %w", err)
	}
	r.log.Info("queue entry created", "entry_id", entry.ID, "document_id", entry.DocumentID)
	return nil
}

func (r *queueRepo) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*entity.QueueEntry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, status, progress_percent, priority, error_log, queued_at, completed_at
FROM queue_entries
WHERE document_id = $1
`, documentID.String())

	entry, err := scanQueueEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("queue entry for document %s", documentID))
		}
		return nil, fmt.Errorf("scan queue entry: %w", err)
	}
	return entry, nil
}

// Claim is the atomic claim operation: a conditional status update so that
// two runs can never both move the same entry into processing.
func (r *queueRepo) Claim(ctx context.Context, documentID uuid.UUID) (*entity.QueueEntry, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE queue_entries
SET status = $2, progress_percent = 0, error_log = NULL
WHERE document_id = $1 AND status = $3
RETURNING id, document_id, status, progress_percent, priority, error_log, queued_at, completed_at
`, documentID.String(), string(constants.QueueProcessing), string(constants.QueueQueued))

	entry, err := scanQueueEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotClaimable
		}
		return nil, fmt.Errorf("claim queue entry: %w", err)
	}
	r.log.Info("queue entry claimed", "entry_id", entry.ID, "document_id", documentID)
	return entry, nil
}

func (r *queueRepo) SetProgress(ctx context.Context, id uuid.UUID, percent int) error {
	if percent < 0 || percent > 100 {
		return common.WrapError(common.ErrInvalidArgument, fmt.Sprintf("progress %d", percent))
	}
	// Monotonic within an attempt: regressions are silently dropped by the
	// guard rather than rejected, so late progress reports are harmless.
	_, err := r.db.ExecContext(ctx, `
UPDATE queue_entries
SET progress_percent = $2
WHERE id = $1 AND progress_percent <= $2 AND status = $3
`, id.String(), percent, string(constants.QueueProcessing))
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

func (r *queueRepo) Complete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE queue_entries
SET status = $2, progress_percent = 100, completed_at = $3
WHERE id = $1 AND status = $4
`, id.String(), string(constants.QueueCompleted), time.Now().UTC(), string(constants.QueueProcessing))
	if err != nil {
		r.log.Error("queue complete failed", "entry_id", id, "error", err)
		return fmt.Errorf("complete queue entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.WrapError(common.ErrInvalidState, fmt.Sprintf("queue entry %s not processing", id))
	}
	r.log.Info("queue entry completed", "entry_id", id)
	return nil
}

func (r *queueRepo) Fail(ctx context.Context, id uuid.UUID, errorLog string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE queue_entries
SET status = $2, error_log = $3, completed_at = $4
WHERE id = $1 AND status = $5
`, id.String(), string(constants.QueueFailed), errorLog, time.Now().UTC(), string(constants.QueueProcessing))
	if err != nil {
		r.log.Error("queue fail update failed", "entry_id", id, "error", err)
		return fmt.Errorf("fail queue entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.WrapError(common.ErrInvalidState, fmt.Sprintf("queue entry %s not processing", id))
	}
	r.log.Warn("queue entry failed", "entry_id", id, "error_log", errorLog)
	return nil
}

func (r *queueRepo) ListQueuedDocumentIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT document_id
FROM queue_entries
WHERE status = $1
ORDER BY queued_at
LIMIT $2
`, string(constants.QueueQueued), limit)
	if err != nil {
		return nil, fmt.Errorf("list queued entries: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanQueueEntry(row rowScanner) (*entity.QueueEntry, error) {
	var (
		entry          entity.QueueEntry
		id, documentID string
		status         string
		errorLog       sql.NullString
		completedAt    sql.NullTime
	)
	err := row.Scan(
		&id, &documentID, &status, &entry.ProgressPercent, &entry.Priority,
		&errorLog, &entry.QueuedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse entry id: %w", err)
	}
	if entry.DocumentID, err = uuid.Parse(documentID); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	entry.Status = constants.QueueStatus(status)
	if errorLog.Valid {
		entry.ErrorLog = &errorLog.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		entry.CompletedAt = &t
	}
	return &entry, nil
}
