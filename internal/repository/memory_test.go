package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/entity"
)

func seedEntry(t *testing.T, q QueueRepository, docID uuid.UUID) *entity.QueueEntry {
	t.Helper()
	entry := &entity.QueueEntry{
		ID:         uuid.New(),
		DocumentID: docID,
		Status:     constants.QueueQueued,
		QueuedAt:   time.Now().UTC(),
	}
	if err := q.Enqueue(context.Background(), entry); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return entry
}

func TestMemoryClaimIsExclusive(t *testing.T) {
	q := NewMemoryStore().Queue()
	docID := uuid.New()
	seedEntry(t, q, docID)
	ctx := context.Background()

	first, err := q.Claim(ctx, docID)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if first.Status != constants.QueueProcessing || first.ProgressPercent != 0 {
		t.Fatalf("claimed entry = %+v", first)
	}

	if _, err := q.Claim(ctx, docID); !errors.Is(err, ErrNotClaimable) {
		t.Fatalf("second claim must lose, got %v", err)
	}
}

func TestMemoryOneEntryPerDocument(t *testing.T) {
	q := NewMemoryStore().Queue()
	docID := uuid.New()
	seedEntry(t, q, docID)

	err := q.Enqueue(context.Background(), &entity.QueueEntry{
		ID:         uuid.New(),
		DocumentID: docID,
		Status:     constants.QueueQueued,
		QueuedAt:   time.Now().UTC(),
	})
	if err == nil {
		t.Fatalf("second entry for the same document must be rejected")
	}
}

func TestMemoryProgressIsMonotonic(t *testing.T) {
	q := NewMemoryStore().Queue()
	docID := uuid.New()
	seedEntry(t, q, docID)
	ctx := context.Background()

	entry, err := q.Claim(ctx, docID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := q.SetProgress(ctx, entry.ID, 60); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	// A late, lower report is dropped.
	if err := q.SetProgress(ctx, entry.ID, 30); err != nil {
		t.Fatalf("regressing progress is dropped, not an error: %v", err)
	}

	got, err := q.GetByDocumentID(ctx, docID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ProgressPercent != 60 {
		t.Fatalf("progress = %d, want 60", got.ProgressPercent)
	}

	if err := q.SetProgress(ctx, entry.ID, 101); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("out-of-range progress must be rejected, got %v", err)
	}
}

func TestMemoryCompleteRequiresProcessing(t *testing.T) {
	q := NewMemoryStore().Queue()
	docID := uuid.New()
	entry := seedEntry(t, q, docID)
	ctx := context.Background()

	if err := q.Complete(ctx, entry.ID); !errors.Is(err, common.ErrInvalidState) {
		t.Fatalf("completing a queued entry must fail, got %v", err)
	}

	if _, err := q.Claim(ctx, docID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := q.Complete(ctx, entry.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, _ := q.GetByDocumentID(ctx, docID)
	if got.Status != constants.QueueCompleted || got.CompletedAt == nil || got.ProgressPercent != 100 {
		t.Fatalf("completed entry = %+v", got)
	}

	if err := q.Fail(ctx, entry.ID, "late failure"); !errors.Is(err, common.ErrInvalidState) {
		t.Fatalf("failing a completed entry must be rejected, got %v", err)
	}
}

func TestMemoryFailRecordsErrorLog(t *testing.T) {
	q := NewMemoryStore().Queue()
	docID := uuid.New()
	entry := seedEntry(t, q, docID)
	ctx := context.Background()

	if _, err := q.Claim(ctx, docID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := q.Fail(ctx, entry.ID, "ocr timeout"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	got, _ := q.GetByDocumentID(ctx, docID)
	if got.Status != constants.QueueFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if got.ErrorLog == nil || *got.ErrorLog != "ocr timeout" {
		t.Fatalf("error log = %v", got.ErrorLog)
	}
}

func TestMemoryListQueuedOrdersByAge(t *testing.T) {
	q := NewMemoryStore().Queue()
	ctx := context.Background()
	now := time.Now().UTC()

	newer := uuid.New()
	older := uuid.New()
	for _, e := range []*entity.QueueEntry{
		{ID: uuid.New(), DocumentID: newer, Status: constants.QueueQueued, QueuedAt: now},
		{ID: uuid.New(), DocumentID: older, Status: constants.QueueQueued, QueuedAt: now.Add(-time.Hour)},
	} {
		if err := q.Enqueue(ctx, e); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	ids, err := q.ListQueuedDocumentIDs(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != older || ids[1] != newer {
		t.Fatalf("expected oldest first, got %v", ids)
	}

	one, err := q.ListQueuedDocumentIDs(ctx, 1)
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(one) != 1 || one[0] != older {
		t.Fatalf("limit must keep the oldest, got %v", one)
	}
}

func TestMemoryDocumentsCopyOnRead(t *testing.T) {
	docs := NewMemoryStore().Documents()
	ctx := context.Background()
	id := uuid.New()

	if err := docs.Create(ctx, &entity.Document{ID: id, Status: constants.DocUploaded, UploadedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := docs.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Status = constants.DocApproved // mutating the copy must not leak

	again, _ := docs.GetByID(ctx, id)
	if again.Status != constants.DocUploaded {
		t.Fatalf("store leaked a mutable reference")
	}
}

func TestMemoryCountByStatus(t *testing.T) {
	docs := NewMemoryStore().Documents()
	ctx := context.Background()

	for _, st := range []constants.DocumentStatus{constants.DocUploaded, constants.DocUploaded, constants.DocApproved} {
		if err := docs.Create(ctx, &entity.Document{ID: uuid.New(), Status: st, UploadedAt: time.Now()}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	counts, err := docs.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[constants.DocUploaded] != 2 || counts[constants.DocApproved] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}
