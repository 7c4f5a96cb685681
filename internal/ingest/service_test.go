package ingest

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/repository"
)

func newUploadService(t *testing.T) (*Service, *repository.MemoryStore, string) {
	t.Helper()
	store := repository.NewMemoryStore()
	dir := t.TempDir()
	return NewService(store.Documents(), store.Queue(), dir, nil), store, dir
}

func TestUploadCreatesDocumentAndQueueEntry(t *testing.T) {
	svc, store, _ := newUploadService(t)
	ctx := context.Background()
	uploader := uuid.New()
	cat := constants.AttendanceSheet

	res, err := svc.Upload(ctx, UploadRequest{
		Content:          strings.NewReader("%PDF-1.4 fake"),
		OriginalFilename: "march_attendance.PDF",
		Category:         &cat,
		UploaderID:       uploader,
		City:             "Pune",
		Priority:         2,
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if res.Document.Status != constants.DocUploaded {
		t.Fatalf("document status = %s, want uploaded", res.Document.Status)
	}
	if res.Document.FileType != "pdf" {
		t.Fatalf("extension must normalize to lowercase, got %q", res.Document.FileType)
	}
	if res.Document.OriginalFilename != "march_attendance.PDF" {
		t.Fatalf("original filename must be preserved, got %q", res.Document.OriginalFilename)
	}
	if res.Document.StoredFilename == res.Document.OriginalFilename {
		t.Fatalf("stored name must be collision-resistant")
	}
	if _, err := os.Stat(res.Document.FilePath); err != nil {
		t.Fatalf("uploaded file missing on disk: %v", err)
	}

	if res.Entry.Status != constants.QueueQueued || res.Entry.ProgressPercent != 0 {
		t.Fatalf("queue entry = %+v", res.Entry)
	}
	if res.Entry.Priority != 2 {
		t.Fatalf("priority = %d, want 2", res.Entry.Priority)
	}
	if res.Entry.DocumentID != res.Document.ID {
		t.Fatalf("entry not bound to document")
	}

	// Both rows are actually persisted.
	if _, err := store.Documents().GetByID(ctx, res.Document.ID); err != nil {
		t.Fatalf("document not persisted: %v", err)
	}
	if _, err := store.Queue().GetByDocumentID(ctx, res.Document.ID); err != nil {
		t.Fatalf("queue entry not persisted: %v", err)
	}
}

func TestUploadWithoutCategoryIsAccepted(t *testing.T) {
	svc, _, _ := newUploadService(t)

	res, err := svc.Upload(context.Background(), UploadRequest{
		Content:          strings.NewReader("fake image"),
		OriginalFilename: "scan.jpeg",
		UploaderID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if res.Document.Category != nil {
		t.Fatalf("category must stay unset, got %v", *res.Document.Category)
	}
	if res.Document.FileType != "jpg" {
		t.Fatalf("jpeg must normalize to jpg, got %q", res.Document.FileType)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc, _, _ := newUploadService(t)

	_, err := svc.Upload(context.Background(), UploadRequest{
		Content:          strings.NewReader("zip bytes"),
		OriginalFilename: "bundle.zip",
		UploaderID:       uuid.New(),
	})
	if !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("expected invalid-argument, got %v", err)
	}
}

func TestUploadRequiresUploader(t *testing.T) {
	svc, _, _ := newUploadService(t)

	_, err := svc.Upload(context.Background(), UploadRequest{
		Content:          strings.NewReader("data"),
		OriginalFilename: "scan.png",
	})
	if !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("expected invalid-argument, got %v", err)
	}
}

func TestToMBRoundsToFourDecimals(t *testing.T) {
	if got := toMB(1024 * 1024); got != 1.0 {
		t.Fatalf("toMB(1MiB) = %v", got)
	}
	if got := toMB(1536 * 1024); got != 1.5 {
		t.Fatalf("toMB(1.5MiB) = %v", got)
	}
	if got := toMB(123); got != 0.0001 {
		t.Fatalf("toMB(123) = %v", got)
	}
}
