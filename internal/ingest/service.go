package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/entity"
	"github.com/upay-labs/docuflow/internal/repository"
)

// UploadRequest carries one file from the upload collaborator.
type UploadRequest struct {
	Content          io.Reader
	OriginalFilename string
	Category         *constants.Category
	UploaderID       uuid.UUID
	City             string
	CenterID         *uuid.UUID
	Priority         int
}

// UploadResult is the created document/queue-entry pair.
type UploadResult struct {
	Document *entity.Document
	Entry    *entity.QueueEntry
}

// Service stores an uploaded file under a collision-resistant name and
// creates the Document (uploaded) plus its ProcessingQueue entry (queued).
// The file write completes before the entry is enqueued; later pipeline
// failures never propagate back to the uploader.
type Service struct {
	docs   repository.DocumentRepository
	queue  repository.QueueRepository
	dir    string
	logger *slog.Logger
}

func NewService(docs repository.DocumentRepository, queue repository.QueueRepository, dir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, queue: queue, dir: dir, logger: logger}
}

func (s *Service) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	ext := constants.NormalizeExt(filepath.Ext(req.OriginalFilename))
	if !constants.AllowedExt(ext) {
		return nil, common.WrapError(common.ErrInvalidArgument, fmt.Sprintf("unsupported file type %q", ext))
	}
	if req.UploaderID == uuid.Nil {
		return nil, common.WrapError(common.ErrInvalidArgument, "uploader is required")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	docID := uuid.New()
	stored := fmt.Sprintf("%s.%s", docID, ext)
	path := filepath.Join(s.dir, stored)

	size, err := s.storeFile(path, req.Content)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &entity.Document{
		ID:               docID,
		OriginalFilename: req.OriginalFilename,
		StoredFilename:   stored,
		FilePath:         path,
		FileSizeMB:       toMB(size),
		FileType:         ext,
		Category:         req.Category,
		City:             req.City,
		CenterID:         req.CenterID,
		Status:           constants.DocUploaded,
		UploaderID:       req.UploaderID,
		UploadedAt:       now,
		UpdatedAt:        now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	entry := &entity.QueueEntry{
		ID:              uuid.New(),
		DocumentID:      docID,
		Status:          constants.QueueQueued,
		ProgressPercent: 0,
		Priority:        req.Priority,
		QueuedAt:        now,
	}
	if err := s.queue.Enqueue(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded",
		"document_id", docID,
		"original_filename", req.OriginalFilename,
		"file_type", ext,
		"size_mb", doc.FileSizeMB,
	)
	return &UploadResult{Document: doc, Entry: entry}, nil
}

func (s *Service) storeFile(path string, content io.Reader) (int64, error) {
	dest, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create stored file: %w", err)
	}
	size, err := io.Copy(dest, content)
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write stored file: %w", err)
	}
	return size, nil
}

func toMB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1024.0*1024.0)*10000) / 10000
}
