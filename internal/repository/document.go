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

type documentRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewDocumentRepository(db *sql.DB, log *slog.Logger) DocumentRepository {
	return &documentRepo{db: db, log: log}
}

func (r *documentRepo) Create(ctx context.Context, doc *entity.Document) error {
	var category, centerID sql.NullString
	if doc.Category != nil {
		category = sql.NullString{String: string(*doc.Category), Valid: true}
	}
	if doc.CenterID != nil {
		centerID = sql.NullString{String: doc.CenterID.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, original_filename, stored_filename, file_path, file_size_mb, file_type,
	category, city, center_id, status, uploader_id, uploaded_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		doc.ID.String(), doc.OriginalFilename, doc.StoredFilename, doc.FilePath,
		doc.FileSizeMB, doc.FileType, category, doc.City, centerID,
		string(doc.Status), doc.UploaderID.String(), doc.UploadedAt.UTC(), doc.UpdatedAt.UTC(),
	)
	if err != nil {
		r.log.Error("document create failed", "document_id", doc.ID, "error", err)
		return fmt.Errorf("insert document: %w", err)
	}
	r.log.Info("document created", "document_id", doc.ID, "status", doc.Status)
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, original_filename, stored_filename, file_path, file_size_mb, file_type,
	category, city, center_id, status, uploader_id, uploaded_at, updated_at
FROM documents
WHERE id = $1
`, id.String())

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("document %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.DocumentStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, updated_at = $3
WHERE id = $1
`, id.String(), string(status), time.Now().UTC())
	if err != nil {
		r.log.Error("document status update failed", "document_id", id, "status", status, "error", err)
		return fmt.Errorf("update document status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("document %s", id))
	}
	r.log.Info("document status updated", "document_id", id, "status", status)
	return nil
}

func (r *documentRepo) ListByStatus(ctx context.Context, status constants.DocumentStatus) ([]*entity.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, original_filename, stored_filename, file_path, file_size_mb, file_type,
	category, city, center_id, status, uploader_id, uploaded_at, updated_at
FROM documents
WHERE status = $1
ORDER BY uploaded_at
`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepo) CountByStatus(ctx context.Context) (map[constants.DocumentStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT status, COUNT(*) FROM documents GROUP BY status
`)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	defer rows.Close()

	out := make(map[constants.DocumentStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[constants.DocumentStatus(status)] = n
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		doc                entity.Document
		id, uploaderID     string
		category, centerID sql.NullString
		status             string
	)
	err := row.Scan(
		&id, &doc.OriginalFilename, &doc.StoredFilename, &doc.FilePath,
		&doc.FileSizeMB, &doc.FileType, &category, &doc.City, &centerID,
		&status, &uploaderID, &doc.UploadedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if doc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	if doc.UploaderID, err = uuid.Parse(uploaderID); err != nil {
		return nil, fmt.Errorf("parse uploader id: %w", err)
	}
	if category.Valid {
		cat := constants.Category(category.String)
		doc.Category = &cat
	}
	if centerID.Valid {
		cid, err := uuid.Parse(centerID.String)
		if err != nil {
			return nil, fmt.Errorf("parse center id: %w", err)
		}
		doc.CenterID = &cid
	}
	doc.Status = constants.DocumentStatus(status)
	return &doc, nil
}
