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

type fieldRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewFieldRepository(db *sql.DB, log *slog.Logger) FieldRepository {
	return &fieldRepo{db: db, log: log}
}

func (r *fieldRepo) CreateBatch(ctx context.Context, fields []*entity.ExtractedField) error {
	if len(fields) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, f := range fields {
		_, err := tx.ExecContext(ctx, `
INSERT INTO extracted_fields (
	id, document_id, field_name, field_value, confidence_score,
	field_position, validation_status, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
			f.ID.String(), f.DocumentID.String(), f.FieldName, f.FieldValue,
			f.ConfidenceScore, f.FieldPosition, string(f.ValidationStatus), f.UpdatedAt.UTC(),
		)
		if err != nil {
			r.log.Error("field insert failed", "document_id", f.DocumentID, "field", f.FieldName, "error", err)
			return fmt.Errorf("insert field %s: %w", f.FieldName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fields: %w", err)
	}
	r.log.Info("extracted fields written", "document_id", fields[0].DocumentID, "count", len(fields))
	return nil
}

func (r *fieldRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtractedField, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, field_name, field_value, confidence_score,
	field_position, validation_status, updated_at
FROM extracted_fields
WHERE id = $1
`, id.String())

	field, err := scanField(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("field %s", id))
		}
		return nil, fmt.Errorf("scan field: %w", err)
	}
	return field, nil
}

func (r *fieldRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*entity.ExtractedField, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, field_name, field_value, confidence_score,
	field_position, validation_status, updated_at
FROM extracted_fields
WHERE document_id = $1
ORDER BY field_name
`, documentID.String())
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []*entity.ExtractedField
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}

func (r *fieldRepo) UpdateValue(ctx context.Context, id uuid.UUID, value string, status constants.ValidationStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE extracted_fields
SET field_value = $2, validation_status = $3, updated_at = $4
WHERE id = $1
`, id.String(), value, string(status), time.Now().UTC())
	if err != nil {
		r.log.Error("field update failed", "field_id", id, "error", err)
		return fmt.Errorf("update field: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("field %s", id))
	}
	r.log.Info("field updated", "field_id", id, "validation_status", status)
	return nil
}

func scanField(row rowScanner) (*entity.ExtractedField, error) {
	var (
		field          entity.ExtractedField
		id, documentID string
		status         string
	)
	err := row.Scan(
		&id, &documentID, &field.FieldName, &field.FieldValue,
		&field.ConfidenceScore, &field.FieldPosition, &status, &field.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if field.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse field id: %w", err)
	}
	if field.DocumentID, err = uuid.Parse(documentID); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	field.ValidationStatus = constants.ValidationStatus(status)
	return &field, nil
}
