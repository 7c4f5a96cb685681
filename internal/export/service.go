package export

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for
// approved documents and status rollups for dashboards.
type Service struct {
	docs   repository.DocumentRepository
	fields repository.FieldRepository
	logger *slog.Logger
}

func NewService(docs repository.DocumentRepository, fields repository.FieldRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, fields: fields, logger: logger}
}

// ExportDocumentXLSX returns an XLSX workbook (as bytes) containing the
// verified fields of one approved document. Documents that have not cleared
// review are refused.
func (s *Service) ExportDocumentXLSX(ctx context.Context, documentID uuid.UUID) ([]byte, error) {
	start := time.Now()

	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != constants.DocApproved {
		return nil, common.WrapError(common.ErrInvalidState, fmt.Sprintf("document %s is %s, only approved documents can be exported", documentID, doc.Status))
	}

	flds, err := s.fields.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Fields"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Field Name",
		"Value",
		"Confidence",
		"Validation Status",
		"Position",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, fld := range flds {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, fld.FieldName)
		write(2, truncate(fld.FieldValue, 200))
		write(3, fld.ConfidenceScore)
		write(4, string(fld.ValidationStatus))
		write(5, fld.FieldPosition)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28) // field name
	_ = f.SetColWidth(sheet, "B", "B", 48) // value
	_ = f.SetColWidth(sheet, "C", "D", 16) // confidence, status
	_ = f.SetColWidth(sheet, "E", "E", 20) // position

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"document_id", documentID.String(),
		"rows", len(flds),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// StatusSummary reports how many documents sit in each lifecycle state.
// States with no documents are reported as zero rather than omitted.
func (s *Service) StatusSummary(ctx context.Context) (map[constants.DocumentStatus]int, error) {
	counts, err := s.docs.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	out := make(map[constants.DocumentStatus]int, len(constants.AllDocumentStatuses))
	for _, st := range constants.AllDocumentStatuses {
		out[st] = counts[st]
	}
	return out, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
