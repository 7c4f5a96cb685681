package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
)

// ExtractedField is one structured datum produced by extraction.
// Created only by the pipeline; mutated afterwards only by a human
// correction, which forces validation_status=manually_verified.
type ExtractedField struct {
	ID               uuid.UUID                  `json:"id"`
	DocumentID       uuid.UUID                  `json:"document_id"`
	FieldName        string                     `json:"field_name"`
	FieldValue       string                     `json:"field_value"`
	ConfidenceScore  int                        `json:"confidence_score"`
	FieldPosition    string                     `json:"field_position"`
	ValidationStatus constants.ValidationStatus `json:"validation_status"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}
