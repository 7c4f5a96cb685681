package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
)

// Document represents an uploaded file and its processing lifecycle.
type Document struct {
	ID               uuid.UUID                `json:"id"`
	OriginalFilename string                   `json:"original_filename"`
	StoredFilename   string                   `json:"stored_filename"`
	FilePath         string                   `json:"file_path"`
	FileSizeMB       float64                  `json:"file_size_mb"`
	FileType         string                   `json:"file_type"`
	Category         *constants.Category      `json:"category,omitempty"`
	City             string                   `json:"city,omitempty"`
	CenterID         *uuid.UUID               `json:"center_id,omitempty"`
	Status           constants.DocumentStatus `json:"status"`
	UploaderID       uuid.UUID                `json:"uploader_id"`
	UploadedAt       time.Time                `json:"uploaded_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}
