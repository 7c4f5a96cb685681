package entity

import (
	"github.com/upay-labs/docuflow/constants"
)

// CategorySchema defines the required fields and validation rules for a
// document category. Rules maps a field-name pattern (Go regexp) to a JSON
// Schema document applied to matching field values by the validation policy.
type CategorySchema struct {
	Category       constants.Category `json:"category"`
	RequiredFields []string           `json:"required_fields"`
	Rules          map[string]string  `json:"rules,omitempty"`
}
