package extract

import (
	"context"

	"github.com/upay-labs/docuflow/constants"
)

// MockBackend returns one fixed field regardless of input. Deterministic
// stand-in for environments without an OCR engine.
type MockBackend struct{}

func (MockBackend) Extract(_ context.Context, _ string, _ constants.Category) ([]RawField, error) {
	return []RawField{
		{
			Name:       "mock_field",
			Value:      "mock_value",
			Confidence: 100,
			Position:   "mock_position",
		},
	}, nil
}
