package extract

import (
	"context"
	"fmt"

	"github.com/upay-labs/docuflow/constants"
)

// RawField is one (name, value, confidence, position) datum as produced by a
// backend, before the validation policy runs.
type RawField struct {
	Name       string
	Value      string
	Confidence int // 0..100
	Position   string
}

// Backend turns a raw file plus a category into scored fields.
// Implementations must have no side effects beyond reading the input file.
type Backend interface {
	Extract(ctx context.Context, path string, category constants.Category) ([]RawField, error)
}

// LayoutReader is the capability a layout-driven backend depends on:
// file -> recognized document layout.
type LayoutReader interface {
	Read(ctx context.Context, path string) (*Layout, error)
}

// ExtractionError signals that a file could not be read or parsed.
// The orchestrator converts it into a failed/error transition.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
