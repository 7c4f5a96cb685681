package extract

import (
	"context"
	"log/slog"
	"os"

	"github.com/upay-labs/docuflow/constants"
)

// LayoutBackend is the real extraction backend: a LayoutReader recognizes the
// document structure, then the category's strategy turns it into RawFields.
type LayoutBackend struct {
	reader   LayoutReader
	registry *Registry
	logger   *slog.Logger
}

func NewLayoutBackend(reader LayoutReader, registry *Registry, logger *slog.Logger) *LayoutBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutBackend{reader: reader, registry: registry, logger: logger}
}

func (b *LayoutBackend) Extract(ctx context.Context, path string, category constants.Category) ([]RawField, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	layout, err := b.reader.Read(ctx, path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	strategy := b.registry.Lookup(category)
	fields := strategy.Extract(layout)
	b.logger.Debug("extraction completed",
		"path", path,
		"category", string(category),
		"fields", len(fields),
	)
	return fields, nil
}
