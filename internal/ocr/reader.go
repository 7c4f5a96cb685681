package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/extract"
)

type Config struct {
	TesseractLang string // default "eng"
}

// Reader recognizes document structure from PDF and image files.
// PDFs go through embedded-text extraction; images go through Tesseract.
// The recognized text is then segmented into tables, form fields, and
// date entities.
type Reader struct {
	cfg    Config
	logger *slog.Logger
}

func NewReader(cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	return &Reader{cfg: cfg, logger: logger}
}

// Read picks a recognition method based on file extension.
func (r *Reader) Read(ctx context.Context, path string) (*extract.Layout, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))

	var (
		text string
		conf int
		err  error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		text, err = pdfText(path)
		conf = heuristicConfidence(text)
	case constants.IMAGE:
		text, conf, err = r.imageText(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
	if err != nil {
		return nil, err
	}

	layout := buildLayout(text, conf)
	r.logger.Debug("layout recognized",
		"path", path,
		"ext", ext,
		"tables", len(layout.Tables),
		"form_fields", len(layout.FormFields),
		"entities", len(layout.Entities),
		"duration", time.Since(start),
	)
	return layout, nil
}
