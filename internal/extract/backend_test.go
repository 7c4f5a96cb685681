package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/upay-labs/docuflow/constants"
)

type stubReader struct {
	layout *Layout
	err    error
}

func (s stubReader) Read(_ context.Context, _ string) (*Layout, error) {
	return s.layout, s.err
}

func writeTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLayoutBackendMissingFile(t *testing.T) {
	b := NewLayoutBackend(stubReader{}, NewRegistry(nil), nil)

	_, err := b.Extract(context.Background(), "/no/such/file.pdf", constants.ClassDiary)
	var exterr *ExtractionError
	if !errors.As(err, &exterr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLayoutBackendReaderFailure(t *testing.T) {
	path := writeTempFile(t)
	boom := errors.New("decode failed")
	b := NewLayoutBackend(stubReader{err: boom}, NewRegistry(nil), nil)

	_, err := b.Extract(context.Background(), path, constants.ClassDiary)
	var exterr *ExtractionError
	if !errors.As(err, &exterr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}

func TestLayoutBackendRunsCategoryStrategy(t *testing.T) {
	path := writeTempFile(t)
	layout := &Layout{Text: "daily notes", Entities: []Entity{{Type: "date", Mention: "2026-02-01", Confidence: 75}}}
	b := NewLayoutBackend(stubReader{layout: layout}, NewRegistry(nil), nil)

	fields, err := b.Extract(context.Background(), path, constants.ClassDiary)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if _, ok := fieldByName(fields, "activities"); !ok {
		t.Fatalf("expected diary strategy output, got %+v", fields)
	}
}

func TestMockBackendIsDeterministic(t *testing.T) {
	fields, err := MockBackend{}.Extract(context.Background(), "ignored", constants.SurveyForm)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "mock_field" || fields[0].Confidence != 100 {
		t.Fatalf("unexpected mock output: %+v", fields)
	}
}
