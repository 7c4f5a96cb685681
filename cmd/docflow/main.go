package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"log/slog"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/extract"
	"github.com/upay-labs/docuflow/internal/ingest"
	"github.com/upay-labs/docuflow/internal/ocr"
	"github.com/upay-labs/docuflow/internal/pipeline"
	repo "github.com/upay-labs/docuflow/internal/repository"
	"github.com/upay-labs/docuflow/internal/review"
	"github.com/upay-labs/docuflow/internal/schema"

	"github.com/google/uuid"
)

// docflow runs the full extraction pipeline against one file without a
// database: upload, claim, extract, validate, then print what a reviewer
// would see.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	var (
		file     = flag.String("file", "", "path to a PDF or image to process")
		category = flag.String("category", "", "document category, e.g. attendance_sheet")
		mock     = flag.Bool("mock", false, "use the mock extraction backend instead of OCR")
		lang     = flag.String("lang", "eng", "tesseract language")
		dir      = flag.String("dir", os.TempDir(), "staging directory for the uploaded copy")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: docflow -file <path> [-category <name>] [-mock]")
		os.Exit(2)
	}

	var cat *constants.Category
	if *category != "" {
		c, ok := constants.Canonicalize(*category)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown category %q; known: %v\n", *category, constants.AsStringSlice())
			os.Exit(2)
		}
		cat = &c
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := repo.NewMemoryStore()
	docs, queue, fields := store.Documents(), store.Queue(), store.Fields()

	schemas, err := schema.NewRegistry(logger)
	if err != nil {
		fatal("build schemas", err)
	}

	var backend extract.Backend
	if *mock {
		backend = extract.MockBackend{}
	} else {
		reader := ocr.NewReader(ocr.Config{TesseractLang: *lang}, logger)
		backend = extract.NewLayoutBackend(reader, extract.NewRegistry(logger), logger)
	}

	policy := pipeline.NewPolicy(schemas, pipeline.DefaultConfidenceThreshold, logger)
	processor := pipeline.NewProcessor(docs, queue, fields, backend, policy, logger)

	src, err := os.Open(*file)
	if err != nil {
		fatal("open file", err)
	}
	defer src.Close()

	uploader := uuid.New()
	ingestor := ingest.NewService(docs, queue, *dir, logger)
	res, err := ingestor.Upload(ctx, ingest.UploadRequest{
		Content:          src,
		OriginalFilename: *file,
		Category:         cat,
		UploaderID:       uploader,
	})
	if err != nil {
		fatal("upload", err)
	}
	defer os.Remove(res.Document.FilePath)

	start := time.Now()
	procErr := processor.ProcessDocument(ctx, res.Document.ID)
	dur := time.Since(start)

	doc, err := docs.GetByID(ctx, res.Document.ID)
	if err != nil {
		fatal("reload document", err)
	}
	entry, err := queue.GetByDocumentID(ctx, res.Document.ID)
	if err != nil {
		fatal("reload queue entry", err)
	}

	fmt.Printf("document  %s\n", doc.ID)
	fmt.Printf("status    %s (queue: %s)\n", doc.Status, entry.Status)
	fmt.Printf("duration  %s\n", dur.Round(time.Millisecond))
	if entry.ErrorLog != nil {
		fmt.Printf("error     %s\n", *entry.ErrorLog)
	}
	if procErr != nil {
		os.Exit(1)
	}

	flds, err := fields.ListByDocument(ctx, doc.ID)
	if err != nil {
		fatal("list fields", err)
	}
	fmt.Printf("\nextracted %d fields:\n", len(flds))
	for _, f := range flds {
		fmt.Printf("  %-28s %-10s conf=%-3d %q\n", f.FieldName, f.ValidationStatus, f.ConfidenceScore, f.FieldValue)
	}

	reviewer := review.NewService(docs, fields, review.OwnerAuthorizer{}, pipeline.DefaultConfidenceThreshold, logger)
	highlights, err := reviewer.Highlights(ctx, doc.ID)
	if err != nil {
		fatal("highlights", err)
	}
	if len(highlights) > 0 {
		fmt.Printf("\n%d fields need review:\n", len(highlights))
		for _, f := range highlights {
			fmt.Printf("  %-28s %-10s conf=%d\n", f.FieldName, f.ValidationStatus, f.ConfidenceScore)
		}
	}
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
