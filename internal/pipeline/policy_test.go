package pipeline

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/entity"
	"github.com/upay-labs/docuflow/internal/extract"
	"github.com/upay-labs/docuflow/internal/schema"
)

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()
	schemas, err := schema.NewRegistry(nil)
	if err != nil {
		t.Fatalf("schema.NewRegistry() error = %v", err)
	}
	return NewPolicy(schemas, DefaultConfidenceThreshold, nil)
}

func byName(fields []*entity.ExtractedField, name string) *entity.ExtractedField {
	for _, f := range fields {
		if f.FieldName == name {
			return f
		}
	}
	return nil
}

func TestApplyThresholdBoundary(t *testing.T) {
	p := newTestPolicy(t)
	docID := uuid.New()
	now := time.Now().UTC()

	fields := p.Apply(docID, constants.VisitorsBook, []extract.RawField{
		{Name: "visitor_1_name", Value: "R. Kumar", Confidence: 70},
		{Name: "visitor_2_name", Value: "S. Devi", Confidence: 69},
	}, now)

	at := byName(fields, "visitor_1_name")
	if at == nil || at.ValidationStatus != constants.ValidationPassed {
		t.Fatalf("confidence exactly at the threshold must pass, got %+v", at)
	}
	below := byName(fields, "visitor_2_name")
	if below == nil || below.ValidationStatus != constants.ValidationInvalid {
		t.Fatalf("confidence below the threshold must be invalid, got %+v", below)
	}
}

func TestApplyRuleDemotesHighConfidenceField(t *testing.T) {
	p := newTestPolicy(t)

	fields := p.Apply(uuid.New(), constants.AttendanceSheet, []extract.RawField{
		{Name: "student_1_day_1", Value: "X", Confidence: 95},
		{Name: "student_1_day_2", Value: "P", Confidence: 95},
	}, time.Now().UTC())

	bad := byName(fields, "student_1_day_1")
	if bad.ValidationStatus != constants.ValidationInvalid {
		t.Fatalf("rule violation must demote to invalid, got %s", bad.ValidationStatus)
	}
	good := byName(fields, "student_1_day_2")
	if good.ValidationStatus != constants.ValidationPassed {
		t.Fatalf("valid mark must pass, got %s", good.ValidationStatus)
	}
}

func TestApplySynthesizesMissingRequiredFields(t *testing.T) {
	p := newTestPolicy(t)
	docID := uuid.New()

	fields := p.Apply(docID, constants.ClassDiary, []extract.RawField{
		{Name: "activities", Value: "assembly", Confidence: 85},
	}, time.Now().UTC())

	date := byName(fields, "date")
	if date == nil {
		t.Fatalf("missing required field must be synthesized")
	}
	if date.ValidationStatus != constants.ValidationMissing {
		t.Fatalf("synthesized status = %s, want missing", date.ValidationStatus)
	}
	if date.ConfidenceScore != 0 || date.FieldValue != "" {
		t.Fatalf("synthesized field must be empty with confidence 0, got %+v", date)
	}
	if date.DocumentID != docID {
		t.Fatalf("synthesized field bound to wrong document")
	}
}

func TestApplyDoesNotSynthesizePresentFields(t *testing.T) {
	p := newTestPolicy(t)

	fields := p.Apply(uuid.New(), constants.ClassDiary, []extract.RawField{
		{Name: "date", Value: "2026-02-01", Confidence: 75},
		{Name: "activities", Value: "assembly", Confidence: 85},
	}, time.Now().UTC())

	if len(fields) != 2 {
		t.Fatalf("no synthesis expected when required fields are present, got %d fields", len(fields))
	}
}

func TestApplyClampsConfidence(t *testing.T) {
	p := newTestPolicy(t)

	fields := p.Apply(uuid.New(), constants.SurveyForm, []extract.RawField{
		{Name: "a", Value: "v", Confidence: 180},
		{Name: "b", Value: "v", Confidence: -5},
	}, time.Now().UTC())

	if f := byName(fields, "a"); f.ConfidenceScore != 100 {
		t.Fatalf("confidence should clamp to 100, got %d", f.ConfidenceScore)
	}
	if f := byName(fields, "b"); f.ConfidenceScore != 0 || f.ValidationStatus != constants.ValidationInvalid {
		t.Fatalf("negative confidence should clamp to 0 and fail, got %+v", f)
	}
}

func TestApplyUnknownCategoryHasNoRequirements(t *testing.T) {
	p := newTestPolicy(t)

	fields := p.Apply(uuid.New(), constants.Category("memo"), []extract.RawField{
		{Name: "full_text", Value: "whatever", Confidence: 85},
	}, time.Now().UTC())

	if len(fields) != 1 {
		t.Fatalf("unknown categories synthesize nothing, got %d fields", len(fields))
	}
	if fields[0].ValidationStatus != constants.ValidationPassed {
		t.Fatalf("no rules apply to unknown categories, got %s", fields[0].ValidationStatus)
	}
}
