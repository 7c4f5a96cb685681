package ocr

import (
	"testing"
)

func TestBuildLayoutDetectsTable(t *testing.T) {
	text := "Attendance Register\n\n1 | Asha | P | A\n2 | Binod | P | P\n\nfooter"

	layout := buildLayout(text, 80)

	if len(layout.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(layout.Tables))
	}
	rows := layout.Tables[0].Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Asha" || rows[1][3] != "P" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestBuildLayoutSplitsOnTabsAndRuns(t *testing.T) {
	layout := buildLayout("Chalk\t12\nNotebooks   40", 75)

	if len(layout.Tables) != 1 || len(layout.Tables[0].Rows) != 2 {
		t.Fatalf("tables = %+v", layout.Tables)
	}
	if got := layout.Tables[0].Rows[1]; got[0] != "Notebooks" || got[1] != "40" {
		t.Fatalf("row = %v", got)
	}
}

func TestBuildLayoutFormFields(t *testing.T) {
	text := "Respondent Name: Asha\nnot a field line\nRating: 4"

	layout := buildLayout(text, 66)

	if len(layout.FormFields) != 2 {
		t.Fatalf("expected 2 form fields, got %d", len(layout.FormFields))
	}
	ff := layout.FormFields[0]
	if ff.Key != "Respondent Name" || ff.Value != "Asha" || ff.Confidence != 66 {
		t.Fatalf("form field = %+v", ff)
	}
}

func TestBuildLayoutDateEntities(t *testing.T) {
	text := "Diary for 12/05/2026\nAlso noted 2026-05-13 later"

	layout := buildLayout(text, 70)

	if len(layout.Entities) != 2 {
		t.Fatalf("expected 2 date entities, got %d: %+v", len(layout.Entities), layout.Entities)
	}
	if layout.Entities[0].Type != "date" || layout.Entities[0].Mention != "12/05/2026" {
		t.Fatalf("entity = %+v", layout.Entities[0])
	}
}

func TestBuildLayoutBlankLineClosesTable(t *testing.T) {
	text := "a | b\n\nc | d"

	layout := buildLayout(text, 50)

	if len(layout.Tables) != 2 {
		t.Fatalf("blank line must split tables, got %d", len(layout.Tables))
	}
}

func TestHeuristicConfidence(t *testing.T) {
	if got := heuristicConfidence(""); got != 0 {
		t.Fatalf("empty text = %d, want 0", got)
	}
	if got := heuristicConfidence("   \n  "); got != 0 {
		t.Fatalf("whitespace text = %d, want 0", got)
	}
	if got := heuristicConfidence("short"); got != 40 {
		t.Fatalf("plain short text = %d, want base 40", got)
	}
	long := "Report 12/05/2026\n" + string(make([]byte, 150))
	if got := heuristicConfidence(long); got != 85 {
		t.Fatalf("date+newline+length = %d, want 85", got)
	}
}
