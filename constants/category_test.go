package constants

import "testing"

func TestCanonicalizeExactNames(t *testing.T) {
	for _, cat := range AllCategories() {
		got, ok := Canonicalize(string(cat))
		if !ok || got != cat {
			t.Errorf("Canonicalize(%q) = (%q, %v), want identity", cat, got, ok)
		}
	}
}

func TestCanonicalizeSynonyms(t *testing.T) {
	cases := map[string]Category{
		"attendance":       AttendanceSheet,
		"Attendance Sheet": AttendanceSheet,
		"  grades  ":       StudentMarksheet,
		"DIARY":            ClassDiary,
		"invoice":          StoreInvoice,
		"visitors book":    VisitorsBook,
	}
	for in, want := range cases {
		got, ok := Canonicalize(in)
		if !ok || got != want {
			t.Errorf("Canonicalize(%q) = (%q, %v), want %q", in, got, ok, want)
		}
	}
}

func TestCanonicalizeUnknown(t *testing.T) {
	if _, ok := Canonicalize("memo"); ok {
		t.Fatalf("unknown label must not canonicalize")
	}
	if _, ok := Canonicalize(""); ok {
		t.Fatalf("empty label must not canonicalize")
	}
}

func TestNormalizeExt(t *testing.T) {
	cases := map[string]string{
		".PDF":  "pdf",
		".jpeg": "jpg",
		"JPEG":  "jpg",
		".png":  "png",
	}
	for in, want := range cases {
		if got := NormalizeExt(in); got != want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapExtToFormat(t *testing.T) {
	if MapExtToFormat("pdf") != PDF {
		t.Fatalf("pdf must map to PDF")
	}
	if MapExtToFormat("png") != IMAGE {
		t.Fatalf("png must map to IMAGE")
	}
	if MapExtToFormat("zip") != "" {
		t.Fatalf("unsupported extensions map to empty")
	}
}

func TestDocumentStatusTerminal(t *testing.T) {
	if !DocApproved.Terminal() || !DocError.Terminal() {
		t.Fatalf("approved and error are terminal")
	}
	if DocUploaded.Terminal() || DocReviewPending.Terminal() || DocProcessing.Terminal() {
		t.Fatalf("non-terminal statuses must not report terminal")
	}
}
