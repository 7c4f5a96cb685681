package constants

import (
	"strings"
)

type Category string

const (
	AttendanceSheet  Category = "attendance_sheet"
	StudentMarksheet Category = "student_marksheet"
	ClassDiary       Category = "class_diary"
	StoreRequisition Category = "store_requisition"
	StoreInvoice     Category = "store_invoice"
	SurveyForm       Category = "survey_form"
	VisitorsBook     Category = "visitors_book"
)

var allCategories = []Category{
	AttendanceSheet,
	StudentMarksheet,
	ClassDiary,
	StoreRequisition,
	StoreInvoice,
	SurveyForm,
	VisitorsBook,
}

func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form category labels to a known Category.
// Returns false when the input does not match any known category;
// callers fall back to generic extraction in that case.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"attendance":       AttendanceSheet,
		"attendance sheet": AttendanceSheet,
		"marksheet":        StudentMarksheet,
		"grades":           StudentMarksheet,
		"grade sheet":      StudentMarksheet,
		"diary":            ClassDiary,
		"requisition":      StoreRequisition,
		"invoice":          StoreInvoice,
		"survey":           SurveyForm,
		"visitors":         VisitorsBook,
		"visitors book":    VisitorsBook,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return Category(normalized), false
}
