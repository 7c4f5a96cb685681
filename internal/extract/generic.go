package extract

import "fmt"

// Confidence for text emitted without per-field measurement. Whole-document
// text is a conservative default, not a scored extraction.
const fullTextConfidence = 85

// diaryStrategy handles class diaries: date entities plus the whole
// document text as a single "activities" field.
type diaryStrategy struct{}

func (diaryStrategy) Extract(layout *Layout) []RawField {
	fields := dateEntityFields(layout)
	if layout.Text != "" {
		fields = append(fields, RawField{
			Name:       "activities",
			Value:      layout.Text,
			Confidence: fullTextConfidence,
			Position:   "full_text",
		})
	}
	return fields
}

// genericStrategy is the fallback for unknown document types:
// whole-document text as one field plus one field per detected table.
type genericStrategy struct{}

func (genericStrategy) Extract(layout *Layout) []RawField {
	var fields []RawField
	if layout.Text != "" {
		fields = append(fields, RawField{
			Name:       "full_text",
			Value:      layout.Text,
			Confidence: fullTextConfidence,
			Position:   "document",
		})
	}
	for i, table := range layout.Tables {
		fields = append(fields, RawField{
			Name:       fmt.Sprintf("table_%d_data", i),
			Value:      flattenTable(table),
			Confidence: 90,
			Position:   fmt.Sprintf("table_%d", i),
		})
	}
	return fields
}

func flattenTable(t Table) string {
	out := ""
	for _, row := range append(t.Headers, t.Rows...) {
		for i, cell := range row {
			if i > 0 {
				out += "\t"
			}
			out += cell
		}
		out += "\n"
	}
	return out
}
