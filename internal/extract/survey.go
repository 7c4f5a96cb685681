package extract

import "strings"

// surveyStrategy emits one field per detected form key/value pair.
// Field names are lowercased with whitespace replaced by underscores.
type surveyStrategy struct{}

func (surveyStrategy) Extract(layout *Layout) []RawField {
	var fields []RawField
	for _, ff := range layout.FormFields {
		name := strings.ToLower(strings.TrimSpace(ff.Key))
		name = strings.Join(strings.Fields(name), "_")
		if name == "" {
			continue
		}
		fields = append(fields, RawField{
			Name:       name,
			Value:      strings.TrimSpace(ff.Value),
			Confidence: ff.Confidence,
			Position:   "form_field",
		})
	}
	return fields
}
