package extract

import "fmt"

// marksheetStrategy parses the first table as a marksheet: one student per
// row, with a fixed ordered subject list mapped to the columns following the
// name column.
type marksheetStrategy struct{}

var marksheetSubjects = []string{"math", "science", "english", "history", "geography"}

func (marksheetStrategy) Extract(layout *Layout) []RawField {
	var fields []RawField
	table, ok := firstTable(layout)
	if !ok {
		return fields
	}

	studentIdx := 0
	for _, row := range table.Rows {
		if len(row) < 2 {
			continue
		}
		studentIdx++

		name := row[0]
		markStart := 1
		if isSerial(row[0]) {
			name = row[1]
			markStart = 2
		}

		fields = append(fields, RawField{
			Name:       fmt.Sprintf("student_%d_name", studentIdx),
			Value:      name,
			Confidence: 95,
			Position:   fmt.Sprintf("row_%d_col_1", studentIdx),
		})

		for subjIdx, subject := range marksheetSubjects {
			col := markStart + subjIdx
			if col >= len(row) {
				break
			}
			fields = append(fields, RawField{
				Name:       fmt.Sprintf("student_%d_%s", studentIdx, subject),
				Value:      row[col],
				Confidence: 92,
				Position:   fmt.Sprintf("row_%d_col_%d", studentIdx, col),
			})
		}
	}
	return fields
}
