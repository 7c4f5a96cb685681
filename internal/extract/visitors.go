package extract

import "fmt"

// visitorsStrategy parses the first table as a visitors book: one
// (name, contact, purpose) triplet per row. Rows with fewer than three
// cells are skipped.
type visitorsStrategy struct{}

func (visitorsStrategy) Extract(layout *Layout) []RawField {
	var fields []RawField
	table, ok := firstTable(layout)
	if !ok {
		return fields
	}

	visitorIdx := 0
	for _, row := range table.Rows {
		if len(row) < 3 {
			continue
		}
		visitorIdx++
		fields = append(fields,
			RawField{
				Name:       fmt.Sprintf("visitor_%d_name", visitorIdx),
				Value:      row[0],
				Confidence: 93,
				Position:   fmt.Sprintf("row_%d_col_1", visitorIdx),
			},
			RawField{
				Name:       fmt.Sprintf("visitor_%d_contact", visitorIdx),
				Value:      row[1],
				Confidence: 90,
				Position:   fmt.Sprintf("row_%d_col_2", visitorIdx),
			},
			RawField{
				Name:       fmt.Sprintf("visitor_%d_purpose", visitorIdx),
				Value:      row[2],
				Confidence: 88,
				Position:   fmt.Sprintf("row_%d_col_3", visitorIdx),
			},
		)
	}
	return fields
}
