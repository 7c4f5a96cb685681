package extract

import "fmt"

// requisitionStrategy parses store requisitions and invoices: an
// entity-extracted date plus one (name, quantity) pair per table row.
// Invoices share the requisition layout.
type requisitionStrategy struct{}

func (requisitionStrategy) Extract(layout *Layout) []RawField {
	fields := dateEntityFields(layout)

	table, ok := firstTable(layout)
	if !ok {
		return fields
	}

	itemIdx := 0
	for _, row := range table.Rows {
		if len(row) < 2 {
			continue
		}
		itemIdx++
		fields = append(fields,
			RawField{
				Name:       fmt.Sprintf("item_%d_name", itemIdx),
				Value:      row[0],
				Confidence: 92,
				Position:   fmt.Sprintf("row_%d_col_1", itemIdx),
			},
			RawField{
				Name:       fmt.Sprintf("item_%d_quantity", itemIdx),
				Value:      row[1],
				Confidence: 90,
				Position:   fmt.Sprintf("row_%d_col_2", itemIdx),
			},
		)
	}
	return fields
}
