package extract

import (
	"fmt"
	"strings"
)

// attendanceStrategy parses the first table as an attendance register:
// one student per row, day columns after the name (and optional serial)
// column. Day cells normalize to P/A/O/E or empty when unrecognized.
type attendanceStrategy struct{}

const maxAttendanceDays = 31

func (attendanceStrategy) Extract(layout *Layout) []RawField {
	var fields []RawField
	table, ok := firstTable(layout)
	if !ok {
		return fields
	}

	studentIdx := 0
	for _, row := range table.Rows {
		// Rows shorter than serial+name are skipped entirely, never padded.
		if len(row) < 2 {
			continue
		}
		studentIdx++

		name := row[0]
		sno := fmt.Sprintf("%d", studentIdx)
		dayStart := 1
		if isSerial(row[0]) {
			name = row[1]
			sno = row[0]
			dayStart = 2
		}

		fields = append(fields,
			RawField{
				Name:       fmt.Sprintf("student_%d_name", studentIdx),
				Value:      name,
				Confidence: 95,
				Position:   fmt.Sprintf("row_%d_col_1", studentIdx),
			},
			RawField{
				Name:       fmt.Sprintf("student_%d_sno", studentIdx),
				Value:      sno,
				Confidence: 95,
				Position:   fmt.Sprintf("row_%d_col_0", studentIdx),
			},
		)

		for day := 1; day <= maxAttendanceDays; day++ {
			col := dayStart + day - 1
			if col >= len(row) {
				break
			}
			fields = append(fields, RawField{
				Name:       fmt.Sprintf("student_%d_day_%d", studentIdx, day),
				Value:      normalizeAttendanceMark(row[col]),
				Confidence: 90,
				Position:   fmt.Sprintf("row_%d_col_%d", studentIdx, col),
			})
		}
	}
	return fields
}

// normalizeAttendanceMark maps a raw day cell to one of P/A/O/E,
// or "" when the mark is unrecognized.
func normalizeAttendanceMark(cell string) string {
	v := strings.ToUpper(strings.TrimSpace(cell))
	if v == "" {
		return ""
	}
	switch v[0] {
	case 'P', 'A', 'O', 'E':
		return string(v[0])
	default:
		return ""
	}
}
