package ocr

import (
	"regexp"
	"strings"

	"github.com/upay-labs/docuflow/internal/extract"
)

var (
	reCell = regexp.MustCompile(`\t+|\s{2,}|\s*\|\s*`)
	reDate = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`)
	reKV   = regexp.MustCompile(`^([^:]{1,60}):\s*(.*)$`)
)

// buildLayout segments recognized text into tables, form key/value pairs,
// and date entities. Consecutive lines that split into two or more cells
// form one table; "key: value" lines become form fields.
func buildLayout(text string, confidence int) *extract.Layout {
	layout := &extract.Layout{Text: strings.TrimSpace(text)}

	var rows [][]string
	flush := func() {
		if len(rows) > 0 {
			layout.Tables = append(layout.Tables, extract.Table{Rows: rows})
			rows = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		cells := splitCells(line)
		if len(cells) >= 2 {
			rows = append(rows, cells)
			continue
		}
		flush()

		if m := reKV.FindStringSubmatch(line); m != nil {
			layout.FormFields = append(layout.FormFields, extract.FormField{
				Key:        strings.TrimSpace(m[1]),
				Value:      strings.TrimSpace(m[2]),
				Confidence: confidence,
			})
		}
	}
	flush()

	for _, mention := range reDate.FindAllString(text, -1) {
		layout.Entities = append(layout.Entities, extract.Entity{
			Type:       "date",
			Mention:    mention,
			Confidence: confidence,
		})
	}

	return layout
}

func splitCells(line string) []string {
	parts := reCell.Split(line, -1)
	cells := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// naive heuristic confidence based on decoded text characteristics,
// used where the engine provides no measured score.
func heuristicConfidence(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	score := 40 // base
	if reDate.MatchString(text) {
		score += 15
	}
	if strings.Contains(text, "\n") {
		score += 15
	}
	if len(text) > 120 {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	return score
}
