package extract

import (
	"log/slog"

	"github.com/upay-labs/docuflow/constants"
)

// Strategy encodes one category's parsing convention over a document layout.
type Strategy interface {
	Extract(layout *Layout) []RawField
}

// Registry maps a category identifier to its extraction strategy, with a
// generic fallback for unrecognized categories. Adding a category means
// registering a strategy here; the orchestrator never branches on categories.
type Registry struct {
	strategies map[constants.Category]Strategy
	generic    Strategy
	logger     *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		strategies: make(map[constants.Category]Strategy),
		generic:    genericStrategy{},
		logger:     logger,
	}
	r.Register(constants.AttendanceSheet, attendanceStrategy{})
	r.Register(constants.StudentMarksheet, marksheetStrategy{})
	r.Register(constants.ClassDiary, diaryStrategy{})
	r.Register(constants.StoreRequisition, requisitionStrategy{})
	r.Register(constants.StoreInvoice, requisitionStrategy{})
	r.Register(constants.SurveyForm, surveyStrategy{})
	r.Register(constants.VisitorsBook, visitorsStrategy{})
	return r
}

func (r *Registry) Register(cat constants.Category, s Strategy) {
	r.strategies[cat] = s
}

// Lookup returns the strategy for cat, falling back to the generic strategy
// for unrecognized categories. The fallback is logged, never surfaced as a
// document error.
func (r *Registry) Lookup(cat constants.Category) Strategy {
	if s, ok := r.strategies[cat]; ok {
		return s
	}
	r.logger.Warn("unrecognized category, using generic extraction", "category", string(cat))
	return r.generic
}

// isSerial reports whether a leading cell is a serial number. A serial cell
// shifts the data-column offset by one.
func isSerial(cell string) bool {
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// firstTable returns the first detected table, or false when none exists.
func firstTable(layout *Layout) (Table, bool) {
	if len(layout.Tables) == 0 {
		return Table{}, false
	}
	return layout.Tables[0], true
}

func dateEntityFields(layout *Layout) []RawField {
	var fields []RawField
	for _, ent := range layout.Entities {
		if ent.Type == "date" {
			fields = append(fields, RawField{
				Name:       "date",
				Value:      ent.Mention,
				Confidence: ent.Confidence,
				Position:   "extracted",
			})
		}
	}
	return fields
}
