package schema

import (
	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/entity"
)

// defaultSchemas holds the built-in category definitions. Deployments may
// replace them via Register; the registry keys off category identifiers only.
func defaultSchemas() []*entity.CategorySchema {
	return []*entity.CategorySchema{
		{
			Category: constants.AttendanceSheet,
			Rules: map[string]string{
				`^student_\d+_day_\d+$`: `{"type":"string","enum":["P","A","O","E",""]}`,
			},
		},
		{
			Category: constants.StudentMarksheet,
			Rules: map[string]string{
				`^student_\d+_(math|science|english|history|geography)$`: `{"type":"string","pattern":"^[0-9]{0,3}$"}`,
			},
		},
		{
			Category:       constants.ClassDiary,
			RequiredFields: []string{"date", "activities"},
		},
		{
			Category:       constants.StoreRequisition,
			RequiredFields: []string{"date"},
			Rules: map[string]string{
				`^item_\d+_quantity$`: `{"type":"string","pattern":"^[0-9]+$"}`,
			},
		},
		{
			Category:       constants.StoreInvoice,
			RequiredFields: []string{"date"},
			Rules: map[string]string{
				`^item_\d+_quantity$`: `{"type":"string","pattern":"^[0-9]+$"}`,
			},
		},
		{
			Category: constants.SurveyForm,
		},
		{
			Category: constants.VisitorsBook,
		},
	}
}
