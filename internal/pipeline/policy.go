package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/entity"
	"github.com/upay-labs/docuflow/internal/extract"
	"github.com/upay-labs/docuflow/internal/schema"
)

// DefaultConfidenceThreshold is the fixed confidence policy: fields scoring
// below it are marked invalid. Deployments may override the threshold but
// the default is part of the pipeline contract.
const DefaultConfidenceThreshold = 70

// Policy turns raw extraction output into validated ExtractedFields and
// synthesizes missing required fields, so downstream review always sees a
// complete required-field set. Applied uniformly after extraction,
// independent of category.
type Policy struct {
	threshold int
	schemas   *schema.Registry
	logger    *slog.Logger
}

func NewPolicy(schemas *schema.Registry, threshold int, logger *slog.Logger) *Policy {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{threshold: threshold, schemas: schemas, logger: logger}
}

func (p *Policy) Threshold() int { return p.threshold }

// Apply scores and validates every raw field, then synthesizes required
// fields that extraction did not produce (empty value, confidence 0,
// status missing).
func (p *Policy) Apply(documentID uuid.UUID, cat constants.Category, raw []extract.RawField, now time.Time) []*entity.ExtractedField {
	def, _ := p.schemas.Lookup(cat)

	fields := make([]*entity.ExtractedField, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, rf := range raw {
		conf := clampConfidence(rf.Confidence)

		status := constants.ValidationPassed
		if conf < p.threshold {
			status = constants.ValidationInvalid
		} else if err := def.Validate(rf.Name, rf.Value); err != nil {
			p.logger.Debug("field failed validation rule", "document_id", documentID, "field", rf.Name, "error", err)
			status = constants.ValidationInvalid
		}

		seen[rf.Name] = struct{}{}
		fields = append(fields, &entity.ExtractedField{
			ID:               uuid.New(),
			DocumentID:       documentID,
			FieldName:        rf.Name,
			FieldValue:       rf.Value,
			ConfidenceScore:  conf,
			FieldPosition:    rf.Position,
			ValidationStatus: status,
			UpdatedAt:        now,
		})
	}

	for _, required := range p.schemas.RequiredFields(cat) {
		if _, ok := seen[required]; ok {
			continue
		}
		fields = append(fields, &entity.ExtractedField{
			ID:               uuid.New(),
			DocumentID:       documentID,
			FieldName:        required,
			FieldValue:       "",
			ConfidenceScore:  0,
			FieldPosition:    "",
			ValidationStatus: constants.ValidationMissing,
			UpdatedAt:        now,
		})
	}

	return fields
}

func clampConfidence(conf int) int {
	if conf < 0 {
		return 0
	}
	if conf > 100 {
		return 100
	}
	return conf
}
