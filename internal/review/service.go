package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/entity"
	"github.com/upay-labs/docuflow/internal/pipeline"
	"github.com/upay-labs/docuflow/internal/repository"
)

// Finalize decisions accepted by the gate.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Authorizer is the check point for field mutations. The actual identity
// and role model lives with the auth collaborator; the gate only asks
// whether this actor may modify this document.
type Authorizer interface {
	CanModify(ctx context.Context, actorID uuid.UUID, doc *entity.Document) bool
}

// OwnerAuthorizer permits the uploading actor and a fixed set of admins.
type OwnerAuthorizer struct {
	Admins map[uuid.UUID]struct{}
}

func (a OwnerAuthorizer) CanModify(_ context.Context, actorID uuid.UUID, doc *entity.Document) bool {
	if actorID == doc.UploaderID {
		return true
	}
	_, ok := a.Admins[actorID]
	return ok
}

// Service surfaces low-confidence fields for human correction and applies
// the terminal approve/reject decision.
type Service struct {
	docs      repository.DocumentRepository
	fields    repository.FieldRepository
	auth      Authorizer
	threshold int
	logger    *slog.Logger
}

func NewService(
	docs repository.DocumentRepository,
	fields repository.FieldRepository,
	auth Authorizer,
	threshold int,
	logger *slog.Logger,
) *Service {
	if threshold <= 0 {
		threshold = pipeline.DefaultConfidenceThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, fields: fields, auth: auth, threshold: threshold, logger: logger}
}

// Highlights returns the fields of a document that need human attention:
// confidence below the threshold, or validation status invalid/missing.
// Read-only; calling it twice without an intervening update returns
// identical results.
func (s *Service) Highlights(ctx context.Context, documentID uuid.UUID) ([]*entity.ExtractedField, error) {
	if _, err := s.docs.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	fields, err := s.fields.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	highlights := make([]*entity.ExtractedField, 0)
	for _, f := range fields {
		if f.ConfidenceScore < s.threshold ||
			f.ValidationStatus == constants.ValidationInvalid ||
			f.ValidationStatus == constants.ValidationMissing {
			highlights = append(highlights, f)
		}
	}
	return highlights, nil
}

// UpdateField overwrites a field's value with a human correction and forces
// validation_status=manually_verified. Fields become immutable once the
// document is terminal.
func (s *Service) UpdateField(ctx context.Context, actorID, documentID, fieldID uuid.UUID, value string) (*entity.ExtractedField, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status.Terminal() {
		return nil, common.WrapError(common.ErrInvalidState, fmt.Sprintf("document %s is %s", documentID, doc.Status))
	}
	if !s.auth.CanModify(ctx, actorID, doc) {
		return nil, common.WrapError(common.ErrPermissionDenied, fmt.Sprintf("actor %s on document %s", actorID, documentID))
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if field.DocumentID != documentID {
		return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("field %s on document %s", fieldID, documentID))
	}

	if err := s.fields.UpdateValue(ctx, fieldID, value, constants.ValidationManuallyVerified); err != nil {
		return nil, err
	}
	s.logger.Info("field manually verified", "document_id", documentID, "field_id", fieldID, "actor_id", actorID)
	return s.fields.GetByID(ctx, fieldID)
}

// Finalize applies the terminal human decision: approved or rejected.
// Re-finalizing a terminal document is rejected with an invalid-state
// error; its fields stay untouched.
func (s *Service) Finalize(ctx context.Context, actorID, documentID uuid.UUID, decision string) (*entity.Document, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, common.WrapError(common.ErrInvalidArgument, fmt.Sprintf("decision %q", decision))
	}

	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != constants.DocReviewPending {
		return nil, common.WrapError(common.ErrInvalidState, fmt.Sprintf("document %s is %s", documentID, doc.Status))
	}
	if !s.auth.CanModify(ctx, actorID, doc) {
		return nil, common.WrapError(common.ErrPermissionDenied, fmt.Sprintf("actor %s on document %s", actorID, documentID))
	}

	status := constants.DocApproved
	if decision == DecisionRejected {
		status = constants.DocError
	}
	if err := s.docs.UpdateStatus(ctx, documentID, status); err != nil {
		return nil, err
	}
	s.logger.Info("document finalized", "document_id", documentID, "decision", decision, "actor_id", actorID)
	return s.docs.GetByID(ctx, documentID)
}
