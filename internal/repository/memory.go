package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/entity"
)

// MemoryStore is an in-process implementation of the repositories: an arena
// of documents keyed by id plus a sparse map from document id to its queue
// entry, with the one-entry-per-document invariant enforced at creation.
// Used by tests and single-shot CLI runs; the claim contract matches the
// SQL implementation.
type MemoryStore struct {
	state *memoryState
}

type memoryState struct {
	mu         sync.Mutex
	docs       map[uuid.UUID]*entity.Document
	entries    map[uuid.UUID]*entity.QueueEntry
	entryByDoc map[uuid.UUID]uuid.UUID
	fields     map[uuid.UUID]*entity.ExtractedField
	fieldOrder []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memoryState{
		docs:       make(map[uuid.UUID]*entity.Document),
		entries:    make(map[uuid.UUID]*entity.QueueEntry),
		entryByDoc: make(map[uuid.UUID]uuid.UUID),
		fields:     make(map[uuid.UUID]*entity.ExtractedField),
	}}
}

func (s *MemoryStore) Documents() DocumentRepository { return &memoryDocs{state: s.state} }
func (s *MemoryStore) Queue() QueueRepository        { return &memoryQueue{state: s.state} }
func (s *MemoryStore) Fields() FieldRepository       { return &memoryFields{state: s.state} }

type memoryDocs struct{ state *memoryState }

func (r *memoryDocs) Create(_ context.Context, doc *entity.Document) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, exists := r.state.docs[doc.ID]; exists {
		return fmt.Errorf("document %s already exists", doc.ID)
	}
	cp := *doc
	r.state.docs[doc.ID] = &cp
	return nil
}

func (r *memoryDocs) GetByID(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	doc, ok := r.state.docs[id]
	if !ok {
		return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("document %s", id))
	}
	cp := *doc
	return &cp, nil
}

func (r *memoryDocs) UpdateStatus(_ context.Context, id uuid.UUID, status constants.DocumentStatus) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	doc, ok := r.state.docs[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("document %s", id))
	}
	doc.Status = status
	doc.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryDocs) ListByStatus(_ context.Context, status constants.DocumentStatus) ([]*entity.Document, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var docs []*entity.Document
	for _, doc := range r.state.docs {
		if doc.Status == status {
			cp := *doc
			docs = append(docs, &cp)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.Before(docs[j].UploadedAt) })
	return docs, nil
}

func (r *memoryDocs) CountByStatus(_ context.Context) (map[constants.DocumentStatus]int, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	out := make(map[constants.DocumentStatus]int)
	for _, doc := range r.state.docs {
		out[doc.Status]++
	}
	return out, nil
}

type memoryQueue struct{ state *memoryState }

func (r *memoryQueue) Enqueue(_ context.Context, entry *entity.QueueEntry) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, exists := r.state.entryByDoc[entry.DocumentID]; exists {
		return fmt.Errorf("queue entry for document %s already exists", entry.DocumentID)
	}
	cp := *entry
	r.state.entries[entry.ID] = &cp
	r.state.entryByDoc[entry.DocumentID] = entry.ID
	return nil
}

func (r *memoryQueue) GetByDocumentID(_ context.Context, documentID uuid.UUID) (*entity.QueueEntry, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	entryID, ok := r.state.entryByDoc[documentID]
	if !ok {
		return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("queue entry for document %s", documentID))
	}
	cp := *r.state.entries[entryID]
	return &cp, nil
}

func (r *memoryQueue) Claim(_ context.Context, documentID uuid.UUID) (*entity.QueueEntry, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	entryID, ok := r.state.entryByDoc[documentID]
	if !ok {
		return nil, ErrNotClaimable
	}
	entry := r.state.entries[entryID]
	if entry.Status != constants.QueueQueued {
		return nil, ErrNotClaimable
	}
	entry.Status = constants.QueueProcessing
	entry.ProgressPercent = 0
	entry.ErrorLog = nil
	cp := *entry
	return &cp, nil
}

func (r *memoryQueue) SetProgress(_ context.Context, id uuid.UUID, percent int) error {
	if percent < 0 || percent > 100 {
		return common.WrapError(common.ErrInvalidArgument, fmt.Sprintf("progress %d", percent))
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	entry, ok := r.state.entries[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("queue entry %s", id))
	}
	if entry.Status == constants.QueueProcessing && percent >= entry.ProgressPercent {
		entry.ProgressPercent = percent
	}
	return nil
}

func (r *memoryQueue) Complete(_ context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	entry, ok := r.state.entries[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("queue entry %s", id))
	}
	if entry.Status != constants.QueueProcessing {
		return common.WrapError(common.ErrInvalidState, fmt.Sprintf("queue entry %s not processing", id))
	}
	now := time.Now().UTC()
	entry.Status = constants.QueueCompleted
	entry.ProgressPercent = 100
	entry.CompletedAt = &now
	return nil
}

func (r *memoryQueue) Fail(_ context.Context, id uuid.UUID, errorLog string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	entry, ok := r.state.entries[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("queue entry %s", id))
	}
	if entry.Status != constants.QueueProcessing {
		return common.WrapError(common.ErrInvalidState, fmt.Sprintf("queue entry %s not processing", id))
	}
	now := time.Now().UTC()
	entry.Status = constants.QueueFailed
	entry.ErrorLog = &errorLog
	entry.CompletedAt = &now
	return nil
}

func (r *memoryQueue) ListQueuedDocumentIDs(_ context.Context, limit int) ([]uuid.UUID, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var queued []*entity.QueueEntry
	for _, entry := range r.state.entries {
		if entry.Status == constants.QueueQueued {
			queued = append(queued, entry)
		}
	}
	sort.Slice(queued, func(i, j int) bool { return queued[i].QueuedAt.Before(queued[j].QueuedAt) })
	var ids []uuid.UUID
	for _, entry := range queued {
		if limit > 0 && len(ids) >= limit {
			break
		}
		ids = append(ids, entry.DocumentID)
	}
	return ids, nil
}

type memoryFields struct{ state *memoryState }

func (r *memoryFields) CreateBatch(_ context.Context, fields []*entity.ExtractedField) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, f := range fields {
		cp := *f
		r.state.fields[f.ID] = &cp
		r.state.fieldOrder = append(r.state.fieldOrder, f.ID)
	}
	return nil
}

func (r *memoryFields) GetByID(_ context.Context, id uuid.UUID) (*entity.ExtractedField, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	field, ok := r.state.fields[id]
	if !ok {
		return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("field %s", id))
	}
	cp := *field
	return &cp, nil
}

func (r *memoryFields) ListByDocument(_ context.Context, documentID uuid.UUID) ([]*entity.ExtractedField, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var fields []*entity.ExtractedField
	for _, id := range r.state.fieldOrder {
		f := r.state.fields[id]
		if f.DocumentID == documentID {
			cp := *f
			fields = append(fields, &cp)
		}
	}
	return fields, nil
}

func (r *memoryFields) UpdateValue(_ context.Context, id uuid.UUID, value string, status constants.ValidationStatus) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	field, ok := r.state.fields[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, fmt.Sprintf("field %s", id))
	}
	field.FieldValue = value
	field.ValidationStatus = status
	field.UpdatedAt = time.Now().UTC()
	return nil
}
