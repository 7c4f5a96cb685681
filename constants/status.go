package constants

// DocumentStatus is the canonical lifecycle status of a Document.
type DocumentStatus string

// Stable values (store these exact strings in DB).
const (
	DocUploaded      DocumentStatus = "uploaded"       // created, waiting for pickup
	DocProcessing    DocumentStatus = "processing"     // reserved for collaborators; the pipeline itself keys off the queue entry
	DocReviewPending DocumentStatus = "review_pending" // extraction done, awaiting human review
	DocApproved      DocumentStatus = "approved"       // terminal
	DocError         DocumentStatus = "error"          // terminal
)

// AllDocumentStatuses lists every lifecycle status, in pipeline order.
var AllDocumentStatuses = []DocumentStatus{
	DocUploaded,
	DocProcessing,
	DocReviewPending,
	DocApproved,
	DocError,
}

// Terminal reports whether a document may no longer change state.
func (s DocumentStatus) Terminal() bool {
	return s == DocApproved || s == DocError
}

// QueueStatus is the canonical status for processing queue entries.
type QueueStatus string

const (
	QueueQueued     QueueStatus = "queued"
	QueueProcessing QueueStatus = "processing"
	QueueCompleted  QueueStatus = "completed"
	QueueFailed     QueueStatus = "failed"
)

// ValidationStatus classifies an extracted field after the confidence policy ran.
type ValidationStatus string

const (
	ValidationPending          ValidationStatus = "pending"
	ValidationPassed           ValidationStatus = "passed"
	ValidationInvalid          ValidationStatus = "invalid"
	ValidationMissing          ValidationStatus = "missing"
	ValidationManuallyVerified ValidationStatus = "manually_verified"
)
