package analysis

import "errors"

// Classified failures surfaced by the engine. No engine error should ever
// propagate as a crash visible to the end user; handlers map these to
// configured reply messages.
var (
	// ErrInvalidInput marks a message that cannot be scored (empty or
	// whitespace-only text). The message is excluded from aggregates and
	// counted separately as skipped.
	ErrInvalidInput = errors.New("invalid input: message has no scorable text")

	// ErrClosedPeriod marks an ingest attempt against a day that has already
	// rolled over for that user. The write is rejected, never silently applied.
	ErrClosedPeriod = errors.New("closed period: day already finalized")

	// ErrPersistence wraps storage-collaborator failures. Retryable: the
	// in-memory aggregates are reconciled on the next successful persistence.
	ErrPersistence = errors.New("persistence failure")
)
