package store

import "errors"

// Domain failure taxonomy. All of these are recovered into a user-facing
// degraded answer inside a turn; only dimension mismatches at ingestion are
// allowed to halt anything.
var (
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrIdentityAmbiguous = errors.New("multiple matching identities")
	ErrRetrievalEmpty    = errors.New("reference corpus is empty")
	ErrExternalService   = errors.New("external service failure")
	ErrInvalidUtterance  = errors.New("empty utterance")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrSessionNotFound   = errors.New("session not found")
)
