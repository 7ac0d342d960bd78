package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation the assistant's audit events embed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Audit event types emitted per conversation turn.
const (
	TypeTurnCompleted    = "TURN_COMPLETED"
	TypeHandoff          = "HANDLER_HANDOFF"
	TypeFallbackSearch   = "FALLBACK_SEARCH"
	TypeCorpusIngested   = "CORPUS_INGESTED"
	TypeIdentityResolved = "IDENTITY_RESOLVED"
)

func NewTurnCompleted(sessionId, handler, origin string) Event {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"handler":    handler,
			"origin":     origin,
		},
		OccurredAt: time.Now(),
	}
}

func NewHandoff(sessionId, from, to string) Event {
	return BaseEvent{
		Type: TypeHandoff,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"from":       from,
			"to":         to,
		},
		OccurredAt: time.Now(),
	}
}

func NewFallbackSearch(sessionId, query string, bestScore float64) Event {
	return BaseEvent{
		Type: TypeFallbackSearch,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"query":      query,
			"best_score": bestScore,
		},
		OccurredAt: time.Now(),
	}
}

func NewCorpusIngested(documentId string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeCorpusIngested,
		Data: map[string]interface{}{
			"document_id": documentId,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewIdentityResolved(sessionId, patientId string) Event {
	return BaseEvent{
		Type: TypeIdentityResolved,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"patient_id": patientId,
		},
		OccurredAt: time.Now(),
	}
}
