package state

import "care-assistant-be/pkg/store"

// Event is something that happened during a turn that may move the
// session between handlers.
type Event int

const (
	// EventIdentityResolved fires when the front desk matched exactly one
	// discharge record.
	EventIdentityResolved Event = iota
	// EventHandoff fires when an utterance was routed to the domain expert.
	EventHandoff
	// EventReset fires on an explicit reset phrase.
	EventReset
)

// Next returns the handler that owns the session after the event. The
// transitions are deliberately one-way: only a reset ever moves a session
// away from the domain expert.
func Next(current string, event Event) string {
	switch event {
	case EventReset:
		return store.HandlerUnidentified
	case EventIdentityResolved:
		if current == store.HandlerUnidentified {
			return store.HandlerFrontDesk
		}
		return current
	case EventHandoff:
		return store.HandlerDomainExpert
	}
	return current
}
