package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation links an assistant message to the source material that
// grounded it, either a corpus document or an external search result.
type ChatCitation struct {
	Id            uuid.UUID
	ChatMessageId uuid.UUID
	Source        string
	Locator       string
	CreatedAt     time.Time
}
