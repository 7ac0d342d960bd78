package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceChunk is one window of an ingested corpus document, embedded
// and ready for similarity search. Seq is the zero-based window index
// within the document; offsets are rune positions in the source text.
type ReferenceChunk struct {
	Id          uuid.UUID
	DocumentId  string
	Seq         int
	StartOffset int
	EndOffset   int
	Content     string
	Embedding   []float32
	IngestedAt  time.Time
}
