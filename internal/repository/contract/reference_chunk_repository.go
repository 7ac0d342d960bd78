package contract

import (
	"context"

	"care-assistant-be/internal/entity"
)

// ScoredChunk wraps ReferenceChunk with its similarity score.
type ScoredChunk struct {
	Chunk      *entity.ReferenceChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

// ReferenceChunkRepository stores embedded corpus chunks and answers
// nearest-neighbour queries over them.
type ReferenceChunkRepository interface {
	// ReplaceDocument atomically swaps every chunk of the document for the
	// given set. Re-ingesting identical content leaves the store unchanged
	// in size; edited content replaces stale chunks.
	ReplaceDocument(ctx context.Context, documentId string, chunks []*entity.ReferenceChunk) error
	DeleteDocument(ctx context.Context, documentId string) error
	// Query returns up to limit chunks ordered by descending similarity.
	// Ties break toward the chunk ingested earliest.
	Query(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)
	Count(ctx context.Context) (int64, error)
	Documents(ctx context.Context) ([]string, error)
}
