package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/repository/contract"
	"care-assistant-be/pkg/store"
)

type storedChunk struct {
	chunk *entity.ReferenceChunk
	order int64 // global insertion sequence, for stable tie-breaking
}

// ChunkRepository is the default in-process chunk store: a brute-force
// scan over normalized vectors. Linear search is exact and fast enough
// for a reference corpus of a few thousand chunks.
type ChunkRepository struct {
	mu        sync.RWMutex
	dimension int
	docs      map[string][]*storedChunk
	seq       int64
}

func NewChunkRepository(dimension int) *ChunkRepository {
	return &ChunkRepository{
		dimension: dimension,
		docs:      make(map[string][]*storedChunk),
	}
}

func (r *ChunkRepository) ReplaceDocument(ctx context.Context, documentId string, chunks []*entity.ReferenceChunk) error {
	for _, c := range chunks {
		if len(c.Embedding) != r.dimension {
			return fmt.Errorf("chunk %d of %q has dimension %d, store expects %d: %w",
				c.Seq, documentId, len(c.Embedding), r.dimension, store.ErrDimensionMismatch)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]*storedChunk, len(chunks))
	for i, c := range chunks {
		r.seq++
		stored[i] = &storedChunk{chunk: c, order: r.seq}
	}
	r.docs[documentId] = stored
	return nil
}

func (r *ChunkRepository) DeleteDocument(ctx context.Context, documentId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, documentId)
	return nil
}

func (r *ChunkRepository) Query(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	if len(embedding) != r.dimension {
		return nil, fmt.Errorf("query vector has dimension %d, store expects %d: %w",
			len(embedding), r.dimension, store.ErrDimensionMismatch)
	}
	if limit <= 0 {
		limit = 5
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type hit struct {
		chunk      *entity.ReferenceChunk
		similarity float64
		order      int64
	}

	var hits []hit
	for _, doc := range r.docs {
		for _, sc := range doc {
			hits = append(hits, hit{
				chunk:      sc.chunk,
				similarity: dot(embedding, sc.chunk.Embedding),
				order:      sc.order,
			})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].similarity != hits[j].similarity {
			return hits[i].similarity > hits[j].similarity
		}
		return hits[i].order < hits[j].order
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]*contract.ScoredChunk, len(hits))
	for i, h := range hits {
		out[i] = &contract.ScoredChunk{Chunk: h.chunk, Similarity: h.similarity}
	}
	return out, nil
}

func (r *ChunkRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, doc := range r.docs {
		n += int64(len(doc))
	}
	return n, nil
}

func (r *ChunkRepository) Documents(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Stored vectors and queries are unit-length, so the dot product is the
// cosine similarity.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

var _ contract.ReferenceChunkRepository = (*ChunkRepository)(nil)
