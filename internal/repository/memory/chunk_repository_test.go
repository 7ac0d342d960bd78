package memory

import (
	"context"
	"testing"
	"time"

	"care-assistant-be/internal/entity"
	"care-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(doc string, seq int, embedding []float32) *entity.ReferenceChunk {
	return &entity.ReferenceChunk{
		Id:         uuid.New(),
		DocumentId: doc,
		Seq:        seq,
		Content:    "content",
		Embedding:  embedding,
		IngestedAt: time.Now(),
	}
}

func TestChunkRepositoryQueryOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(3)

	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", []*entity.ReferenceChunk{
		chunk("doc-a", 0, []float32{1, 0, 0}),
		chunk("doc-a", 1, []float32{0, 1, 0}),
		chunk("doc-a", 2, []float32{0.6, 0.8, 0}),
	}))

	hits, err := repo.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// Scores are non-increasing.
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
	assert.Equal(t, 0, hits[0].Chunk.Seq)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestChunkRepositoryTieBreakEarliestIngestion(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(2)

	// Two identical vectors ingested in order: the earlier one wins the tie.
	first := chunk("doc-a", 0, []float32{1, 0})
	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", []*entity.ReferenceChunk{first}))
	second := chunk("doc-b", 0, []float32{1, 0})
	require.NoError(t, repo.ReplaceDocument(ctx, "doc-b", []*entity.ReferenceChunk{second}))

	hits, err := repo.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-a", hits[0].Chunk.DocumentId)
	assert.Equal(t, "doc-b", hits[1].Chunk.DocumentId)
}

func TestChunkRepositoryReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(2)

	set := []*entity.ReferenceChunk{
		chunk("doc-a", 0, []float32{1, 0}),
		chunk("doc-a", 1, []float32{0, 1}),
	}
	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", set))
	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", set))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestChunkRepositoryReplaceSwapsContent(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(2)

	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", []*entity.ReferenceChunk{
		chunk("doc-a", 0, []float32{1, 0}),
		chunk("doc-a", 1, []float32{0, 1}),
		chunk("doc-a", 2, []float32{1, 0}),
	}))
	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", []*entity.ReferenceChunk{
		chunk("doc-a", 0, []float32{0, 1}),
	}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestChunkRepositoryDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(3)

	err := repo.ReplaceDocument(ctx, "doc-a", []*entity.ReferenceChunk{
		chunk("doc-a", 0, []float32{1, 0}),
	})
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)

	_, err = repo.Query(ctx, []float32{1, 0}, 5)
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)
}

func TestChunkRepositoryEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(2)

	hits, err := repo.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestChunkRepositoryDocuments(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(2)

	require.NoError(t, repo.ReplaceDocument(ctx, "zeta", []*entity.ReferenceChunk{chunk("zeta", 0, []float32{1, 0})}))
	require.NoError(t, repo.ReplaceDocument(ctx, "alpha", []*entity.ReferenceChunk{chunk("alpha", 0, []float32{0, 1})}))

	docs, err := repo.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, docs)

	require.NoError(t, repo.DeleteDocument(ctx, "zeta"))
	docs, err = repo.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, docs)
}

func TestChunkRepositoryLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepository(2)

	require.NoError(t, repo.ReplaceDocument(ctx, "doc-a", []*entity.ReferenceChunk{
		chunk("doc-a", 0, []float32{1, 0}),
		chunk("doc-a", 1, []float32{0.9, 0.1}),
		chunk("doc-a", 2, []float32{0, 1}),
	}))

	hits, err := repo.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}
