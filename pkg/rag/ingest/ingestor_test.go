package ingest

import (
	"context"
	"strings"
	"testing"

	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/memory"
	"care-assistant-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngestor(t *testing.T, chunkSize, overlap int) (*Ingestor, *memory.ChunkRepository) {
	t.Helper()
	embedder := embedding.NewHashingProvider(384)
	repo := memory.NewChunkRepository(embedder.Dimension())
	return NewIngestor(embedder, repo, logger.NewNoop(), chunkSize, overlap), repo
}

func TestIngestDocumentChunksAndOffsets(t *testing.T) {
	ctx := context.Background()
	ingestor, repo := newTestIngestor(t, 100, 20)

	text := strings.Repeat("kidney care guidance ", 20) // 420 runes
	n, err := ingestor.IngestDocument(ctx, "guide", text)
	require.NoError(t, err)
	assert.Greater(t, n, 1)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)

	hits, err := repo.Query(ctx, mustEmbed(t, "kidney care guidance"), n)
	require.NoError(t, err)
	for _, h := range hits {
		c := h.Chunk
		assert.Equal(t, "guide", c.DocumentId)
		// Offsets line up with the window layout.
		assert.Equal(t, c.Seq*80, c.StartOffset)
		assert.Equal(t, c.StartOffset+len([]rune(c.Content)), c.EndOffset)
	}
}

func TestIngestDocumentReplacesPreviousChunks(t *testing.T) {
	ctx := context.Background()
	ingestor, repo := newTestIngestor(t, 100, 20)

	_, err := ingestor.IngestDocument(ctx, "guide", strings.Repeat("first version ", 30))
	require.NoError(t, err)

	n, err := ingestor.IngestDocument(ctx, "guide", "short replacement")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIngestEmptyDocumentClears(t *testing.T) {
	ctx := context.Background()
	ingestor, repo := newTestIngestor(t, 100, 20)

	_, err := ingestor.IngestDocument(ctx, "guide", "some content")
	require.NoError(t, err)

	n, err := ingestor.IngestDocument(ctx, "guide", "")
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func mustEmbed(t *testing.T, text string) []float32 {
	t.Helper()
	resp, err := embedding.NewHashingProvider(384).Generate(text, embedding.TaskTypeQuery)
	require.NoError(t, err)
	return resp.Embedding.Values
}
