package service

import (
	"context"
	"testing"

	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/memory"
	"care-assistant-be/pkg/embedding"
	"care-assistant-be/pkg/rag/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logReader records the pagination arguments GetLogs receives.
type logReader struct {
	logger.Noop
	level  string
	limit  int
	offset int
}

func (l *logReader) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	l.level, l.limit, l.offset = level, limit, offset
	return []logger.LogEntry{
		{Id: "abc", Level: "INFO", Message: "Session created", Component: "conversation"},
	}, nil
}

func TestGetLogsClampsPagination(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name                 string
		limit, offset        int
		wantLimit, wantBegin int
	}{
		{"defaults applied", 0, -3, 100, 0},
		{"oversized limit clamped", 10_000, 5, 100, 5},
		{"valid values pass through", 20, 40, 20, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &logReader{}
			svc := NewAdminService(reader, memory.NewChunkRepository(4))

			out, err := svc.GetLogs(ctx, "INFO", tt.limit, tt.offset)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, "Session created", out[0].Message)
			assert.Equal(t, "INFO", reader.level)
			assert.Equal(t, tt.wantLimit, reader.limit)
			assert.Equal(t, tt.wantBegin, reader.offset)
		})
	}
}

func TestGetCorpusStatus(t *testing.T) {
	ctx := context.Background()

	embedder := embedding.NewHashingProvider(384)
	chunkRepo := memory.NewChunkRepository(embedder.Dimension())
	ingestor := ingest.NewIngestor(embedder, chunkRepo, logger.NewNoop(), 500, 100)

	_, err := ingestor.IngestDocument(ctx, "renal-diet", "Restrict sodium intake after discharge.")
	require.NoError(t, err)
	_, err = ingestor.IngestDocument(ctx, "fluid-balance", "Track daily weight to monitor fluid balance.")
	require.NoError(t, err)

	svc := NewAdminService(logger.NewNoop(), chunkRepo)
	status, err := svc.GetCorpusStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fluid-balance", "renal-diet"}, status.Documents)
	assert.Equal(t, int64(2), status.Chunks)
}
