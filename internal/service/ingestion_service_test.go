package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"care-assistant-be/internal/dto"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/memory"
	"care-assistant-be/pkg/embedding"
	"care-assistant-be/pkg/events"
	"care-assistant-be/pkg/rag/ingest"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingestFixture struct {
	ingestion IIngestionService
	consumer  IConsumerService
	chunkRepo *memory.ChunkRepository
	publisher *recordingPublisher
	pubSub    *gochannel.GoChannel
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	log := logger.NewNoop()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	embedder := embedding.NewHashingProvider(384)
	chunkRepo := memory.NewChunkRepository(embedder.Dimension())
	ingestor := ingest.NewIngestor(embedder, chunkRepo, log, 500, 100)
	publisher := &recordingPublisher{}

	return &ingestFixture{
		ingestion: NewIngestionService(pubSub, "ingest_document", log),
		consumer:  NewConsumerService(pubSub, "ingest_document", ingestor, publisher, log),
		chunkRepo: chunkRepo,
		publisher: publisher,
		pubSub:    pubSub,
	}
}

func TestQueueDocumentReachesCorpus(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t)
	require.NoError(t, f.consumer.Consume(ctx))

	resp, err := f.ingestion.QueueDocument(ctx, &dto.IngestDocumentRequest{
		DocumentId: "renal-diet",
		Content:    "Patients with chronic kidney disease should restrict sodium intake.",
	})
	require.NoError(t, err)
	assert.True(t, resp.Queued)
	assert.Equal(t, "renal-diet", resp.DocumentId)

	assert.Eventually(t, func() bool {
		count, err := f.chunkRepo.Count(ctx)
		return err == nil && count > 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		for _, typ := range f.publisher.types() {
			if typ == events.TypeCorpusIngested {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueueCorpusDir(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t)
	require.NoError(t, f.consumer.Consume(ctx))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "renal-diet.txt"),
		[]byte("Restrict sodium intake after discharge."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fluid-balance.md"),
		[]byte("Track daily weight to monitor fluid balance."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.pdf"),
		[]byte("binary"), 0o644))

	resp, err := f.ingestion.QueueCorpusDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Documents)
	assert.ElementsMatch(t, []string{"renal-diet", "fluid-balance"}, resp.Queued)

	assert.Eventually(t, func() bool {
		docs, err := f.chunkRepo.Documents(ctx)
		return err == nil && len(docs) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueueCorpusDirMissing(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.ingestion.QueueCorpusDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestConsumerSkipsMalformedMessage(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t)
	require.NoError(t, f.consumer.Consume(ctx))

	// A broken payload is acked and dropped; a valid one after it still
	// lands.
	require.NoError(t, f.pubSub.Publish("ingest_document",
		message.NewMessage(watermill.NewUUID(), []byte("{not json"))))

	_, err := f.ingestion.QueueDocument(ctx, &dto.IngestDocumentRequest{
		DocumentId: "after-bad",
		Content:    "Valid document content.",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		docs, derr := f.chunkRepo.Documents(ctx)
		return derr == nil && len(docs) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
