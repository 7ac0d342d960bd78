package ingest

import (
	"context"
	"fmt"
	"time"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/contract"
	"care-assistant-be/pkg/embedding"
	"care-assistant-be/pkg/utils"

	"github.com/google/uuid"
)

// Ingestor turns a corpus document into embedded chunks. Re-running it on
// the same document id replaces the previous chunk set wholesale, so
// ingestion is idempotent for unchanged text.
type Ingestor struct {
	embedder  embedding.EmbeddingProvider
	chunkRepo contract.ReferenceChunkRepository
	logger    logger.ILogger

	chunkSize int
	overlap   int
}

func NewIngestor(
	embedder embedding.EmbeddingProvider,
	chunkRepo contract.ReferenceChunkRepository,
	log logger.ILogger,
	chunkSize, overlap int,
) *Ingestor {
	return &Ingestor{
		embedder:  embedder,
		chunkRepo: chunkRepo,
		logger:    log,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// IngestDocument splits, embeds, and stores one document. Returns the
// number of chunks written.
func (i *Ingestor) IngestDocument(ctx context.Context, documentId, text string) (int, error) {
	pieces := utils.SplitText(text, i.chunkSize, i.overlap)
	if len(pieces) == 0 {
		// Empty document: drop whatever was stored for it before.
		if err := i.chunkRepo.ReplaceDocument(ctx, documentId, nil); err != nil {
			return 0, err
		}
		return 0, nil
	}

	step := i.chunkSize - i.overlap
	if step <= 0 {
		step = i.chunkSize
	}

	now := time.Now()
	chunks := make([]*entity.ReferenceChunk, 0, len(pieces))
	for seq, piece := range pieces {
		resp, err := i.embedder.Generate(piece, embedding.TaskTypeDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %q: %w", seq, documentId, err)
		}

		start := seq * step
		chunks = append(chunks, &entity.ReferenceChunk{
			Id:          uuid.New(),
			DocumentId:  documentId,
			Seq:         seq,
			StartOffset: start,
			EndOffset:   start + len([]rune(piece)),
			Content:     piece,
			Embedding:   resp.Embedding.Values,
			IngestedAt:  now,
		})
	}

	if err := i.chunkRepo.ReplaceDocument(ctx, documentId, chunks); err != nil {
		return 0, err
	}

	i.logger.Info("ingestor", "Document ingested", map[string]interface{}{
		"document_id": documentId,
		"chunks":      len(chunks),
	})
	return len(chunks), nil
}
