package retriever

import (
	"context"
	"fmt"

	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/contract"
	"care-assistant-be/pkg/embedding"
	"care-assistant-be/pkg/store"
)

// Result is the outcome of one retrieval pass. Sufficient reports whether
// the best match cleared the confidence threshold; when it did not, the
// caller falls back to external search.
type Result struct {
	Documents  []store.Document
	Sufficient bool
	Best       float64
}

// Engine answers semantic queries over the reference corpus.
type Engine struct {
	embedder  embedding.EmbeddingProvider
	chunkRepo contract.ReferenceChunkRepository
	logger    logger.ILogger

	topK      int
	threshold float64
}

func NewEngine(
	embedder embedding.EmbeddingProvider,
	chunkRepo contract.ReferenceChunkRepository,
	log logger.ILogger,
	topK int,
	threshold float64,
) *Engine {
	return &Engine{
		embedder:  embedder,
		chunkRepo: chunkRepo,
		logger:    log,
		topK:      topK,
		threshold: threshold,
	}
}

// Retrieve embeds the query and returns the top-k corpus chunks by cosine
// similarity. An empty corpus yields store.ErrRetrievalEmpty rather than a
// silent miss, so the caller can distinguish "nothing ingested" from
// "nothing relevant".
func (e *Engine) Retrieve(ctx context.Context, query string) (*Result, error) {
	count, err := e.chunkRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, store.ErrRetrievalEmpty
	}

	resp, err := e.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := e.chunkRepo.Query(ctx, resp.Embedding.Values, e.topK)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Documents: make([]store.Document, 0, len(scored)),
	}
	for _, sc := range scored {
		result.Documents = append(result.Documents, store.Document{
			ID:      sc.Chunk.Id.String(),
			Source:  sc.Chunk.DocumentId,
			Locator: fmt.Sprintf("chunk %d (offset %d-%d)", sc.Chunk.Seq, sc.Chunk.StartOffset, sc.Chunk.EndOffset),
			Content: sc.Chunk.Content,
			Score:   float32(sc.Similarity),
		})
	}

	if len(scored) > 0 {
		result.Best = scored[0].Similarity
		result.Sufficient = result.Best >= e.threshold
	}

	e.logger.Debug("retriever", "Corpus query executed", map[string]interface{}{
		"hits":       len(result.Documents),
		"best_score": result.Best,
		"sufficient": result.Sufficient,
	})
	return result, nil
}
