package embedding

import (
	"hash/fnv"
	"regexp"
	"strings"

	"care-assistant-be/pkg/store"
)

// HashingProvider is a local, deterministic feature-hashing embedder.
// Each token is hashed into one of 'dimension' buckets with a sign derived
// from the hash, giving a fixed-length term-frequency vector for text of any
// length. It needs no external service and no prepared vocabulary, which
// keeps the process-wide dimension stable regardless of corpus content.
type HashingProvider struct {
	dimension    int
	tokenPattern *regexp.Regexp
}

func NewHashingProvider(dimension int) *HashingProvider {
	if dimension <= 0 {
		dimension = 384
	}
	return &HashingProvider{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
	}
}

func (p *HashingProvider) Dimension() int { return p.dimension }

func (p *HashingProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// TaskType is ignored: the hash space is symmetric for queries and
	// documents, kept for interface compatibility.
	if strings.TrimSpace(text) == "" {
		return nil, store.ErrInvalidUtterance
	}

	values := make([]float32, p.dimension)
	for _, token := range p.tokenPattern.FindAllString(strings.ToLower(text), -1) {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()

		bucket := int(sum % uint64(p.dimension))
		// One hash bit decides the sign so collisions cancel instead of
		// piling up.
		if (sum>>63)&1 == 1 {
			values[bucket] -= 1
		} else {
			values[bucket] += 1
		}
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(values),
		},
	}, nil
}
