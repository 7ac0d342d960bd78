package implementation

import (
	"context"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/mapper"
	"care-assistant-be/internal/model"
	"care-assistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ReferenceChunkRepositoryImpl is the pgvector-backed chunk store, for
// deployments where the corpus must survive restarts.
type ReferenceChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReferenceChunkMapper
}

func NewReferenceChunkRepository(db *gorm.DB) contract.ReferenceChunkRepository {
	return &ReferenceChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewReferenceChunkMapper(),
	}
}

func (r *ReferenceChunkRepositoryImpl) ReplaceDocument(ctx context.Context, documentId string, chunks []*entity.ReferenceChunk) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentId).Delete(&model.ReferenceChunk{}).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		models := r.mapper.ToModels(chunks)
		if err := tx.Create(&models).Error; err != nil {
			return err
		}
		for i, m := range models {
			*chunks[i] = *r.mapper.ToEntity(m)
		}
		return nil
	})
}

func (r *ReferenceChunkRepositoryImpl) DeleteDocument(ctx context.Context, documentId string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.ReferenceChunk{}).Error
}

func (r *ReferenceChunkRepositoryImpl) Query(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) recovers the similarity.
	type result struct {
		model.ReferenceChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("reference_chunks").
		Select("reference_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Order("similarity DESC, ingested_at ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.ReferenceChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *ReferenceChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ReferenceChunk{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReferenceChunkRepositoryImpl) Documents(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.ReferenceChunk{}).
		Distinct("document_id").
		Order("document_id ASC").
		Pluck("document_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
