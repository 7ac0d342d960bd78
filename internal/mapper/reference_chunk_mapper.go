package mapper

import (
	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ReferenceChunkMapper struct{}

func NewReferenceChunkMapper() *ReferenceChunkMapper {
	return &ReferenceChunkMapper{}
}

func (m *ReferenceChunkMapper) ToEntity(c *model.ReferenceChunk) *entity.ReferenceChunk {
	if c == nil {
		return nil
	}

	return &entity.ReferenceChunk{
		Id:          c.Id,
		DocumentId:  c.DocumentId,
		Seq:         c.Seq,
		StartOffset: c.StartOffset,
		EndOffset:   c.EndOffset,
		Content:     c.Content,
		Embedding:   c.Embedding.Slice(),
		IngestedAt:  c.IngestedAt,
	}
}

func (m *ReferenceChunkMapper) ToModel(c *entity.ReferenceChunk) *model.ReferenceChunk {
	if c == nil {
		return nil
	}

	return &model.ReferenceChunk{
		Id:          c.Id,
		DocumentId:  c.DocumentId,
		Seq:         c.Seq,
		StartOffset: c.StartOffset,
		EndOffset:   c.EndOffset,
		Content:     c.Content,
		Embedding:   pgvector.NewVector(c.Embedding),
		IngestedAt:  c.IngestedAt,
	}
}

func (m *ReferenceChunkMapper) ToEntities(chunks []*model.ReferenceChunk) []*entity.ReferenceChunk {
	entities := make([]*entity.ReferenceChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ReferenceChunkMapper) ToModels(chunks []*entity.ReferenceChunk) []*model.ReferenceChunk {
	models := make([]*model.ReferenceChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
