package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type ReferenceChunk struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId  string          `gorm:"type:text;not null;index"`
	Seq         int             `gorm:"default:0"` // 0-based window index within the document
	StartOffset int             `gorm:"default:0"`
	EndOffset   int             `gorm:"default:0"`
	Content     string          `gorm:"type:text;not null"`
	Embedding   pgvector.Vector `gorm:"type:vector(384)"`
	IngestedAt  time.Time       `gorm:"autoCreateTime;index"`
}

func (ReferenceChunk) TableName() string {
	return "reference_chunks"
}
