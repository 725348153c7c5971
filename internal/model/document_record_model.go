package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentRecord struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceKey  string    `gorm:"type:text;not null;uniqueIndex"`
	SizeBytes  int64     `gorm:"not null"`
	ModTime    time.Time `gorm:"not null"`
	ChunkCount int       `gorm:"default:0"`
	IndexedAt  time.Time `gorm:"autoUpdateTime"`
}

func (DocumentRecord) TableName() string {
	return "document_records"
}
