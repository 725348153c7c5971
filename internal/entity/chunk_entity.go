package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is one embedded slice of a source document. SourceKey plus
// ChunkIndex identifies its position within the document.
type Chunk struct {
	Id             uuid.UUID
	SourceKey      string
	ChunkIndex     int
	Content        string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
