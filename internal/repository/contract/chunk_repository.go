package contract

import (
	"context"

	"cardassist-be/internal/entity"
	"cardassist-be/internal/repository/specification"
)

// ScoredChunk wraps Chunk with its similarity score
type ScoredChunk struct {
	Chunk      *entity.Chunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	DeleteBySourceKey(ctx context.Context, sourceKey string) error
	DeleteAll(ctx context.Context) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBySourceKey(ctx context.Context, sourceKey string) (int64, error)
	// SearchSimilarWithScore returns chunks ordered by cosine similarity,
	// filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredChunk, error)
}
