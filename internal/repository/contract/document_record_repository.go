package contract

import (
	"context"

	"cardassist-be/internal/entity"
)

type DocumentRecordRepository interface {
	Upsert(ctx context.Context, record *entity.DocumentRecord) error
	FindBySourceKey(ctx context.Context, sourceKey string) (*entity.DocumentRecord, error)
	FindAll(ctx context.Context) ([]*entity.DocumentRecord, error)
	DeleteBySourceKey(ctx context.Context, sourceKey string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
