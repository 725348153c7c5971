package unitofwork

import (
	"context"

	"cardassist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChunkRepository() contract.ChunkRepository
	DocumentRecordRepository() contract.DocumentRecordRepository
}
