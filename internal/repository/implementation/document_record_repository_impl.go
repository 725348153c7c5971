package implementation

import (
	"context"
	"errors"

	"cardassist-be/internal/entity"
	"cardassist-be/internal/mapper"
	"cardassist-be/internal/model"
	"cardassist-be/internal/repository/contract"
	"cardassist-be/internal/repository/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentRecordMapper
}

func NewDocumentRecordRepository(db *gorm.DB) contract.DocumentRecordRepository {
	return &DocumentRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentRecordMapper(),
	}
}

func (r *DocumentRecordRepositoryImpl) Upsert(ctx context.Context, record *entity.DocumentRecord) error {
	m := r.mapper.ToModel(record)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"size_bytes", "mod_time", "chunk_count", "indexed_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRecordRepositoryImpl) FindBySourceKey(ctx context.Context, sourceKey string) (*entity.DocumentRecord, error) {
	var m model.DocumentRecord
	err := r.db.WithContext(ctx).Where("source_key = ?", sourceKey).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRecordRepositoryImpl) FindAll(ctx context.Context) ([]*entity.DocumentRecord, error) {
	var models []*model.DocumentRecord
	if err := r.db.WithContext(ctx).Scopes(scope.OrderBySourceKey).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRecordRepositoryImpl) DeleteBySourceKey(ctx context.Context, sourceKey string) error {
	return r.db.WithContext(ctx).Where("source_key = ?", sourceKey).Delete(&model.DocumentRecord{}).Error
}

func (r *DocumentRecordRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.DocumentRecord{}).Error
}

func (r *DocumentRecordRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.DocumentRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
