package mapper

import (
	"cardassist-be/internal/entity"
	"cardassist-be/internal/model"
)

type DocumentRecordMapper struct{}

func NewDocumentRecordMapper() *DocumentRecordMapper {
	return &DocumentRecordMapper{}
}

func (m *DocumentRecordMapper) ToEntity(r *model.DocumentRecord) *entity.DocumentRecord {
	if r == nil {
		return nil
	}
	return &entity.DocumentRecord{
		Id:         r.Id,
		SourceKey:  r.SourceKey,
		SizeBytes:  r.SizeBytes,
		ModTime:    r.ModTime,
		ChunkCount: r.ChunkCount,
		IndexedAt:  r.IndexedAt,
	}
}

func (m *DocumentRecordMapper) ToModel(r *entity.DocumentRecord) *model.DocumentRecord {
	if r == nil {
		return nil
	}
	return &model.DocumentRecord{
		Id:         r.Id,
		SourceKey:  r.SourceKey,
		SizeBytes:  r.SizeBytes,
		ModTime:    r.ModTime,
		ChunkCount: r.ChunkCount,
		IndexedAt:  r.IndexedAt,
	}
}

func (m *DocumentRecordMapper) ToEntities(records []*model.DocumentRecord) []*entity.DocumentRecord {
	entities := make([]*entity.DocumentRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
