package specification

import "gorm.io/gorm"

// BySourceKey filters chunks belonging to one source document
type BySourceKey struct {
	SourceKey string
}

func (s BySourceKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_key = ?", s.SourceKey)
}

// OrderByChunkIndex restores document order for a source's chunks
type OrderByChunkIndex struct{}

func (s OrderByChunkIndex) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("chunk_index ASC")
}
