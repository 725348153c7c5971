package scope

import "gorm.io/gorm"

// OrderByChunkPosition sorts chunks in document order.
func OrderByChunkPosition(db *gorm.DB) *gorm.DB {
	return db.Order("source_key ASC, chunk_index ASC")
}

func OrderBySourceKey(db *gorm.DB) *gorm.DB {
	return db.Order("source_key ASC")
}

func OrderByIndexedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("indexed_at DESC")
}
