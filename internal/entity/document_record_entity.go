package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRecord tracks the last indexed state of a source document.
// A document is reindexed only when size or mtime diverge from this record.
type DocumentRecord struct {
	Id         uuid.UUID
	SourceKey  string
	SizeBytes  int64
	ModTime    time.Time
	ChunkCount int
	IndexedAt  time.Time
}

// Matches reports whether the stored fingerprint still describes the
// given on-disk state. Mtimes are compared at microsecond precision:
// timestamptz columns keep microseconds while file mtimes carry
// nanoseconds, so a round trip through the database loses the tail.
func (r *DocumentRecord) Matches(sizeBytes int64, modTime time.Time) bool {
	return r.SizeBytes == sizeBytes &&
		r.ModTime.Truncate(time.Microsecond).Equal(modTime.Truncate(time.Microsecond))
}
