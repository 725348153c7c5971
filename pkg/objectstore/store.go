package objectstore

import (
	"context"
	"time"
)

// ObjectInfo describes a stored document without loading its content.
type ObjectInfo struct {
	Key     string // path relative to the bucket root
	Size    int64
	ModTime time.Time
}

// Store abstracts the knowledge-base bucket holding source documents.
type Store interface {
	// List returns every object under the bucket, recursively.
	List(ctx context.Context) ([]ObjectInfo, error)

	// Stat returns metadata for a single object.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)

	// Read loads the full content of an object.
	Read(ctx context.Context, key string) ([]byte, error)
}
