package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object operations snapshots need across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Bucket() string
}
