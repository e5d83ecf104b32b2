package storage

import (
	"context"
	"fmt"
	"strings"
)

// Storage stores and retrieves opaque log documents by relative path.
// Implementations are safe for concurrent use.
type Storage interface {
	// Read returns the contents of the document at path.
	// Returns ErrNotFound if no such document exists.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write stores data at path, replacing any existing document.
	Write(ctx context.Context, path string, data []byte) error

	// List returns the paths of all documents under prefix, sorted
	// lexicographically.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether a document exists at path.
	Exists(ctx context.Context, path string) (bool, error)
}

// New selects a backend from the root location: "s3://bucket/prefix" yields
// an S3 backend configured from the default AWS credential chain, anything
// else a local filesystem backend rooted at the given directory.
func New(ctx context.Context, root string) (Storage, error) {
	if strings.HasPrefix(root, "s3://") {
		bucket, prefix, err := splitS3Root(root)
		if err != nil {
			return nil, err
		}
		return NewS3Storage(ctx, S3Config{Bucket: bucket, Prefix: prefix})
	}
	return NewLocalStorage(root)
}

func splitS3Root(root string) (bucket, prefix string, err error) {
	trimmed := strings.TrimPrefix(root, "s3://")
	bucket, prefix, _ = strings.Cut(trimmed, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: missing bucket in %q", ErrInvalidConfig, root)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}
