// Package storage persists validation log documents on a local filesystem
// or on Amazon S3 (and S3-compatible services), behind one small interface.
//
// The history package uses it to read past validation results when
// resolving adaptive thresholds, and to append the current run's results.
// Documents are opaque bytes at this layer; encoding belongs to the caller.
//
// # Usage
//
//	store, err := storage.New(ctx, "s3://my-bucket/quality-logs")
//	// or
//	store, err = storage.New(ctx, "/var/lib/quality-logs")
//
//	data, err := store.Read(ctx, "orders/2026-08-24.yaml")
//
// Local paths are confined to the configured base directory; attempts to
// escape it with ".." segments fail with ErrInvalidPath.
package storage
