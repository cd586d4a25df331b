// Package blobstore provides storage abstraction for henkan's dictionary
// artifacts.
//
// Store is the read interface the engine loads dictionaries through.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory blobs for tests and embedded dictionaries
//   - CachingStore: Whole-blob LRU in front of a remote store
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement Store to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	}
//
// Stores that accept uploads (used by henkan-build) also implement Writer:
//
//	type Writer interface {
//	    Put(ctx, name, data) error
//	}
package blobstore
