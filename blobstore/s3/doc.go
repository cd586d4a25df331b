// Package s3 provides an S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("dict/v1/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	engine, err := henkan.Open(ctx, blobstore.NewCachingStore(store, 256<<20, nil))
//
// # Features
//
//   - Range reads
//   - Multipart uploads with CRC32C checksums for henkan-build
//   - Automatic pagination for listing
//   - Configurable prefix for versioned dictionary sets
package s3
