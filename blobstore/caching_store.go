package blobstore

import (
	"context"

	"github.com/hupe1980/henkan/internal/cache"
	"github.com/hupe1980/henkan/internal/resource"
)

// CachingStore wraps a Store and keeps whole blobs in an LRU cache.
//
// Dictionary artifacts are read in full exactly once per load, so caching
// complete blobs (rather than blocks) is what makes a reload cheap.
type CachingStore struct {
	inner Store
	cache *cache.LRU
}

// NewCachingStore creates a new CachingStore holding up to capacity bytes.
// When rc is non-nil cached bytes count against its memory budget.
func NewCachingStore(inner Store, capacity int64, rc *resource.Controller) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity, rc),
	}
}

// Open returns the cached blob or reads it from the inner store.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

// Put writes through to the inner store and drops the cached copy.
// It panics when the inner store is not a Writer.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Remove(name)
	return s.inner.(Writer).Put(ctx, name, data)
}

// Stats returns cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
