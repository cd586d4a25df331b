package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	*MemoryStore
	opens int
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.opens++
	return s.MemoryStore.Open(ctx, name)
}

func TestCachingStore(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, inner.Put(ctx, "system/token.bin", []byte("tokens")))

	s := NewCachingStore(inner, 1024, nil)

	for range 3 {
		data, err := ReadAll(ctx, s, "system/token.bin")
		require.NoError(t, err)
		assert.Equal(t, "tokens", string(data))
	}
	assert.Equal(t, 1, inner.opens)

	hits, misses := s.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	require.NoError(t, s.Put(ctx, "system/token.bin", []byte("changed")))
	data, err := ReadAll(ctx, s, "system/token.bin")
	require.NoError(t, err)
	assert.Equal(t, "changed", string(data))
	assert.Equal(t, 2, inner.opens)

	_, err = s.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
