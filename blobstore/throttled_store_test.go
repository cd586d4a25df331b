package blobstore

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/henkan/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottledStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "pos.bin", make([]byte, 64)))

	s := NewThrottledStore(inner, resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20}))
	data, err := ReadAll(ctx, s, "pos.bin")
	require.NoError(t, err)
	assert.Len(t, data, 64)

	_, err = s.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThrottledStore_NilController(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "pos.bin", []byte("pos")))

	data, err := ReadAll(ctx, NewThrottledStore(inner, nil), "pos.bin")
	require.NoError(t, err)
	assert.Equal(t, "pos", string(data))
}

func TestThrottledStore_Canceled(t *testing.T) {
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(context.Background(), "big.bin", make([]byte, 4096)))

	// 16 B/s cannot serve 4 KiB before the deadline.
	s := NewThrottledStore(inner, resource.NewController(resource.Config{IOLimitBytesPerSec: 16}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.Open(ctx, "big.bin")
	assert.Error(t, err)
}
