package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("connection")
	require.NoError(t, s.Put(ctx, "connection.bin", data))
	data[0] = 'X'
	assert.Equal(t, int64(10), s.Bytes())

	got, err := ReadAll(ctx, s, "connection.bin")
	require.NoError(t, err)
	assert.Equal(t, "connection", string(got))

	blob, err := s.Open(ctx, "connection.bin")
	require.NoError(t, err)
	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 8)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	names, err := s.List(ctx, "conn")
	require.NoError(t, err)
	assert.Equal(t, []string{"connection.bin"}, names)

	require.NoError(t, s.Delete(ctx, "connection.bin"))
	_, err = s.Open(ctx, "connection.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadAll_Empty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "empty", nil))

	got, err := ReadAll(ctx, s, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}
