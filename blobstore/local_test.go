package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/henkan/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	name := "system/reading.bin"
	data := []byte("hello world, this is a test blob for henkan")

	require.NoError(t, store.Put(ctx, name, data))
	_, err := os.Stat(filepath.Join(tmpDir, "system", "reading.bin"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	_, err = blob.ReadAt(ctx, buf, int64(len(data)))
	assert.Equal(t, io.EOF, err)

	m, ok := blob.(Mappable)
	require.True(t, ok)
	b, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, b)

	got, err := ReadAll(ctx, store, name)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStore_List(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"pos.bin", "system/word.bin", "system/reading.bin", "emoji/token.bin.zip"} {
		require.NoError(t, store.Put(ctx, name, []byte(name)))
	}

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"emoji/token.bin.zip", "pos.bin", "system/reading.bin", "system/word.bin"}, names)

	names, err = store.List(ctx, "system/")
	require.NoError(t, err)
	assert.Equal(t, []string{"system/reading.bin", "system/word.bin"}, names)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ReadAll(context.Background(), store, "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_PutFaults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		fault fs.Fault
	}{
		{"write", fs.Fault{FailAfterBytes: 4}},
		{"sync", fs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{"close", fs.Fault{FailAfterBytes: -1, FailOnClose: true}},
		{"rename", fs.Fault{FailAfterBytes: -1, FailOnRename: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			ffs := fs.NewFaultyFS(nil)
			ffs.AddRule("system.tok", tt.fault)
			store := newLocalStoreFS(dir, ffs)

			err := store.Put(ctx, "system.tok", []byte("payload"))
			require.ErrorIs(t, err, fs.ErrInjected)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "failed put must not leave files behind")

			require.NoError(t, store.Put(ctx, "emoji.tok", []byte("ok")))
			names, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"emoji.tok"}, names)
		})
	}
}
