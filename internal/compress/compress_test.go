package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("きょうはいいてんきですね"), 200)

	for _, typ := range []Type{None, LZ4, Zstd} {
		t.Run(typ.String(), func(t *testing.T) {
			out, compressed, err := Compress(data, typ)
			require.NoError(t, err)
			if typ == None {
				assert.False(t, compressed)
			} else {
				require.True(t, compressed)
				assert.Less(t, len(out), len(data))
			}

			stored := None
			if compressed {
				stored = typ
			}
			got, err := Decompress(out, stored, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompress_Incompressible(t *testing.T) {
	data := []byte{1}
	out, compressed, err := Compress(data, Zstd)
	require.NoError(t, err)
	assert.False(t, compressed)
	assert.Equal(t, data, out)
}

func TestDecompress_SizeMismatch(t *testing.T) {
	data := bytes.Repeat([]byte("abc"), 100)
	out, _, err := Compress(data, Zstd)
	require.NoError(t, err)

	_, err = Decompress(out, Zstd, len(data)+1)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Decompress(data, None, 1)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{None, LZ4, Zstd} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("brotli")
	assert.Error(t, err)
}
