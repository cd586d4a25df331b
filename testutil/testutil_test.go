package testutil

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/hupe1980/henkan/blobstore"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadings(t *testing.T) {
	rng := NewRNG(4711)

	rs := rng.Readings(200, 2, 4)

	assert.Len(t, rs, 200)
	seen := map[string]bool{}
	for _, r := range rs {
		assert.False(t, seen[r])
		seen[r] = true
		n := utf8.RuneCountInString(r)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 4)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.Reading(3, 3)
	rng.Reset()
	assert.Equal(t, a, rng.Reading(3, 3))
	assert.Equal(t, int64(7), rng.Seed())
}

func TestWords(t *testing.T) {
	rng := NewRNG(4711)

	ws := rng.Words([]string{"きょう", "はし"}, 3, 8)

	require.NotEmpty(t, ws)
	for _, w := range ws {
		assert.NotEmpty(t, w.Surface)
		assert.GreaterOrEqual(t, w.LeftID, int16(1))
		assert.Less(t, w.LeftID, int16(8))
		assert.GreaterOrEqual(t, w.Cost, int16(500))
	}
}

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)

	counts := make([]int, 10)
	for range 5000 {
		i := rng.Zipf(10, 1.5)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 10)
		counts[i]++
	}
	assert.Greater(t, counts[0], counts[9])
}

func TestNewFixture(t *testing.T) {
	rng := NewRNG(4711)

	f := NewFixture(t, rng, FixtureConfig{Readings: 50, Optional: []string{"place"}})

	names, err := f.Store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, names, "system/token.bin")
	assert.Contains(t, names, "place/reading.bin")
	assert.Contains(t, names, "connection.bin")

	pos, err := dictionary.LoadPOS(context.Background(), f.Store, dictionary.DefaultLayout())
	require.NoError(t, err)
	d, err := dictionary.Load(context.Background(), blobstore.Store(f.Store), "system", pos, dictionary.DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, len(f.Words), d.Len())

	assert.NotEmpty(t, f.Sentence(rng, 3))
}
