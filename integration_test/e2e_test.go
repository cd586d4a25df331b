package integration_test

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/hupe1980/henkan"
	"github.com/hupe1980/henkan/blobstore"
	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/testutil"
	"github.com/hupe1980/henkan/userdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyStore publishes every blob of src to dst.
func copyStore(t *testing.T, src *blobstore.MemoryStore, dst blobstore.Writer) {
	t.Helper()
	ctx := context.Background()
	names, err := src.List(ctx, "")
	require.NoError(t, err)
	for _, name := range names {
		data, err := blobstore.ReadAll(ctx, src, name)
		require.NoError(t, err)
		require.NoError(t, dst.Put(ctx, name, data))
	}
}

func TestE2E_LocalStoreMatchesMemory(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)
	f := testutil.NewFixture(t, rng, testutil.FixtureConfig{
		Readings: 2000,
		Optional: []string{henkan.Wiki.String()},
		Options:  dictionary.SaveOptions{Compression: dictionary.CompressionZstd, Zip: true},
	})

	local := blobstore.NewLocalStore(t.TempDir())
	copyStore(t, f.Store, local)

	mem, err := henkan.Open(ctx, f.Store)
	require.NoError(t, err)
	disk, err := henkan.Open(ctx, local)
	require.NoError(t, err)
	require.NoError(t, mem.Load(ctx, henkan.Wiki))
	require.NoError(t, disk.Load(ctx, henkan.Wiki))

	opt := henkan.WithOptionalDictionaries(henkan.Wiki)
	for range 50 {
		input := f.Sentence(rng, 1+rng.Intn(3))
		want, err := mem.Candidates(input, 5, opt)
		require.NoError(t, err)
		got, err := disk.Candidates(input, 5, opt)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}

func TestE2E_CandidateProperties(t *testing.T) {
	rng := testutil.NewRNG(7)
	f := testutil.NewFixture(t, rng, testutil.FixtureConfig{Readings: 1000})
	e, err := henkan.Open(context.Background(), f.Store)
	require.NoError(t, err)

	for range 100 {
		input := f.Sentence(rng, 1+rng.Intn(4))
		n := utf8.RuneCountInString(input)

		cs, err := e.Candidates(input, 10)
		require.NoError(t, err)
		require.NotEmpty(t, cs, input)

		seen := map[string]bool{}
		for _, c := range cs {
			assert.False(t, seen[c.Text], "duplicate %q for %q", c.Text, input)
			seen[c.Text] = true
			assert.Positive(t, c.Length)
			assert.LessOrEqual(t, c.Length, n)
			if n == 1 {
				assert.NotEqual(t, candidate.Predictive, c.Category)
				assert.Equal(t, 1, c.Length)
			}
		}

		again, err := e.Candidates(input, 10)
		require.NoError(t, err)
		assert.Equal(t, cs, again)
	}
}

func TestE2E_EdgeCases(t *testing.T) {
	rng := testutil.NewRNG(1)
	f := testutil.NewFixture(t, rng, testutil.FixtureConfig{Readings: 100})
	e, err := henkan.Open(context.Background(), f.Store)
	require.NoError(t, err)

	cs, err := e.Candidates("", 5)
	require.NoError(t, err)
	assert.Empty(t, cs)

	cs, err = e.Candidates("xyz", 5)
	require.NoError(t, err)
	require.NotEmpty(t, cs)
	assert.Equal(t, "xyz", cs[0].Text)

	cs, err = e.Candidates("2025", 1)
	require.NoError(t, err)
	var numerals []string
	for _, c := range cs {
		if c.Category == candidate.NumeralVariant {
			numerals = append(numerals, c.Text)
		}
	}
	assert.Equal(t, []string{"２０２５", "二千二十五", "2,025", "2.025×10³"}, numerals)
}

func TestE2E_Learning(t *testing.T) {
	rng := testutil.NewRNG(3)
	f := testutil.NewFixture(t, rng, testutil.FixtureConfig{Readings: 500, PerReading: 4})
	e, err := henkan.Open(context.Background(), f.Store)
	require.NoError(t, err)

	learned := userdict.NewMemory()
	input := f.Readings[0]

	cs, err := e.Candidates(input, 10, henkan.WithLearnedDictionary(learned))
	require.NoError(t, err)
	require.NotEmpty(t, cs)
	pick := cs[len(cs)-1]

	for range 8 {
		learned.Learn(input, pick)
	}

	cs, err = e.Candidates(input, 10, henkan.WithLearnedDictionary(learned))
	require.NoError(t, err)
	assert.Equal(t, pick.Text, cs[0].Text)
}
