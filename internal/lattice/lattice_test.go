package lattice

import (
	"testing"

	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/userdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	b := dictionary.NewBuilder("system", nil)
	require.NoError(t, b.AddAll([]dictionary.Word{
		{Reading: "きょう", Surface: "今日", LeftID: 1, RightID: 1, Cost: 3000},
		{Reading: "きょう", Surface: "京", LeftID: 1, RightID: 1, Cost: 4000},
		{Reading: "きょうと", Surface: "京都", LeftID: 1, RightID: 1, Cost: 2500},
		{Reading: "と", Surface: "と", LeftID: 2, RightID: 2, Cost: 500},
	}))
	d, err := b.Build()
	require.NoError(t, err)
	return d
}

func surfacesAt(l *Lattice, pos int) []string {
	var out []string
	for _, i := range l.StartingAt(pos) {
		out = append(out, l.Node(i).Surface)
	}
	return out
}

func TestBuild_System(t *testing.T) {
	l := Build("きょうと", testDict(t), Options{UnknownWordCost: 10000})

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, "きょうと", l.Input())
	assert.Equal(t, []string{"今日", "京", "京都"}, surfacesAt(l, 0))
	assert.Equal(t, []string{"と"}, surfacesAt(l, 3))
	assert.Empty(t, surfacesAt(l, 1))
	assert.Empty(t, surfacesAt(l, 2))
	assert.Len(t, l.EndingAt(4), 2)
	assert.Equal(t, 4, l.NumNodes())
}

func TestBuild_Fallback(t *testing.T) {
	l := Build("きょうは", testDict(t), Options{UnknownWordCost: 10000, UnknownID: 7})

	got := l.StartingAt(3)
	require.Len(t, got, 1)
	n := l.Node(got[0])
	assert.Equal(t, "は", n.Surface)
	assert.Equal(t, SourceUnknown, n.Source)
	assert.Equal(t, int16(10000), n.WordCost)
	assert.Equal(t, int16(7), n.LeftID)
	assert.Equal(t, 3, n.Start)
	assert.Equal(t, 4, n.End)

	// Unreachable interior positions get no fallback.
	assert.Empty(t, l.StartingAt(1))
}

func TestBuild_NoDictionary(t *testing.T) {
	l := Build("あい", nil, Options{UnknownWordCost: 100})
	assert.Equal(t, []string{"あ"}, surfacesAt(l, 0))
	assert.Equal(t, []string{"い"}, surfacesAt(l, 1))

	empty := Build("", nil, Options{})
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.NumNodes())
}

func TestBuild_Repositories(t *testing.T) {
	user := userdict.NewMemory()
	user.Add(userdict.Entry{Reading: "きょうと", Surface: "KYOTO", Cost: 100})
	user.Add(userdict.Entry{Reading: "きょう", Surface: "<date>", Kind: userdict.KindTemplate})
	learned := userdict.NewMemory()
	learned.Add(userdict.Entry{Reading: "と", Surface: "都", Cost: 200})

	l := Build("きょうと", testDict(t), Options{User: user, Learned: learned})

	var sources []Source
	for _, i := range l.StartingAt(0) {
		sources = append(sources, l.Node(i).Source)
	}
	assert.Equal(t, []Source{SourceSystem, SourceSystem, SourceSystem, SourceUser}, sources)
	assert.Equal(t, []string{"と", "都"}, surfacesAt(l, 3))
	assert.Equal(t, SourceLearned, l.Node(l.StartingAt(3)[1]).Source)
}

func TestBuild_RepositoryReadingForms(t *testing.T) {
	learned := userdict.NewMemory()
	learned.Add(userdict.Entry{Reading: "キョウ", Surface: "杏", Cost: 100})
	learned.Add(userdict.Entry{Reading: "１２３", Surface: "百二十三番", Cost: 100})

	tests := []struct {
		input   string
		surface string
		end     int
	}{
		{"きょう", "杏", 3},
		{"キョウ", "杏", 3},
		{"ｷｮｳ", "杏", 3},
		{"１２３", "百二十三番", 3},
		{"123", "百二十三番", 3},
		{"ｶﾞきょう", "杏", 5},
	}
	for _, tt := range tests {
		l := Build(tt.input, nil, Options{Learned: learned, UnknownWordCost: 10000})
		start := tt.end - 3
		var found bool
		for _, i := range l.StartingAt(start) {
			n := l.Node(i)
			if n.Surface == tt.surface {
				found = true
				assert.Equal(t, tt.end, n.End, tt.input)
				assert.Equal(t, SourceLearned, n.Source)
			}
		}
		assert.True(t, found, tt.input)
	}
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "learned", SourceLearned.String())
	assert.Equal(t, "invalid", Source(42).String())
}
