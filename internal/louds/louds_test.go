package louds

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var readings = []string{
	"き", "きょう", "きょうと", "きょうかい", "きょ", "か", "かな", "かんじ",
	"😀", "a", "ab", "きょう", "",
}

func keysOf(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Key
	}
	return out
}

func TestBuild_NodeIndexRoundTrip(t *testing.T) {
	trie, nodes := Build(readings)

	require.Len(t, nodes, 11)
	assert.Equal(t, 11, trie.NumTerms())

	seen := map[TermID]string{}
	for key, node := range nodes {
		got, ok := trie.NodeIndex(key)
		require.True(t, ok, key)
		assert.Equal(t, node, got, key)
		require.True(t, trie.IsTerminal(got), key)

		id := trie.TermID(got)
		assert.GreaterOrEqual(t, int(id), 0)
		assert.Less(t, int(id), trie.NumTerms())
		_, dup := seen[id]
		assert.False(t, dup, "term id %d assigned twice", id)
		seen[id] = key

		assert.Equal(t, key, trie.Letter(got))
	}

	_, ok := trie.NodeIndex("きゅ")
	assert.False(t, ok)

	node, ok := trie.NodeIndex("きょうか")
	require.True(t, ok)
	assert.False(t, trie.IsTerminal(node))
}

func TestTermID_MonotonicInBreadthFirstOrder(t *testing.T) {
	trie, nodes := Build(readings)

	type pair struct {
		node NodeIndex
		id   TermID
	}
	var pairs []pair
	for _, n := range nodes {
		pairs = append(pairs, pair{n, trie.TermID(n)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].node < pairs[j].node })
	for i, p := range pairs {
		assert.Equal(t, TermID(i), p.id)
	}
}

func TestCommonPrefixSearch(t *testing.T) {
	trie, _ := Build(readings)

	got := trie.CommonPrefixSearch("きょうかいに")
	assert.Equal(t, []string{"き", "きょ", "きょう", "きょうかい"}, keysOf(got))
	assert.Equal(t, []int{1, 2, 3, 5}, []int{got[0].Length, got[1].Length, got[2].Length, got[3].Length})

	assert.Empty(t, trie.CommonPrefixSearch("ん"))
	assert.Empty(t, trie.CommonPrefixSearch(""))
	assert.Equal(t, []string{"😀"}, keysOf(trie.CommonPrefixSearch("😀x")))

	// Every stored key is found from any string it prefixes.
	for _, r := range readings {
		if r == "" {
			continue
		}
		assert.Contains(t, keysOf(trie.CommonPrefixSearch(r+"ん")), r)
		assert.Contains(t, keysOf(trie.CommonPrefixSearch(r)), r)
	}
}

func TestPredictiveSearch(t *testing.T) {
	trie, _ := Build(readings)

	got := trie.PredictiveSearch("きょう", 0)
	assert.Equal(t, []string{"きょう", "きょうと", "きょうかい"}[0], got[0].Key)
	assert.ElementsMatch(t, []string{"きょう", "きょうと", "きょうかい"}, keysOf(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Length, got[i].Length)
	}

	assert.Len(t, trie.PredictiveSearch("き", 2), 2)
	assert.Nil(t, trie.PredictiveSearch("ぬ", 0))
	assert.Len(t, trie.PredictiveSearch("", 0), 11)
}

func TestParent(t *testing.T) {
	trie, nodes := Build([]string{"ab", "ac"})

	ab := nodes["ab"]
	a := trie.Parent(ab)
	assert.Equal(t, 'a', trie.Label(a))
	assert.Equal(t, Root, trie.Parent(a))
	assert.Equal(t, NodeIndex(-1), trie.Parent(Root))
	assert.Equal(t, trie.Parent(nodes["ac"]), a)
}

func TestMarshalRoundTrip(t *testing.T) {
	trie, nodes := Build(readings)

	data, err := trie.MarshalBinary()
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, trie.NumNodes(), decoded.NumNodes())

	for key, node := range nodes {
		got, ok := decoded.NodeIndex(key)
		require.True(t, ok)
		assert.Equal(t, node, got)
		assert.Equal(t, trie.TermID(node), decoded.TermID(got))
	}

	_, err = Unmarshal(data[:len(data)-3])
	assert.Error(t, err)
}

func TestBuild_Empty(t *testing.T) {
	trie, nodes := Build(nil)
	assert.Empty(t, nodes)
	assert.Equal(t, 1, trie.NumNodes())
	assert.Empty(t, trie.CommonPrefixSearch("あ"))
	assert.Empty(t, trie.PredictiveSearch("", 0))

	data, err := trie.MarshalBinary()
	require.NoError(t, err)
	_, err = Unmarshal(data)
	require.NoError(t, err)
}
