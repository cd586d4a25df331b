package louds

import (
	"encoding/binary"
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/hupe1980/henkan/internal/bitvector"
)

// NodeIndex identifies a trie node by breadth-first position. Root is 0.
type NodeIndex int

// TermID is the dense id of a terminal node.
type TermID int

// Root is the index of the root node.
const Root NodeIndex = 0

// Match is one stored key found by a search.
type Match struct {
	Key    string
	Length int // in runes
	Node   NodeIndex
}

// Trie is an immutable LOUDS trie. Safe for concurrent use.
type Trie struct {
	shape  *bitvector.Vector
	leaf   *bitvector.Vector
	labels []rune
}

// Build creates a trie over keys. Duplicates and empty keys are ignored.
// The returned map gives the terminal node of every stored key.
func Build(keys []string) (*Trie, map[string]NodeIndex) {
	sorted := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			sorted = append(sorted, k)
		}
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	runes := make([][]rune, len(sorted))
	for i, k := range sorted {
		runes[i] = []rune(k)
	}

	type span struct{ lo, hi, depth int }

	shape := bitvector.NewBuilder()
	shape.Append(true)
	shape.Append(false)
	leaf := bitvector.NewBuilder()
	labels := []rune{0}
	nodes := make(map[string]NodeIndex, len(sorted))

	queue := []span{{0, len(sorted), 0}}
	for head := 0; head < len(queue); head++ {
		s := queue[head]
		start := s.lo
		if start < s.hi && len(runes[start]) == s.depth {
			leaf.Append(true)
			nodes[sorted[start]] = NodeIndex(head)
			start++
		} else {
			leaf.Append(false)
		}

		for i := start; i < s.hi; {
			c := runes[i][s.depth]
			j := i + 1
			for j < s.hi && runes[j][s.depth] == c {
				j++
			}
			shape.Append(true)
			labels = append(labels, c)
			queue = append(queue, span{i, j, s.depth + 1})
			i = j
		}
		shape.Append(false)
	}

	return &Trie{
		shape:  shape.Build(),
		leaf:   leaf.Build(),
		labels: labels,
	}, nodes
}

// NumNodes returns the number of nodes including the root.
func (t *Trie) NumNodes() int { return len(t.labels) }

// NumTerms returns the number of stored keys.
func (t *Trie) NumTerms() int { return t.leaf.Ones() }

// children returns the id of the first child of v and the number of children.
func (t *Trie) children(v NodeIndex) (NodeIndex, int) {
	start := t.shape.Select0(int(v)) + 1
	end := t.shape.Select0(int(v) + 1)
	if end < start {
		return 0, 0
	}
	return NodeIndex(t.shape.Rank1(start)), end - start
}

// Child returns the child of v reached by label c.
func (t *Trie) Child(v NodeIndex, c rune) (NodeIndex, bool) {
	first, n := t.children(v)
	if n == 0 {
		return 0, false
	}
	labels := t.labels[first : int(first)+n]
	i := sort.Search(n, func(i int) bool { return labels[i] >= c })
	if i < n && labels[i] == c {
		return first + NodeIndex(i), true
	}
	return 0, false
}

// Parent returns the parent of v, or -1 for the root.
func (t *Trie) Parent(v NodeIndex) NodeIndex {
	if v <= Root {
		return -1
	}
	return NodeIndex(t.shape.Rank0(t.shape.Select1(int(v))) - 1)
}

// Label returns the edge label leading into v.
func (t *Trie) Label(v NodeIndex) rune { return t.labels[v] }

// IsTerminal reports whether v ends a stored key.
func (t *Trie) IsTerminal(v NodeIndex) bool { return t.leaf.Get(int(v)) }

// TermID returns the dense id of terminal node v.
// The result is meaningless for non-terminal nodes; guard with IsTerminal.
func (t *Trie) TermID(v NodeIndex) TermID { return TermID(t.leaf.Rank1(int(v))) }

// NodeIndex descends by the runes of key.
func (t *Trie) NodeIndex(key string) (NodeIndex, bool) {
	v := Root
	for _, c := range key {
		next, ok := t.Child(v, c)
		if !ok {
			return 0, false
		}
		v = next
	}
	return v, true
}

// CommonPrefixSearch returns every stored key that is a prefix of key,
// ascending by length.
func (t *Trie) CommonPrefixSearch(key string) []Match {
	var out []Match
	v := Root
	n := 0
	for i, c := range key {
		next, ok := t.Child(v, c)
		if !ok {
			break
		}
		v = next
		n++
		if t.IsTerminal(v) {
			end := i + utf8.RuneLen(c)
			out = append(out, Match{Key: key[:end], Length: n, Node: v})
		}
	}
	return out
}

// PredictiveSearch returns stored keys that start with key in breadth-first
// order (shorter first). limit <= 0 means no limit.
func (t *Trie) PredictiveSearch(key string, limit int) []Match {
	start, ok := t.NodeIndex(key)
	if !ok {
		return nil
	}

	type item struct {
		node   NodeIndex
		prefix string
		length int
	}

	var out []Match
	queue := []item{{start, key, utf8.RuneCountInString(key)}}
	for head := 0; head < len(queue); head++ {
		it := queue[head]
		if t.IsTerminal(it.node) {
			out = append(out, Match{Key: it.prefix, Length: it.length, Node: it.node})
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
		first, n := t.children(it.node)
		for i := 0; i < n; i++ {
			child := first + NodeIndex(i)
			queue = append(queue, item{child, it.prefix + string(t.labels[child]), it.length + 1})
		}
		queue[head] = item{}
	}
	return out
}

// Letter decodes the text spelled by the path from the root to v.
func (t *Trie) Letter(v NodeIndex) string {
	if v <= Root || int(v) >= len(t.labels) {
		return ""
	}
	var rs []rune
	for ; v > Root; v = t.Parent(v) {
		rs = append(rs, t.labels[v])
	}
	slices.Reverse(rs)
	return string(rs)
}

// MarshalBinary encodes the trie as [shape][leaf][count uint32][labels uint32...].
func (t *Trie) MarshalBinary() ([]byte, error) {
	shape, err := t.shape.MarshalBinary()
	if err != nil {
		return nil, err
	}
	leaf, err := t.leaf.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(shape)+len(leaf)+4+4*len(t.labels))
	buf = append(buf, shape...)
	buf = append(buf, leaf...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.labels)))
	for _, r := range t.labels {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r))
	}
	return buf, nil
}

// Unmarshal decodes a trie written by MarshalBinary.
func Unmarshal(data []byte) (*Trie, error) {
	shape, rest, err := bitvector.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("louds: shape: %w", err)
	}
	leaf, rest, err := bitvector.Decode(rest)
	if err != nil {
		return nil, fmt.Errorf("louds: terminals: %w", err)
	}
	if len(rest) < 4 {
		return nil, fmt.Errorf("louds: %w: missing label count", bitvector.ErrMalformed)
	}
	count := int(binary.LittleEndian.Uint32(rest))
	rest = rest[4:]
	if len(rest) != 4*count {
		return nil, fmt.Errorf("louds: %w: %d labels need %d bytes, have %d", bitvector.ErrMalformed, count, 4*count, len(rest))
	}
	if count != leaf.Len() || count != shape.Ones() || shape.Len() != 2*count+1 {
		return nil, fmt.Errorf("louds: %w: inconsistent sizes (nodes=%d terminals=%d shape=%d)", bitvector.ErrMalformed, count, leaf.Len(), shape.Len())
	}

	labels := make([]rune, count)
	for i := range labels {
		labels[i] = rune(binary.LittleEndian.Uint32(rest[4*i:]))
	}
	return &Trie{shape: shape, leaf: leaf, labels: labels}, nil
}
