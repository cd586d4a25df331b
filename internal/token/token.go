// Package token stores the per-term token lists of a dictionary.
//
// Each reading's TermID maps to a contiguous run of tokens. Runs are delimited
// by a unary coded bit vector ("1" followed by one "0" per token for every
// term, plus a closing "1"), resolved with Select1.
package token

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/henkan/internal/bitvector"
	"github.com/hupe1980/henkan/internal/louds"
)

// ErrCorrupt is returned when an encoded table or POS table is inconsistent.
var ErrCorrupt = errors.New("token: corrupt table")

// OutputKind tags how a token's surface text is produced.
type OutputKind uint8

const (
	// OutputLiteral reads the surface from the word trie.
	OutputLiteral OutputKind = iota
	// OutputEchoReading uses the reading itself as the surface.
	OutputEchoReading
	// OutputEchoKatakana uses the katakana form of the reading.
	OutputEchoKatakana
)

func (k OutputKind) String() string {
	switch k {
	case OutputLiteral:
		return "literal"
	case OutputEchoReading:
		return "echo-reading"
	case OutputEchoKatakana:
		return "echo-katakana"
	default:
		return fmt.Sprintf("OutputKind(%d)", uint8(k))
	}
}

// OutputRef says where a token's surface comes from.
// Node is only meaningful for OutputLiteral.
type OutputRef struct {
	Kind OutputKind
	Node louds.NodeIndex
}

// Literal refers to a node in the word trie.
func Literal(node louds.NodeIndex) OutputRef {
	return OutputRef{Kind: OutputLiteral, Node: node}
}

// EchoReading makes the surface equal to the reading.
func EchoReading() OutputRef { return OutputRef{Kind: OutputEchoReading} }

// EchoKatakana makes the surface the katakana form of the reading.
func EchoKatakana() OutputRef { return OutputRef{Kind: OutputEchoKatakana} }

// Token is one dictionary entry for a reading.
type Token struct {
	Output   OutputRef
	WordCost int16
	LeftID   int16
	RightID  int16
	POSIndex int
}

const recordSize = 2 + 4 + 1 + 4

// Table maps term ids to their tokens. Immutable and safe for concurrent use.
type Table struct {
	ranges *bitvector.Vector
	costs  []int16
	pos    []uint32
	kinds  []OutputKind
	nodes  []uint32
	posTab *POSTable
}

// NumTerms returns the number of term ids covered by the table.
func (t *Table) NumTerms() int { return t.ranges.Ones() - 1 }

// Len returns the total number of tokens.
func (t *Table) Len() int { return len(t.costs) }

// POS returns the POS table the tokens refer to.
func (t *Table) POS() *POSTable { return t.posTab }

// Range returns the first token index and token count for id.
func (t *Table) Range(id louds.TermID) (int, int) {
	if id < 0 || int(id) >= t.NumTerms() {
		return 0, 0
	}
	p := t.ranges.Select1(int(id))
	q := t.ranges.Select1(int(id) + 1)
	return p - int(id), q - p - 1
}

// At returns the token stored at table index i.
func (t *Table) At(i int) Token {
	entry := t.posTab.At(int(t.pos[i]))
	return Token{
		Output:   OutputRef{Kind: t.kinds[i], Node: louds.NodeIndex(t.nodes[i])},
		WordCost: t.costs[i],
		LeftID:   entry.LeftID,
		RightID:  entry.RightID,
		POSIndex: int(t.pos[i]),
	}
}

// Tokens returns the tokens for id, or nil when id has none.
func (t *Table) Tokens(id louds.TermID) []Token {
	start, n := t.Range(id)
	if n == 0 {
		return nil
	}
	out := make([]Token, n)
	for i := range out {
		out[i] = t.At(start + i)
	}
	return out
}

// MarshalBinary encodes the table. The POS table is encoded separately.
func (t *Table) MarshalBinary() ([]byte, error) {
	ranges, err := t.ranges.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(ranges)+4+recordSize*len(t.costs))
	buf = append(buf, ranges...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.costs)))
	for i := range t.costs {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(t.costs[i]))
		buf = binary.LittleEndian.AppendUint32(buf, t.pos[i])
		buf = append(buf, byte(t.kinds[i]))
		buf = binary.LittleEndian.AppendUint32(buf, t.nodes[i])
	}
	return buf, nil
}

// Unmarshal decodes a table and binds it to pos.
func Unmarshal(data []byte, pos *POSTable) (*Table, error) {
	ranges, rest, err := bitvector.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("token: ranges: %w", err)
	}
	if len(rest) < 4 {
		return nil, fmt.Errorf("%w: missing token count", ErrCorrupt)
	}
	n := int(binary.LittleEndian.Uint32(rest))
	rest = rest[4:]
	if len(rest) != n*recordSize {
		return nil, fmt.Errorf("%w: %d tokens need %d bytes, have %d", ErrCorrupt, n, n*recordSize, len(rest))
	}
	if ranges.Len()-ranges.Ones() != n || ranges.Ones() == 0 || !ranges.Get(ranges.Len()-1) {
		return nil, fmt.Errorf("%w: range vector does not match %d tokens", ErrCorrupt, n)
	}

	t := &Table{
		ranges: ranges,
		costs:  make([]int16, n),
		pos:    make([]uint32, n),
		kinds:  make([]OutputKind, n),
		nodes:  make([]uint32, n),
		posTab: pos,
	}
	for i := 0; i < n; i++ {
		r := rest[i*recordSize:]
		t.costs[i] = int16(binary.LittleEndian.Uint16(r))
		t.pos[i] = binary.LittleEndian.Uint32(r[2:])
		t.kinds[i] = OutputKind(r[6])
		t.nodes[i] = binary.LittleEndian.Uint32(r[7:])
		if int(t.pos[i]) >= pos.Len() {
			return nil, fmt.Errorf("%w: token %d refers to POS %d of %d", ErrCorrupt, i, t.pos[i], pos.Len())
		}
		if t.kinds[i] > OutputEchoKatakana {
			return nil, fmt.Errorf("%w: token %d has output kind %d", ErrCorrupt, i, t.kinds[i])
		}
	}
	return t, nil
}

type pending struct {
	out  OutputRef
	cost int16
	pos  int
}

// Builder collects tokens per term id.
type Builder struct {
	pos   *POSTable
	terms [][]pending
}

// NewBuilder creates a builder for numTerms term ids sharing pos.
func NewBuilder(numTerms int, pos *POSTable) *Builder {
	return &Builder{pos: pos, terms: make([][]pending, numTerms)}
}

// Add appends a token to id.
func (b *Builder) Add(id louds.TermID, out OutputRef, cost, leftID, rightID int16) {
	b.terms[id] = append(b.terms[id], pending{
		out:  out,
		cost: cost,
		pos:  b.pos.Intern(leftID, rightID),
	})
}

// Build freezes the table. Tokens of one term are ordered by cost.
func (b *Builder) Build() *Table {
	ranges := bitvector.NewBuilder()
	t := &Table{posTab: b.pos}
	for _, toks := range b.terms {
		sort.SliceStable(toks, func(i, j int) bool { return toks[i].cost < toks[j].cost })
		ranges.Append(true)
		ranges.AppendN(false, len(toks))
		for _, p := range toks {
			t.costs = append(t.costs, p.cost)
			t.pos = append(t.pos, uint32(p.pos))
			t.kinds = append(t.kinds, p.out.Kind)
			t.nodes = append(t.nodes, uint32(p.out.Node))
		}
	}
	ranges.Append(true)
	t.ranges = ranges.Build()
	return t
}
