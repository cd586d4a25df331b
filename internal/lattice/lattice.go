// Package lattice builds the word lattice of a reading: every dictionary
// entry that matches a span of the input becomes a node, and a one-rune
// fallback node fills positions no entry starts at.
package lattice

import (
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/userdict"
)

// Source says where a node came from.
type Source uint8

const (
	SourceSystem Source = iota
	SourceUser
	SourceLearned
	SourceUnknown
)

func (s Source) String() string {
	switch s {
	case SourceSystem:
		return "system"
	case SourceUser:
		return "user"
	case SourceLearned:
		return "learned"
	case SourceUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Node is one morpheme candidate spanning input runes [Start, End).
type Node struct {
	Start    int
	End      int
	Reading  string
	Surface  string
	WordCost int16
	LeftID   int16
	RightID  int16
	Source   Source
}

// Lattice is the per-query node graph. Offsets are in runes.
type Lattice struct {
	input   string
	length  int
	nodes   []Node
	byStart [][]int
	byEnd   [][]int
}

// Input returns the reading the lattice was built for.
func (l *Lattice) Input() string { return l.input }

// Len returns the input length in runes.
func (l *Lattice) Len() int { return l.length }

// NumNodes returns the number of nodes.
func (l *Lattice) NumNodes() int { return len(l.nodes) }

// Node returns node i.
func (l *Lattice) Node(i int) *Node { return &l.nodes[i] }

// StartingAt returns the indexes of nodes starting at pos.
func (l *Lattice) StartingAt(pos int) []int {
	if pos < 0 || pos >= len(l.byStart) {
		return nil
	}
	return l.byStart[pos]
}

// EndingAt returns the indexes of nodes ending at pos.
func (l *Lattice) EndingAt(pos int) []int {
	if pos < 0 || pos >= len(l.byEnd) {
		return nil
	}
	return l.byEnd[pos]
}

func (l *Lattice) add(n Node) {
	i := len(l.nodes)
	l.nodes = append(l.nodes, n)
	l.byStart[n.Start] = append(l.byStart[n.Start], i)
	l.byEnd[n.End] = append(l.byEnd[n.End], i)
}

// Options configures Build.
type Options struct {
	// User and Learned are consulted in addition to the system dictionary.
	User    userdict.Repository
	Learned userdict.Repository
	// UnknownWordCost is the cost of a one-rune fallback node.
	UnknownWordCost int16
	// UnknownID is the connection id of fallback nodes.
	UnknownID int16
}

// Build creates the lattice of input over dict. dict may be nil, in which
// case only repository entries and fallback nodes are added.
func Build(input string, dict *dictionary.Dictionary, opts Options) *Lattice {
	n := utf8.RuneCountInString(input)
	l := &Lattice{
		input:   input,
		length:  n,
		byStart: make([][]int, n+1),
		byEnd:   make([][]int, n+1),
	}
	if n == 0 {
		return l
	}

	// offsets[i] is the byte offset of rune i.
	offsets := make([]int, 0, n+1)
	for i := range input {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(input))

	reachable := roaring.New()
	reachable.Add(0)

	for start := 0; start < n; start++ {
		suffix := input[offsets[start]:]
		before := len(l.nodes)

		if dict != nil {
			for _, hit := range dict.Prefixes(suffix) {
				for _, w := range hit.Words {
					l.add(Node{
						Start:    start,
						End:      start + hit.Length,
						Reading:  w.Reading,
						Surface:  w.Surface,
						WordCost: w.Cost,
						LeftID:   w.LeftID,
						RightID:  w.RightID,
						Source:   SourceSystem,
					})
				}
			}
		}
		l.addEntries(start, suffix, opts.User, SourceUser)
		l.addEntries(start, suffix, opts.Learned, SourceLearned)

		if len(l.nodes) == before && reachable.Contains(uint32(start)) {
			l.add(Node{
				Start:    start,
				End:      start + 1,
				Reading:  input[offsets[start]:offsets[start+1]],
				Surface:  input[offsets[start]:offsets[start+1]],
				WordCost: opts.UnknownWordCost,
				LeftID:   opts.UnknownID,
				RightID:  opts.UnknownID,
				Source:   SourceUnknown,
			})
		}
		for _, i := range l.byStart[start] {
			reachable.Add(uint32(l.nodes[i].End))
		}
	}
	return l
}

func (l *Lattice) addEntries(start int, suffix string, repo userdict.Repository, src Source) {
	if repo == nil {
		return
	}
	span := make(map[string]int)
	for _, p := range userdict.Prefixes(suffix) {
		span[p.Reading] = p.Runes
	}
	for _, e := range repo.Lookup(suffix) {
		if e.Surface == "" || e.Kind == userdict.KindTemplate {
			continue
		}
		runes, ok := span[e.Reading]
		if !ok {
			continue
		}
		end := start + runes
		if end > l.length {
			continue
		}
		l.add(Node{
			Start:    start,
			End:      end,
			Reading:  e.Reading,
			Surface:  e.Surface,
			WordCost: e.Cost,
			LeftID:   e.LeftID,
			RightID:  e.RightID,
			Source:   src,
		})
	}
}
