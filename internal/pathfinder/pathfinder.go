// Package pathfinder finds the N cheapest segmentations of a lattice.
//
// A forward pass computes, for every node, the cheapest cost of reaching it
// from the beginning of the input. A backward A* search from the end then
// uses those costs as an exact heuristic, so complete paths come out in
// ascending total cost.
package pathfinder

import (
	"math"
	"strings"

	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/internal/lattice"
	"github.com/hupe1980/henkan/internal/queue"
)

// BoundaryID is the connection id of the beginning and end of a sentence.
const BoundaryID int16 = 0

// DefaultMaxExpansions bounds the number of partial paths popped per search.
const DefaultMaxExpansions = 50000

const unreachable = math.MaxInt

// Connector yields connection costs.
type Connector interface {
	Cost(rightID, leftID int16) int16
}

// Finder runs N-best searches against one connection matrix.
// It holds no per-query state and is safe for concurrent use.
type Finder struct {
	conn          Connector
	maxExpansions int
}

// New creates a Finder. maxExpansions <= 0 selects DefaultMaxExpansions.
func New(conn Connector, maxExpansions int) *Finder {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	return &Finder{conn: conn, maxExpansions: maxExpansions}
}

// state is a partial path from node to the end of the input.
type state struct {
	node int
	// suffix is the cost of everything after node, including the final
	// connection to the end boundary.
	suffix int
	next   int // index of the following state, -1 at the end
}

// Forward returns the cheapest cost of reaching each node, word cost
// included. Nodes not reachable from the start are math.MaxInt.
func (f *Finder) Forward(l *lattice.Lattice) []int {
	best := make([]int, l.NumNodes())
	for i := range best {
		best[i] = unreachable
	}

	for pos := 0; pos < l.Len(); pos++ {
		for _, i := range l.StartingAt(pos) {
			n := l.Node(i)
			if pos == 0 {
				best[i] = int(f.conn.Cost(BoundaryID, n.LeftID)) + int(n.WordCost)
				continue
			}
			min := unreachable
			for _, j := range l.EndingAt(pos) {
				if best[j] == unreachable {
					continue
				}
				c := best[j] + int(f.conn.Cost(l.Node(j).RightID, n.LeftID))
				if c < min {
					min = c
				}
			}
			if min != unreachable {
				best[i] = min + int(n.WordCost)
			}
		}
	}
	return best
}

// Find returns up to n candidates for the full input, sorted by score and
// then text. Paths producing the same text are collapsed to the cheapest.
// An input without any complete path yields an empty result.
func (f *Finder) Find(l *lattice.Lattice, n int) []candidate.Candidate {
	if n <= 0 || l.Len() == 0 {
		return nil
	}
	best := f.Forward(l)

	var states []state
	pq := queue.NewMin(64)
	for _, i := range l.EndingAt(l.Len()) {
		if best[i] == unreachable {
			continue
		}
		suffix := int(f.conn.Cost(l.Node(i).RightID, BoundaryID))
		states = append(states, state{node: i, suffix: suffix, next: -1})
		pq.Push(len(states)-1, best[i]+suffix)
	}

	seen := make(map[string]struct{}, n)
	out := make([]candidate.Candidate, 0, n)
	// Once n texts are collected, completions tied with the n-th score are
	// still drained so the text order decides the cut.
	cutoff := unreachable
	for pops := 0; pops < f.maxExpansions; pops++ {
		top, ok := pq.Top()
		if !ok || (len(out) >= n && top.Priority > cutoff) {
			break
		}
		item, _ := pq.Pop()
		s := states[item.Value]
		node := l.Node(s.node)

		if node.Start == 0 {
			c := f.complete(l, states, item.Value, item.Priority)
			if _, dup := seen[c.Text]; !dup {
				seen[c.Text] = struct{}{}
				out = append(out, c)
				if len(out) == n {
					cutoff = c.Score
				}
			}
			continue
		}

		suffix := s.suffix + int(node.WordCost)
		for _, j := range l.EndingAt(node.Start) {
			if best[j] == unreachable {
				continue
			}
			g := suffix + int(f.conn.Cost(l.Node(j).RightID, node.LeftID))
			states = append(states, state{node: j, suffix: g, next: item.Value})
			pq.Push(len(states)-1, best[j]+g)
		}
	}

	candidate.Sort(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (f *Finder) complete(l *lattice.Lattice, states []state, head, score int) candidate.Candidate {
	var b strings.Builder
	first := l.Node(states[head].node)
	last := first
	for i := head; i >= 0; i = states[i].next {
		last = l.Node(states[i].node)
		b.WriteString(last.Surface)
	}
	return candidate.Candidate{
		Text:     b.String(),
		Category: candidate.Kanji,
		Length:   l.Len(),
		Score:    score,
		LeftID:   first.LeftID,
		RightID:  last.RightID,
	}
}
