// Package louds implements a static trie encoded with the Level-Order Unary
// Degree Sequence.
//
// The shape is a single bit vector: a "10" super root followed by, for every
// node in breadth-first order, one 1 per child and a terminating 0. Node ids
// are breadth-first positions (root = 0), so they are dense and stable. Edge
// labels are stored per node id. A second bit vector flags terminal nodes;
// its rank gives each complete key a dense TermID.
//
// The same type serves both the reading trie (keyed by kana, joined to the
// token table through TermID) and the word trie (whose nodes are decoded
// back to text with Letter).
package louds
