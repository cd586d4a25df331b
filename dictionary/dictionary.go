// Package dictionary bundles the succinct tries and token table that make up
// one conversion dictionary, and reads and writes them in the store layout
// the engine loads from.
//
// A Dictionary is immutable once built or loaded and safe for concurrent use.
package dictionary

import (
	"github.com/hupe1980/henkan/internal/connection"
	"github.com/hupe1980/henkan/internal/kana"
	"github.com/hupe1980/henkan/internal/louds"
	"github.com/hupe1980/henkan/internal/token"
)

type (
	// POSTable maps POS indexes to connection ids. Dictionaries built against
	// the same table share it.
	POSTable = token.POSTable
	// Matrix is the connection cost matrix.
	Matrix = connection.Matrix
)

// NewPOSTable creates an empty POS table for building dictionaries.
func NewPOSTable() *POSTable { return token.NewPOSTable() }

// NewMatrix creates a zero-filled connection matrix.
func NewMatrix(rows, cols int) *Matrix { return connection.New(rows, cols) }

// Word is one resolved dictionary entry.
type Word struct {
	Reading string
	Surface string
	LeftID  int16
	RightID int16
	Cost    int16
}

// Hit groups the words stored under one reading found by a search.
type Hit struct {
	Reading string
	// Length is the reading length in runes.
	Length int
	Words  []Word
}

// Dictionary is a reading trie, a word trie and the token table joining them.
type Dictionary struct {
	Name    string
	Reading *louds.Trie
	Word    *louds.Trie
	Tokens  *token.Table

	size int64
}

// POS returns the POS table the tokens refer to.
func (d *Dictionary) POS() *POSTable { return d.Tokens.POS() }

// Size returns the encoded size of the dictionary in bytes. The engine uses
// it to account optional dictionaries against its memory budget.
func (d *Dictionary) Size() int64 { return d.size }

// Len returns the number of tokens.
func (d *Dictionary) Len() int { return d.Tokens.Len() }

// Surface resolves the output text of t stored under reading.
func (d *Dictionary) Surface(reading string, t token.Token) string {
	switch t.Output.Kind {
	case token.OutputEchoReading:
		return reading
	case token.OutputEchoKatakana:
		return kana.ToKatakana(reading)
	default:
		return d.Word.Letter(t.Output.Node)
	}
}

func (d *Dictionary) words(m louds.Match) []Word {
	if !d.Reading.IsTerminal(m.Node) {
		return nil
	}
	toks := d.Tokens.Tokens(d.Reading.TermID(m.Node))
	if len(toks) == 0 {
		return nil
	}
	out := make([]Word, len(toks))
	for i, t := range toks {
		out[i] = Word{
			Reading: m.Key,
			Surface: d.Surface(m.Key, t),
			LeftID:  t.LeftID,
			RightID: t.RightID,
			Cost:    t.WordCost,
		}
	}
	return out
}

func (d *Dictionary) hits(ms []louds.Match) []Hit {
	if len(ms) == 0 {
		return nil
	}
	out := make([]Hit, 0, len(ms))
	for _, m := range ms {
		if ws := d.words(m); len(ws) > 0 {
			out = append(out, Hit{Reading: m.Key, Length: m.Length, Words: ws})
		}
	}
	return out
}

// Lookup returns the words stored under exactly reading, cheapest first.
func (d *Dictionary) Lookup(reading string) []Word {
	v, ok := d.Reading.NodeIndex(reading)
	if !ok || v == louds.Root {
		return nil
	}
	return d.words(louds.Match{Key: reading, Node: v})
}

// Prefixes returns the readings that are prefixes of key, shortest first.
func (d *Dictionary) Prefixes(key string) []Hit {
	return d.hits(d.Reading.CommonPrefixSearch(key))
}

// Predict returns up to limit readings starting with prefix, shortest first.
// limit <= 0 means no limit.
func (d *Dictionary) Predict(prefix string, limit int) []Hit {
	if prefix == "" {
		return nil
	}
	return d.hits(d.Reading.PredictiveSearch(prefix, limit))
}
