package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/henkan/internal/kana"
	"github.com/hupe1980/henkan/internal/louds"
	"github.com/hupe1980/henkan/internal/token"
)

// ErrInvalidWord is returned for entries with an empty reading or surface.
var ErrInvalidWord = errors.New("dictionary: invalid word")

// Builder collects words and compiles them into a Dictionary.
type Builder struct {
	name  string
	pos   *POSTable
	words []Word
}

// NewBuilder creates a builder for the dictionary name. Dictionaries that
// share pos agree on POS numbering.
func NewBuilder(name string, pos *POSTable) *Builder {
	if pos == nil {
		pos = NewPOSTable()
	}
	return &Builder{name: name, pos: pos}
}

// Add appends one word.
func (b *Builder) Add(w Word) error {
	if w.Reading == "" || w.Surface == "" {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidWord, w.Reading, w.Surface)
	}
	b.words = append(b.words, w)
	return nil
}

// AddAll appends words, stopping at the first invalid one.
func (b *Builder) AddAll(words []Word) error {
	for _, w := range words {
		if err := b.Add(w); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of words added so far.
func (b *Builder) Len() int { return len(b.words) }

// Build compiles the dictionary. Surfaces equal to the reading, or to its
// katakana form, are stored as echoes instead of word-trie entries.
func (b *Builder) Build() (*Dictionary, error) {
	readings := make([]string, 0, len(b.words))
	var literals []string
	outputs := make([]token.OutputKind, len(b.words))
	for i, w := range b.words {
		readings = append(readings, w.Reading)
		switch {
		case w.Surface == w.Reading:
			outputs[i] = token.OutputEchoReading
		case w.Surface == kana.ToKatakana(w.Reading):
			outputs[i] = token.OutputEchoKatakana
		default:
			outputs[i] = token.OutputLiteral
			literals = append(literals, w.Surface)
		}
	}

	reading, readingNodes := louds.Build(readings)
	word, wordNodes := louds.Build(literals)

	tb := token.NewBuilder(reading.NumTerms(), b.pos)
	for i, w := range b.words {
		id := reading.TermID(readingNodes[w.Reading])
		var out token.OutputRef
		switch outputs[i] {
		case token.OutputEchoReading:
			out = token.EchoReading()
		case token.OutputEchoKatakana:
			out = token.EchoKatakana()
		default:
			out = token.Literal(wordNodes[w.Surface])
		}
		tb.Add(id, out, w.Cost, w.LeftID, w.RightID)
	}

	d := &Dictionary{
		Name:    b.name,
		Reading: reading,
		Word:    word,
		Tokens:  tb.Build(),
	}
	arts, err := encode(d)
	if err != nil {
		return nil, err
	}
	d.size = int64(len(arts.reading) + len(arts.word) + len(arts.tokens))
	return d, nil
}

// ReadTSV parses word lists in the tab-separated form
//
//	reading <TAB> left id <TAB> right id <TAB> cost <TAB> surface
//
// Blank lines and lines starting with '#' are skipped; extra columns are ignored.
func ReadTSV(r io.Reader) ([]Word, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var words []Word
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("dictionary: line %d: expected 5 fields, got %d", line, len(fields))
		}

		var ids [3]int16
		for i, f := range fields[1:4] {
			v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 16)
			if err != nil {
				return nil, fmt.Errorf("dictionary: line %d: %w", line, err)
			}
			ids[i] = int16(v)
		}
		w := Word{
			Reading: fields[0],
			LeftID:  ids[0],
			RightID: ids[1],
			Cost:    ids[2],
			Surface: fields[4],
		}
		if w.Reading == "" || w.Surface == "" {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidWord, line)
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
