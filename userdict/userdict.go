// Package userdict provides the read interface the engine uses to consult
// user and learned dictionaries, plus an in-memory implementation.
//
// The engine only ever asks "which entries have a reading equal to, or a
// prefix of, this string". Persistence is left to the caller; see the
// dynamodb subpackage for a DynamoDB-backed store.
package userdict

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/codec"
	"github.com/hupe1980/henkan/internal/kana"
)

// Kind distinguishes plain words from templates.
type Kind uint8

const (
	KindWord Kind = iota
	KindTemplate
)

// Entry is one user or learned dictionary record.
type Entry struct {
	Reading string `json:"reading"`
	Surface string `json:"surface"`
	LeftID  int16  `json:"left_id"`
	RightID int16  `json:"right_id"`
	Cost    int16  `json:"cost"`
	Kind    Kind   `json:"kind,omitempty"`
}

// Repository is consulted by the lattice builder.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Lookup returns entries whose reading equals or is a prefix of reading.
	Lookup(reading string) []Entry
}

// Predictor is implemented by repositories that support prefix completion.
type Predictor interface {
	// Predict returns up to limit entries whose reading starts with prefix.
	Predict(prefix string, limit int) []Entry
}

// Empty is a Repository with no entries.
type Empty struct{}

// Lookup implements Repository.
func (Empty) Lookup(string) []Entry { return nil }

// LearnConfig tunes how Learn adjusts costs.
type LearnConfig struct {
	// InitialCost is assigned to a newly learned entry.
	InitialCost int16
	// Step is subtracted from the cost each time an entry is learned again.
	Step int16
	// MinCost bounds the cost from below.
	MinCost int16
}

// DefaultLearnConfig returns the default learning parameters.
func DefaultLearnConfig() LearnConfig {
	return LearnConfig{InitialCost: 3000, Step: 500, MinCost: -500}
}

// Memory is an in-memory Repository keyed by normalized reading.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	learn   LearnConfig
}

// NewMemory creates an empty Memory repository.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string][]Entry),
		learn:   DefaultLearnConfig(),
	}
}

// SetLearnConfig replaces the learning parameters.
func (m *Memory) SetLearnConfig(cfg LearnConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.learn = cfg
}

// NormalizeReading folds width variants and katakana to hiragana.
func NormalizeReading(s string) string {
	return kana.ToHiragana(kana.Normalize(s))
}

// Add inserts or replaces the entry with the same reading and surface.
func (m *Memory) Add(e Entry) {
	e.Reading = NormalizeReading(e.Reading)
	if e.Reading == "" || e.Surface == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(e)
}

func (m *Memory) put(e Entry) {
	list := m.entries[e.Reading]
	for i := range list {
		if list[i].Surface == e.Surface {
			list[i] = e
			return
		}
	}
	m.entries[e.Reading] = append(list, e)
}

// Remove deletes the entry with the given reading and surface.
func (m *Memory) Remove(reading, surface string) bool {
	reading = NormalizeReading(reading)

	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.entries[reading]
	for i := range list {
		if list[i].Surface == surface {
			list = slices.Delete(list, i, i+1)
			if len(list) == 0 {
				delete(m.entries, reading)
			} else {
				m.entries[reading] = list
			}
			return true
		}
	}
	return false
}

// Learn records that the user committed c for reading. A new entry starts at
// the initial cost; a known entry becomes cheaper by one step.
func (m *Memory) Learn(reading string, c candidate.Candidate) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.learned(reading, c)
	m.put(e)
	return e
}

// Learned returns the entry Learn would store, without storing it.
func (m *Memory) Learned(reading string, c candidate.Candidate) Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.learned(reading, c)
}

func (m *Memory) learned(reading string, c candidate.Candidate) Entry {
	reading = NormalizeReading(reading)
	e := Entry{
		Reading: reading,
		Surface: c.Text,
		LeftID:  c.LeftID,
		RightID: c.RightID,
		Cost:    m.learn.InitialCost,
	}
	for _, old := range m.entries[reading] {
		if old.Surface == c.Text {
			e.Cost = max(old.Cost-m.learn.Step, m.learn.MinCost)
			e.Kind = old.Kind
			break
		}
	}
	return e
}

// Prefix is the normalized form of a query prefix and the number of query
// runes it spans.
type Prefix struct {
	Reading string
	Runes   int
}

// Prefixes normalizes every non-empty rune prefix of s, shortest first.
// Prefixes normalizing to an already seen reading are skipped. Each prefix is
// normalized on its own because NFKC may merge runes across the cut.
func Prefixes(s string) []Prefix {
	var out []Prefix
	seen := make(map[string]bool)
	runes := 0
	for i := range s {
		if i > 0 {
			runes++
			out = appendPrefix(out, seen, s[:i], runes)
		}
	}
	if s != "" {
		out = appendPrefix(out, seen, s, runes+1)
	}
	return out
}

func appendPrefix(out []Prefix, seen map[string]bool, raw string, runes int) []Prefix {
	r := NormalizeReading(raw)
	if r == "" || seen[r] {
		return out
	}
	seen[r] = true
	return append(out, Prefix{Reading: r, Runes: runes})
}

// Lookup implements Repository. Both the query prefixes and the stored
// readings are compared in NormalizeReading form.
func (m *Memory) Lookup(reading string) []Entry {
	prefixes := Prefixes(reading)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Entry
	for _, p := range prefixes {
		out = append(out, m.entries[p.Reading]...)
	}
	return out
}

// Predict implements Predictor. Results are ordered by reading length, then cost.
func (m *Memory) Predict(prefix string, limit int) []Entry {
	prefix = NormalizeReading(prefix)

	m.mu.RLock()
	var out []Entry
	for reading, list := range m.entries {
		if strings.HasPrefix(reading, prefix) {
			out = append(out, list...)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, compareEntries)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, list := range m.entries {
		n += len(list)
	}
	return n
}

// Entries returns a sorted snapshot of all entries.
func (m *Memory) Entries() []Entry {
	m.mu.RLock()
	out := make([]Entry, 0, len(m.entries))
	for _, list := range m.entries {
		out = append(out, list...)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, compareEntries)
	return out
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(utf8.RuneCountInString(a.Reading), utf8.RuneCountInString(b.Reading)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Reading, b.Reading); c != 0 {
		return c
	}
	return cmp.Compare(a.Surface, b.Surface)
}

// Export encodes all entries with c (codec.Default when nil).
func (m *Memory) Export(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(m.Entries())
}

// Import decodes entries produced by Export and adds them.
func (m *Memory) Import(c codec.Codec, data []byte) error {
	if c == nil {
		c = codec.Default
	}
	var entries []Entry
	if err := c.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, e := range entries {
		m.Add(e)
	}
	return nil
}
