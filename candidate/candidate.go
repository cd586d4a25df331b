// Package candidate defines the conversion result consumed by rendering and
// learning layers.
package candidate

import (
	"cmp"
	"fmt"
	"slices"
)

// Category tags where a candidate came from. The numeric values are part of
// the wire format.
type Category uint8

const (
	Kanji Category = iota
	Hiragana
	Katakana
	Predictive
	SingleKanji
	Emoji
	Emoticon
	Symbol
	ReadingCorrection
	Proverb
	HalfWidthSymbol
	UserDictionary
	Template
	NumeralVariant
	Date
)

var categoryNames = [...]string{
	Kanji:             "kanji",
	Hiragana:          "hiragana",
	Katakana:          "katakana",
	Predictive:        "predictive",
	SingleKanji:       "single-kanji",
	Emoji:             "emoji",
	Emoticon:          "emoticon",
	Symbol:            "symbol",
	ReadingCorrection: "reading-correction",
	Proverb:           "proverb",
	HalfWidthSymbol:   "half-width-symbol",
	UserDictionary:    "user-dictionary",
	Template:          "template",
	NumeralVariant:    "numeral-variants",
	Date:              "date",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Candidate is one conversion result. It is a plain value.
type Candidate struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	// Length is the number of input runes the candidate consumes.
	Length  int   `json:"length"`
	Score   int   `json:"score"`
	LeftID  int16 `json:"left_id"`
	RightID int16 `json:"right_id"`
}

// Compare orders candidates by score, then text.
func Compare(a, b Candidate) int {
	if c := cmp.Compare(a.Score, b.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Text, b.Text)
}

// Sort orders cs by (score, text) ascending.
func Sort(cs []Candidate) {
	slices.SortStableFunc(cs, Compare)
}

// Dedupe drops candidates whose text already appeared earlier in cs.
// The input slice is reused.
func Dedupe(cs []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(cs))
	out := cs[:0]
	for _, c := range cs {
		if _, ok := seen[c.Text]; ok {
			continue
		}
		seen[c.Text] = struct{}{}
		out = append(out, c)
	}
	return out
}
