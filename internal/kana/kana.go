// Package kana converts between kana scripts, character widths and numeral
// notations.
package kana

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	hiraganaFirst = 'ぁ'
	hiraganaLast  = 'ゖ'
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	kanaOffset    = katakanaFirst - hiraganaFirst
)

// ToKatakana converts hiragana in s to katakana. Other runes are kept.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
			return r + kanaOffset
		case r == 'ゝ' || r == 'ゞ':
			return r + kanaOffset
		}
		return r
	}, s)
}

// ToHiragana converts katakana in s to hiragana. Other runes are kept.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= katakanaFirst && r <= katakanaLast:
			return r - kanaOffset
		case r == 'ヽ' || r == 'ヾ':
			return r - kanaOffset
		}
		return r
	}, s)
}

// IsHiragana reports whether every rune of s is hiragana or the prolonged
// sound mark.
func IsHiragana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= hiraganaFirst && r <= hiraganaLast) && r != 'ー' && r != 'ゝ' && r != 'ゞ' {
			return false
		}
	}
	return true
}

// IsNumeric reports whether s consists only of ASCII or full-width digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9') && !(r >= '０' && r <= '９') {
			return false
		}
	}
	return true
}

// IsSymbolOnly reports whether s consists only of punctuation and symbols.
func IsSymbolOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// FullWidth widens ASCII and half-width characters.
func FullWidth(s string) string { return width.Widen.String(s) }

// HalfWidth narrows full-width characters.
func HalfWidth(s string) string { return width.Narrow.String(s) }

// Normalize applies NFKC, folding width variants of letters and digits.
func Normalize(s string) string { return norm.NFKC.String(s) }
