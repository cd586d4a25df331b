package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptConversion(t *testing.T) {
	assert.Equal(t, "キョウハイイテンキ", ToKatakana("きょうはいいてんき"))
	assert.Equal(t, "ヴァイオリンー", ToKatakana("ゔぁいおりんー"))
	assert.Equal(t, "ABCかな", ToHiragana("ABCカナ"))
	assert.Equal(t, "きょう", ToHiragana(ToKatakana("きょう")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsHiragana("らーめん"))
	assert.False(t, IsHiragana("ラーメン"))
	assert.False(t, IsHiragana(""))

	assert.True(t, IsNumeric("0123"))
	assert.True(t, IsNumeric("１２３"))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric(""))

	assert.True(t, IsSymbolOnly("！？"))
	assert.True(t, IsSymbolOnly("→"))
	assert.False(t, IsSymbolOnly("ー"))
	assert.False(t, IsSymbolOnly("a!"))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, "１２３", FullWidth("123"))
	assert.Equal(t, "!?", HalfWidth("！？"))
	assert.Equal(t, "123", Normalize("１２３"))
	assert.Equal(t, "カナ", Normalize("ｶﾅ"))
}

func TestKanjiNumeral(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "〇"},
		{1, "一"},
		{10, "十"},
		{11, "十一"},
		{123, "百二十三"},
		{1000, "千"},
		{2024, "二千二十四"},
		{10000, "一万"},
		{11000, "一万千"},
		{10000000, "一千万"},
		{100000000, "一億"},
		{120003, "十二万三"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KanjiNumeral(tt.n), "n=%d", tt.n)
	}
}

func TestDigitsAndGrouping(t *testing.T) {
	assert.Equal(t, "二〇二四", KanjiDigits("2024"))
	assert.Equal(t, "一二", KanjiDigits("１２"))
	assert.Equal(t, "1,234,567", GroupDigits(1234567))
	assert.Equal(t, "123", GroupDigits(123))

	n, ok := ParseNumber("０４２")
	require.True(t, ok)
	assert.Equal(t, uint64(42), n)
	_, ok = ParseNumber("99999999999999999999999")
	assert.False(t, ok)
}

func TestExponent(t *testing.T) {
	got, ok := Exponent(12300)
	require.True(t, ok)
	assert.Equal(t, "1.23×10⁴", got)

	got, ok = Exponent(1000000)
	require.True(t, ok)
	assert.Equal(t, "1×10⁶", got)

	got, ok = Exponent(123456789012)
	require.True(t, ok)
	assert.Equal(t, "1.23456789012×10¹¹", got)

	_, ok = Exponent(7)
	assert.False(t, ok)
}
