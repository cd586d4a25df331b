package kana

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	kanjiDigits = []string{"〇", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
	smallUnits  = []string{"", "十", "百", "千"}
	largeUnits  = []string{"", "万", "億", "兆", "京"}

	superscripts = map[rune]rune{
		'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
		'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	}

	groupPrinter = message.NewPrinter(language.Japanese)
)

// ASCIIDigits folds full-width digits to ASCII.
func ASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return r - '０' + '0'
		}
		return r
	}, s)
}

// ParseNumber parses a digit string (ASCII or full-width) into a uint64.
func ParseNumber(s string) (uint64, bool) {
	if !IsNumeric(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(ASCIIDigits(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// KanjiNumeral spells n with kanji numerals and place units, e.g. 123 -> 百二十三.
func KanjiNumeral(n uint64) string {
	if n == 0 {
		return kanjiDigits[0]
	}

	var groups []uint64
	for v := n; v > 0; v /= 10000 {
		groups = append(groups, v%10000)
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		// uint64 never exceeds the 京 group.
		writeGroup(&b, g, i > 0)
		b.WriteString(largeUnits[i])
	}
	return b.String()
}

// writeGroup spells a value below 10000. The digit one is implied before
// 十, 百 and 千, except 千 inside a larger unit (一千万).
func writeGroup(b *strings.Builder, g uint64, large bool) {
	for pos := 3; pos >= 0; pos-- {
		d := (g / pow10(pos)) % 10
		if d == 0 {
			continue
		}
		if d != 1 || pos == 0 || (pos == 3 && large) {
			b.WriteString(kanjiDigits[d])
		}
		b.WriteString(smallUnits[pos])
	}
}

func pow10(n int) uint64 {
	p := uint64(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}

// KanjiDigits replaces each digit with its kanji, e.g. 2024 -> 二〇二四.
func KanjiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return []rune(kanjiDigits[r-'0'])[0]
		}
		return r
	}, ASCIIDigits(s))
}

// GroupDigits formats n with thousands separators, e.g. 1234 -> 1,234.
func GroupDigits(n uint64) string {
	return groupPrinter.Sprintf("%d", n)
}

// Exponent formats n in scientific notation with superscript exponent,
// e.g. 12300 -> 1.23×10⁴. Values below 10 have no exponent form.
func Exponent(n uint64) (string, bool) {
	digits := strconv.FormatUint(n, 10)
	if len(digits) < 2 {
		return "", false
	}
	mantissa := strings.TrimRight(digits[1:], "0")

	var b strings.Builder
	b.WriteByte(digits[0])
	if mantissa != "" {
		b.WriteByte('.')
		b.WriteString(mantissa)
	}
	b.WriteString("×10")
	for _, r := range strconv.Itoa(len(digits) - 1) {
		b.WriteRune(superscripts[r])
	}
	return b.String(), true
}
