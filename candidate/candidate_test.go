package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSort(t *testing.T) {
	cs := []Candidate{
		{Text: "今日", Score: 300},
		{Text: "京", Score: 100},
		{Text: "きょう", Score: 300},
		{Text: "教", Score: 100},
	}
	Sort(cs)
	assert.Equal(t, []string{"京", "教", "きょう", "今日"}, []string{cs[0].Text, cs[1].Text, cs[2].Text, cs[3].Text})
}

func TestDedupe(t *testing.T) {
	cs := []Candidate{
		{Text: "a", Score: 1},
		{Text: "b", Score: 2},
		{Text: "a", Score: 0, Category: Hiragana},
	}
	got := Dedupe(cs)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Score)
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "numeral-variants", NumeralVariant.String())
	assert.Equal(t, "date", Date.String())
	assert.Equal(t, "Category(99)", Category(99).String())
}
