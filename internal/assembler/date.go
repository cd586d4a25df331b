package assembler

import (
	"fmt"
	"time"

	"github.com/hupe1980/henkan/candidate"
)

type dateWord struct {
	days  int
	years int
}

var dateWords = map[string]dateWord{
	"おととい": {days: -2},
	"きのう":  {days: -1},
	"きょう":  {},
	"あした":  {days: 1},
	"あさって": {days: 2},
	"きょねん": {years: -1},
	"ことし":  {},
	"らいねん": {years: 1},
}

var weekdays = [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}

type era struct {
	name  string
	start time.Time
}

var eras = []era{
	{"令和", time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC)},
	{"平成", time.Date(1989, time.January, 8, 0, 0, 0, 0, time.UTC)},
	{"昭和", time.Date(1926, time.December, 25, 0, 0, 0, 0, time.UTC)},
}

// eraYear returns the Japanese era name and year of t, e.g. 令和7年.
// The first year of an era is written 元年.
func eraYear(t time.Time) (string, bool) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for _, e := range eras {
		if day.Before(e.start) {
			continue
		}
		n := t.Year() - e.start.Year() + 1
		if n == 1 {
			return e.name + "元年", true
		}
		return fmt.Sprintf("%s%d年", e.name, n), true
	}
	return "", false
}

// IsDateWord reports whether reading has date candidates.
func IsDateWord(reading string) bool {
	_, ok := dateWords[reading]
	return ok
}

// dateCandidates renders the date words relative to now.
func dateCandidates(reading string, now time.Time, base, length int) []candidate.Candidate {
	w, ok := dateWords[reading]
	if !ok {
		return nil
	}

	var texts []string
	if w.years != 0 || reading == "ことし" {
		t := now.AddDate(w.years, 0, 0)
		texts = append(texts, fmt.Sprintf("%d年", t.Year()))
		if e, ok := eraYear(t); ok {
			texts = append(texts, e)
		}
	} else {
		t := now.AddDate(0, 0, w.days)
		texts = append(texts,
			t.Format("2006/01/02"),
			t.Format("2006年1月2日"),
			t.Format("1月2日"),
		)
		if e, ok := eraYear(t); ok {
			texts = append(texts, e+t.Format("1月2日"))
		}
		texts = append(texts, weekdays[t.Weekday()])
	}

	out := make([]candidate.Candidate, len(texts))
	for i, text := range texts {
		out[i] = candidate.Candidate{
			Text:     text,
			Category: candidate.Date,
			Length:   length,
			Score:    base + i,
		}
	}
	return out
}
