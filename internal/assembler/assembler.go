// Package assembler turns a reading into the ordered candidate list shown to
// the user. It merges the N-best conversions of the system dictionary with
// independent lookups in the auxiliary dictionaries, numeral and date
// variants and literal echoes.
package assembler

import (
	"time"
	"unicode/utf8"

	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/internal/kana"
	"github.com/hupe1980/henkan/internal/lattice"
	"github.com/hupe1980/henkan/internal/pathfinder"
	"github.com/hupe1980/henkan/userdict"
)

// Dictionaries are the mandatory dictionaries. Only System is required;
// a nil auxiliary dictionary contributes nothing.
type Dictionaries struct {
	System            *dictionary.Dictionary
	SingleKanji       *dictionary.Dictionary
	Emoji             *dictionary.Dictionary
	Emoticon          *dictionary.Dictionary
	Symbol            *dictionary.Dictionary
	ReadingCorrection *dictionary.Dictionary
	Proverb           *dictionary.Dictionary
}

// Request is one conversion query.
type Request struct {
	Input string
	// N is the number of primary conversions requested.
	N       int
	User    userdict.Repository
	Learned userdict.Repository
	// Optional holds the enabled and loaded optional dictionaries.
	Optional []*dictionary.Dictionary
	// Now anchors date candidates.
	Now time.Time
}

// Assembler is immutable and safe for concurrent use.
type Assembler struct {
	dicts  Dictionaries
	finder *pathfinder.Finder
	cfg    ScoringConfig
}

// New creates an Assembler over dicts using conn for connection costs.
func New(dicts Dictionaries, conn pathfinder.Connector, cfg ScoringConfig) *Assembler {
	return &Assembler{
		dicts:  dicts,
		finder: pathfinder.New(conn, cfg.MaxExpansions),
		cfg:    cfg,
	}
}

// Config returns the scoring configuration.
func (a *Assembler) Config() ScoringConfig { return a.cfg }

// blocks collects candidates per output group before the final ordering.
type blocks struct {
	merged      []candidate.Candidate
	date        []candidate.Candidate
	numeral     []candidate.Candidate
	halfWidth   []candidate.Candidate
	literal     []candidate.Candidate
	singleKanji []candidate.Candidate
	emoji       []candidate.Candidate
	emoticon    []candidate.Candidate
	symbol      []candidate.Candidate
}

func (b *blocks) flatten() []candidate.Candidate {
	candidate.Sort(b.merged)
	out := b.merged
	for _, blk := range [][]candidate.Candidate{
		b.date, b.numeral, b.halfWidth, b.literal,
		b.singleKanji, b.emoji, b.emoticon, b.symbol,
	} {
		candidate.Sort(blk)
		out = append(out, blk...)
	}
	return out
}

// Assemble returns the ordered candidates for req. Duplicated texts are kept;
// callers dedupe.
func (a *Assembler) Assemble(req Request) []candidate.Candidate {
	n := utf8.RuneCountInString(req.Input)
	if n == 0 {
		return nil
	}
	single := n == 1

	var b blocks
	b.merged = a.primary(req, n)
	b.literal = a.literals(req.Input, n)
	b.emoji = a.tagged(a.dicts.Emoji, req.Input, n, !single, candidate.Emoji)
	b.emoticon = a.tagged(a.dicts.Emoticon, req.Input, n, !single, candidate.Emoticon)
	b.symbol = a.tagged(a.dicts.Symbol, req.Input, n, !single, candidate.Symbol)
	b.singleKanji = a.tagged(a.dicts.SingleKanji, req.Input, n, !single, candidate.SingleKanji)
	b.halfWidth = a.halfWidth(req.Input, n)

	if single {
		return b.flatten()
	}

	b.numeral = a.numerals(req.Input, n)
	b.date = dateCandidates(req.Input, req.Now, a.cfg.DateScore, n)

	b.merged = append(b.merged, a.userExact(req.User, req.Input, n)...)
	b.merged = append(b.merged, a.weighted(a.dicts.ReadingCorrection, req.Input, n, candidate.ReadingCorrection,
		a.cfg.ReadingCorrectionPenalty, a.cfg.ReadingCorrectionBonus)...)
	b.merged = append(b.merged, a.predictive(req, n)...)
	b.merged = append(b.merged, a.partial(req.Input, n)...)
	b.merged = append(b.merged, a.weighted(a.dicts.Proverb, req.Input, n, candidate.Proverb,
		a.cfg.ProverbPenalty, a.cfg.ProverbBonus)...)
	for _, d := range req.Optional {
		b.merged = append(b.merged, a.optional(d, req.Input, n)...)
	}
	return b.flatten()
}

// primary runs the N-best search over the system dictionary.
func (a *Assembler) primary(req Request, n int) []candidate.Candidate {
	l := lattice.Build(req.Input, a.dicts.System, lattice.Options{
		User:            req.User,
		Learned:         req.Learned,
		UnknownWordCost: a.cfg.UnknownWordCost,
		UnknownID:       a.cfg.UnknownID,
	})
	cs := a.finder.Find(l, max(req.N, 1))
	katakana := kana.ToKatakana(req.Input)
	for i := range cs {
		switch cs[i].Text {
		case req.Input:
			cs[i].Category = candidate.Hiragana
		case katakana:
			cs[i].Category = candidate.Katakana
		}
	}
	return cs
}

func (a *Assembler) literals(input string, n int) []candidate.Candidate {
	return []candidate.Candidate{
		{Text: input, Category: candidate.Hiragana, Length: n, Score: a.cfg.HiraganaScore},
		{Text: kana.ToKatakana(input), Category: candidate.Katakana, Length: n, Score: a.cfg.KatakanaScore},
	}
}

func (a *Assembler) halfWidth(input string, n int) []candidate.Candidate {
	if !kana.IsSymbolOnly(input) {
		return nil
	}
	narrow := kana.HalfWidth(input)
	if narrow == input {
		return nil
	}
	return []candidate.Candidate{{
		Text:     narrow,
		Category: candidate.HalfWidthSymbol,
		Length:   n,
		Score:    a.cfg.HalfWidthSymbolScore,
	}}
}

func (a *Assembler) numerals(input string, n int) []candidate.Candidate {
	if !kana.IsNumeric(input) {
		return nil
	}
	base := a.cfg.NumeralScore
	out := []candidate.Candidate{{
		Text: kana.FullWidth(input), Category: candidate.NumeralVariant, Length: n, Score: base,
	}}

	v, ok := kana.ParseNumber(input)
	if !ok {
		// Too large for a value; spell it digit by digit.
		return append(out, candidate.Candidate{
			Text: kana.KanjiDigits(input), Category: candidate.NumeralVariant, Length: n, Score: base + 1,
		})
	}
	out = append(out,
		candidate.Candidate{Text: kana.KanjiNumeral(v), Category: candidate.NumeralVariant, Length: n, Score: base + 1},
		candidate.Candidate{Text: kana.GroupDigits(v), Category: candidate.NumeralVariant, Length: n, Score: base + 2},
	)
	if v >= 1000 {
		if e, ok := kana.Exponent(v); ok {
			out = append(out, candidate.Candidate{Text: e, Category: candidate.NumeralVariant, Length: n, Score: base + 3})
		}
	}
	return out
}

// match is a dictionary word found for the input. gap is how many runes
// its reading extends beyond the input.
type match struct {
	word dictionary.Word
	gap  int
}

// lookup returns the words of d for input. Predictive lookups are skipped
// for inputs longer than PredictiveMaxInput.
func (a *Assembler) lookup(d *dictionary.Dictionary, input string, n int, predictive bool) []match {
	if d == nil {
		return nil
	}
	if !predictive || n > a.cfg.PredictiveMaxInput {
		ws := d.Lookup(input)
		out := make([]match, len(ws))
		for i, w := range ws {
			out[i] = match{word: w}
		}
		return out
	}
	var out []match
	for _, h := range d.Predict(input, a.cfg.PredictiveLimit) {
		for _, w := range h.Words {
			out = append(out, match{word: w, gap: h.Length - n})
		}
	}
	return out
}

func (a *Assembler) candidateOf(m match, c candidate.Category, n, score int) candidate.Candidate {
	return candidate.Candidate{
		Text:     m.word.Surface,
		Category: c,
		Length:   n,
		Score:    score,
		LeftID:   m.word.LeftID,
		RightID:  m.word.RightID,
	}
}

// tagged looks input up in d and tags every result with c.
func (a *Assembler) tagged(d *dictionary.Dictionary, input string, n int, predictive bool, c candidate.Category) []candidate.Candidate {
	ms := a.lookup(d, input, n, predictive)
	out := make([]candidate.Candidate, 0, len(ms))
	for _, m := range ms {
		out = append(out, a.candidateOf(m, c, n, int(m.word.Cost)+m.gap*a.cfg.PredictivePenalty))
	}
	return out
}

// weighted scores predictive results as cost + gap*penalty; exact matches
// get cost - bonus.
func (a *Assembler) weighted(d *dictionary.Dictionary, input string, n int, c candidate.Category, penalty, bonus int) []candidate.Candidate {
	ms := a.lookup(d, input, n, true)
	out := make([]candidate.Candidate, 0, len(ms))
	for _, m := range ms {
		score := int(m.word.Cost) + m.gap*penalty
		if m.gap == 0 {
			score = int(m.word.Cost) - bonus
		}
		out = append(out, a.candidateOf(m, c, n, score))
	}
	return out
}

// optional scores results like the system predictive path; exact matches
// are tagged Kanji.
func (a *Assembler) optional(d *dictionary.Dictionary, input string, n int) []candidate.Candidate {
	ms := a.lookup(d, input, n, true)
	out := make([]candidate.Candidate, 0, len(ms))
	for _, m := range ms {
		c := candidate.Predictive
		if m.gap == 0 {
			c = candidate.Kanji
		}
		out = append(out, a.candidateOf(m, c, n, int(m.word.Cost)+m.gap*a.cfg.PredictivePenalty))
	}
	return out
}

// predictive completes input from the system dictionary and from user and
// learned repositories that support prediction.
func (a *Assembler) predictive(req Request, n int) []candidate.Candidate {
	if n > a.cfg.PredictiveMaxInput {
		return nil
	}
	var out []candidate.Candidate
	for _, m := range a.lookup(a.dicts.System, req.Input, n, true) {
		if m.gap == 0 {
			continue
		}
		out = append(out, a.candidateOf(m, candidate.Predictive, n, int(m.word.Cost)+m.gap*a.cfg.PredictivePenalty))
	}
	for _, repo := range []userdict.Repository{req.User, req.Learned} {
		p, ok := repo.(userdict.Predictor)
		if !ok {
			continue
		}
		base := utf8.RuneCountInString(userdict.NormalizeReading(req.Input))
		for _, e := range p.Predict(req.Input, a.cfg.PredictiveLimit) {
			gap := utf8.RuneCountInString(e.Reading) - base
			if gap <= 0 || e.Kind == userdict.KindTemplate {
				continue
			}
			out = append(out, candidate.Candidate{
				Text:     e.Surface,
				Category: candidate.Predictive,
				Length:   n,
				Score:    int(e.Cost) + gap*a.cfg.PredictivePenalty,
				LeftID:   e.LeftID,
				RightID:  e.RightID,
			})
		}
	}
	return out
}

// userExact returns user dictionary entries whose reading is exactly input.
func (a *Assembler) userExact(repo userdict.Repository, input string, n int) []candidate.Candidate {
	if repo == nil {
		return nil
	}
	reading := userdict.NormalizeReading(input)
	var out []candidate.Candidate
	for _, e := range repo.Lookup(input) {
		if e.Reading != reading || e.Surface == "" {
			continue
		}
		c := candidate.UserDictionary
		if e.Kind == userdict.KindTemplate {
			c = candidate.Template
		}
		out = append(out, candidate.Candidate{
			Text:     e.Surface,
			Category: c,
			Length:   n,
			Score:    int(e.Cost),
			LeftID:   e.LeftID,
			RightID:  e.RightID,
		})
	}
	return out
}

// partial converts the longest system readings that are proper prefixes of
// input. Their Length is the prefix length so the caller can commit them
// and continue with the rest.
func (a *Assembler) partial(input string, n int) []candidate.Candidate {
	if a.dicts.System == nil || a.cfg.PartialLimit <= 0 {
		return nil
	}
	hits := a.dicts.System.Prefixes(input)
	var out []candidate.Candidate
	// Prefixes returns shortest first.
	for i := len(hits) - 1; i >= 0 && len(out) < a.cfg.PartialLimit; i-- {
		h := hits[i]
		if h.Length >= n {
			continue
		}
		for _, w := range h.Words {
			if len(out) == a.cfg.PartialLimit {
				break
			}
			out = append(out, candidate.Candidate{
				Text:     w.Surface,
				Category: candidate.Kanji,
				Length:   h.Length,
				Score:    int(w.Cost) + (n-h.Length)*a.cfg.PartialPenalty,
				LeftID:   w.LeftID,
				RightID:  w.RightID,
			})
		}
	}
	return out
}

