package assembler

// ScoringConfig holds every constant the assembler scores with. Lower
// scores rank first.
type ScoringConfig struct {
	// UnknownWordCost is the word cost of one-rune fallback lattice nodes.
	UnknownWordCost int16
	// UnknownID is the connection id of fallback nodes.
	UnknownID int16
	// MaxExpansions bounds the N-best search per query.
	MaxExpansions int

	// PredictiveMaxInput is the longest input (in runes) that still gets
	// predictive lookups.
	PredictiveMaxInput int
	// PredictiveLimit caps the readings returned per predictive lookup.
	PredictiveLimit int
	// PredictivePenalty is added per rune a predicted reading exceeds the input.
	PredictivePenalty int
	// PartialPenalty is added per input rune a partial match leaves unconverted.
	PartialPenalty int
	// PartialLimit caps the number of partial-match candidates.
	PartialLimit int

	ReadingCorrectionPenalty int
	ReadingCorrectionBonus   int
	ProverbPenalty           int
	ProverbBonus             int

	HiraganaScore        int
	KatakanaScore        int
	HalfWidthSymbolScore int
	// NumeralScore is the score of the full-width variant; the kanji,
	// grouped and exponent variants follow at +1, +2 and +3.
	NumeralScore int
	// DateScore is the score of the first date format; later formats
	// follow at +1, +2, ...
	DateScore int
}

// DefaultScoringConfig returns the default scores.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		UnknownWordCost:          10000,
		MaxExpansions:            50000,
		PredictiveMaxInput:       12,
		PredictiveLimit:          16,
		PredictivePenalty:        400,
		PartialPenalty:           1500,
		PartialLimit:             8,
		ReadingCorrectionPenalty: 500,
		ReadingCorrectionBonus:   1000,
		ProverbPenalty:           300,
		ProverbBonus:             2000,
		HiraganaScore:            9000,
		KatakanaScore:            9001,
		HalfWidthSymbolScore:     8500,
		NumeralScore:             8000,
		DateScore:                7000,
	}
}
